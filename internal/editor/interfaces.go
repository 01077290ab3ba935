package editor

import "loopedit/internal/domain"

// ResourceChooser asks the user for a sprite. It returns false when the
// user picked nothing.
type ResourceChooser interface {
	Choose(initial int, prompt string) (int, bool)
}

// FolderProvider locates the sprite folder holding a sprite
type FolderProvider interface {
	FolderContaining(sprite int) (*domain.SpriteFolder, bool)
}

// Renderer draws a loop's frame strip. The editor only supplies data.
type Renderer interface {
	DrawLoop(l *domain.Loop, originX, originY, frameSize int, selected []int)
}

// Button identifies the pointer button of a click
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
)

// Modifier is a set of held modifier keys
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all of m2 are held
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2 && m2 != 0
}
