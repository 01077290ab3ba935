package domain

import "fmt"

// Frame represents one animation frame in a loop
type Frame struct {
	ID       int  `yaml:"id"`      // always equal to the frame's index in its loop
	ImageRef int  `yaml:"image"`   // 0 = unset
	Flipped  bool `yaml:"flipped"` // horizontal mirror
	Delay    int  `yaml:"delay"`   // display duration units, 0 = none
	SoundRef int  `yaml:"sound"`   // 0 = unset
}

// Clone returns an independent copy of the frame
func (f *Frame) Clone() *Frame {
	c := *f
	return &c
}

// Loop is an ordered sequence of frames
type Loop struct {
	ID          int      `yaml:"id"`
	Direction   string   `yaml:"direction"` // display label, e.g. "down"
	RunNextLoop bool     `yaml:"run_next_loop"`
	Frames      []*Frame `yaml:"frames"`
}

// Title returns the label shown above the loop's frame strip
func (l *Loop) Title() string {
	return fmt.Sprintf("Loop %d (%s)", l.ID, l.Direction)
}

// Clone returns a deep copy of the loop
func (l *Loop) Clone() *Loop {
	c := &Loop{
		ID:          l.ID,
		Direction:   l.Direction,
		RunNextLoop: l.RunNextLoop,
		Frames:      make([]*Frame, len(l.Frames)),
	}
	for i, f := range l.Frames {
		c.Frames[i] = f.Clone()
	}
	return c
}

// CloneInto overwrites dst's frames with copies of l's frames, optionally
// inverting Flipped. dst keeps its own ID, direction and RunNextLoop.
func (l *Loop) CloneInto(dst *Loop, flipped bool) {
	frames := make([]*Frame, len(l.Frames))
	for i, f := range l.Frames {
		c := f.Clone()
		c.ID = i
		if flipped {
			c.Flipped = !c.Flipped
		}
		frames[i] = c
	}
	dst.Frames = frames
}

// View is an editable document holding a set of loops
type View struct {
	Name  string  `yaml:"name"`
	Loops []*Loop `yaml:"loops"`
}

// SpriteFolder is a named, ordered listing of sprite handles
type SpriteFolder struct {
	Name    string          `yaml:"name"`
	Sprites []int           `yaml:"sprites"`
	Folders []*SpriteFolder `yaml:"folders,omitempty"`
}

// FindFolderThatContainsSprite searches this folder and its subfolders
func (f *SpriteFolder) FindFolderThatContainsSprite(sprite int) *SpriteFolder {
	for _, s := range f.Sprites {
		if s == sprite {
			return f
		}
	}
	for _, sub := range f.Folders {
		if found := sub.FindFolderThatContainsSprite(sprite); found != nil {
			return found
		}
	}
	return nil
}

// MultiSelectAction describes how a target frame changes the selection
type MultiSelectAction int

const (
	SelectSet MultiSelectAction = iota
	SelectAdd
	SelectRemove
	SelectAddRange
	SelectClearAll
)

func (a MultiSelectAction) String() string {
	switch a {
	case SelectSet:
		return "set"
	case SelectAdd:
		return "add"
	case SelectRemove:
		return "remove"
	case SelectAddRange:
		return "add_range"
	case SelectClearAll:
		return "clear_all"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// NoFrame marks "no target frame" in selection and menu requests
const NoFrame = -1

// MenuItem is one entry of a loop context menu
type MenuItem struct {
	ID        string
	Label     string
	Enabled   bool
	Separator bool
}

// ContextMenu is handed to subscribers before it is shown. Setting
// ItemsOverridden makes the editor show Items as-is without defaults.
type ContextMenu struct {
	Items           []MenuItem
	ItemsOverridden bool
}

// Add appends an enabled item
func (m *ContextMenu) Add(id, label string) {
	m.Items = append(m.Items, MenuItem{ID: id, Label: label, Enabled: true})
}

// AddSeparator appends a separator
func (m *ContextMenu) AddSeparator() {
	m.Items = append(m.Items, MenuItem{Separator: true})
}
