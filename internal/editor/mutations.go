package editor

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"loopedit/internal/domain"
	"loopedit/internal/selection"
)

// ImportPrompt is shown when asking for the first sprite of a folder import
const ImportPrompt = "Select the first sprite to be imported from the folder"

// FlipSelectedFrames toggles Flipped on the selected frames
func (e *LoopEditor) FlipSelectedFrames() {
	if !e.sel.HasSelection() {
		return
	}
	e.seq.FlipSubset(e.sel.Selected())
}

// FlipAllFrames toggles Flipped on every frame of the loop
func (e *LoopEditor) FlipAllFrames() {
	e.seq.FlipAll()
}

// DeleteSelectedFrames removes the selected frames and selects the frame
// that followed the highest selected one, falling back to the last frame,
// or clears the selection when the loop is left empty.
func (e *LoopEditor) DeleteSelectedFrames() {
	selected := e.sel.Selected()
	if len(selected) == 0 {
		return
	}

	highest := selected[len(selected)-1]
	next := e.seq.Frame(highest + 1)

	removed := e.seq.DeleteFrames(selected)
	log.Info().Int("loop", e.Loop().ID).Int("count", removed).Msg("deleted frames")

	switch {
	case e.seq.Count() == 0:
		e.sel.Change(domain.NoFrame, selection.ClearAll)
	case next != nil:
		e.sel.Change(next.ID, selection.Set)
	default:
		e.sel.Change(e.seq.Count()-1, selection.Set)
	}
}

// InsertFrame inserts a frame after afterIndex and selects it
func (e *LoopEditor) InsertFrame(afterIndex int) int {
	id := e.seq.InsertFrame(afterIndex)
	e.sel.Change(id, selection.Set)
	return id
}

// AppendFrame adds a frame at the end of the loop and selects it
func (e *LoopEditor) AppendFrame() int {
	return e.InsertFrame(e.seq.Count())
}

// InsertAfterSelection inserts a frame after the highest selected frame,
// or at the end when nothing is selected
func (e *LoopEditor) InsertAfterSelection() int {
	after, ok := e.sel.Highest()
	if !ok {
		after = e.seq.Count() - 1
	}
	return e.InsertFrame(after)
}

// InsertBeforeSelection inserts a frame before the lowest selected frame,
// or at the head when nothing is selected
func (e *LoopEditor) InsertBeforeSelection() int {
	lowest, ok := e.sel.Lowest()
	if !ok {
		lowest = 0
	}
	return e.InsertFrame(lowest - 1)
}

// CopyLoop places a deep copy of the loop on the clipboard
func (e *LoopEditor) CopyLoop() {
	e.clipboard.Store(e.Loop())
	log.Debug().Int("loop", e.Loop().ID).Int("frames", e.seq.Count()).Msg("loop copied")
}

// CutLoop copies the loop, then removes all its frames and clears the selection
func (e *LoopEditor) CutLoop() {
	e.CopyLoop()
	if e.seq.Count() == 0 {
		return
	}
	e.seq.Clear()
	e.sel.Change(domain.NoFrame, selection.ClearAll)
}

// CanPaste reports whether a loop is on the clipboard
func (e *LoopEditor) CanPaste() bool {
	return e.clipboard.HasContent()
}

// PasteLoop overwrites the loop's frames with the clipboard's, optionally
// mirrored. Loop-level attributes are kept.
func (e *LoopEditor) PasteLoop(flipped bool) bool {
	src := e.clipboard.Load()
	if src == nil {
		return false
	}
	e.seq.PasteFrom(src, flipped)
	log.Debug().Int("loop", e.Loop().ID).Bool("flipped", flipped).Int("frames", e.seq.Count()).Msg("loop pasted")
	return true
}

// ImportFromFolder asks for a starting sprite and adds one frame for every
// sprite of its folder from that sprite on. With replace the loop is
// cleared first. It returns the number of frames added.
func (e *LoopEditor) ImportFromFolder(replace bool) int {
	if e.chooser == nil || e.folders == nil {
		return 0
	}
	chosen, ok := e.chooser.Choose(e.clipboard.LastSprite(), ImportPrompt)
	if !ok {
		return 0
	}
	folder, ok := e.folders.FolderContaining(chosen)
	if !ok {
		return 0
	}
	return e.ImportSprites(folder, chosen, replace)
}

// ImportSprites adds a default frame for every sprite in folder whose
// handle is at least start, in folder order
func (e *LoopEditor) ImportSprites(folder *domain.SpriteFolder, start int, replace bool) int {
	if folder == nil {
		return 0
	}
	if replace {
		e.seq.Clear()
	}

	source := make([]domain.Frame, len(folder.Sprites))
	for i, sprite := range folder.Sprites {
		source[i] = domain.Frame{ImageRef: sprite}
	}
	added := e.seq.ReplaceFromSource(source, 0, func(f domain.Frame) bool {
		return f.ImageRef >= start
	})

	log.Info().
		Int("loop", e.Loop().ID).
		Str("folder", folder.Name).
		Int("count", added).
		Bool("replace", replace).
		Msg("imported sprites")
	return added
}

// ChooseImage asks for a new sprite for frame. The chooser starts at the
// frame's sprite, else the previous frame's, else the last sprite chosen
// anywhere.
func (e *LoopEditor) ChooseImage(frame int) bool {
	f := e.seq.Frame(frame)
	if f == nil || e.chooser == nil {
		return false
	}

	initial := f.ImageRef
	if initial == 0 && frame > 0 {
		initial = e.seq.Frame(frame - 1).ImageRef
	}
	if initial == 0 {
		initial = e.clipboard.LastSprite()
	}

	chosen, ok := e.chooser.Choose(initial, "")
	if !ok {
		return false
	}
	e.seq.Update([]int{frame}, func(f *domain.Frame) { f.ImageRef = chosen })
	e.clipboard.SetLastSprite(chosen)
	return true
}

// SetDelay sets the delay of the selected frames; negative delays become 0
func (e *LoopEditor) SetDelay(delay int) {
	e.seq.Update(e.sel.Selected(), func(f *domain.Frame) { f.Delay = max(0, delay) })
}

// SetSound sets the sound of the selected frames
func (e *LoopEditor) SetSound(sound int) {
	e.seq.Update(e.sel.Selected(), func(f *domain.Frame) { f.SoundRef = max(0, sound) })
}

// SetImage sets the sprite of the selected frames
func (e *LoopEditor) SetImage(sprite int) {
	e.seq.Update(e.sel.Selected(), func(f *domain.Frame) { f.ImageRef = max(0, sprite) })
	if sprite > 0 && e.sel.HasSelection() {
		e.clipboard.SetLastSprite(sprite)
	}
}

// DelayLabel formats a delay for the frame info line
func DelayLabel(delay int) string {
	if delay > 99 {
		return ">99"
	}
	return strconv.Itoa(delay)
}
