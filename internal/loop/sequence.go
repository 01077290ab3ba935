// Package loop implements the ordered frame sequence of an animation loop.
//
// Every exported mutation leaves the sequence contiguous (Frames[i].ID == i)
// and updates its observers before it publishes its event.
package loop

import (
	"sort"

	"github.com/rs/zerolog/log"

	"loopedit/internal/domain"
	"loopedit/internal/eventbus"
)

// Observer follows the structure of one sequence. Its methods run after the
// frames are updated and before the change is published, so bus subscribers
// always see observers that are already in step with the frames.
type Observer interface {
	// FrameInserted reports a new frame at index at
	FrameInserted(at int)
	// FramesRemoved reports the pre-deletion IDs of removed frames, ascending
	FramesRemoved(removed []int)
	// FramesReplaced reports that the frames were cleared, pasted over or appended to
	FramesReplaced()
}

// Sequence wraps a domain.Loop and owns all structural changes to it
type Sequence struct {
	loop      *domain.Loop
	bus       eventbus.EventBus
	observers []*observerEntry
}

type observerEntry struct {
	o Observer
}

// New creates a sequence editing l. A nil bus disables notifications.
func New(l *domain.Loop, bus eventbus.EventBus) *Sequence {
	if l == nil {
		l = &domain.Loop{}
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	s := &Sequence{loop: l, bus: bus}
	s.renumber()
	return s
}

// Observe registers o and returns a function that removes it again
func (s *Sequence) Observe(o Observer) func() {
	entry := &observerEntry{o: o}
	s.observers = append(s.observers, entry)
	return func() {
		for i, e := range s.observers {
			if e == entry {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Sequence) notify(fn func(Observer)) {
	for _, e := range append([]*observerEntry(nil), s.observers...) {
		fn(e.o)
	}
}

// Loop returns the edited loop
func (s *Sequence) Loop() *domain.Loop {
	return s.loop
}

// Count returns the number of frames
func (s *Sequence) Count() int {
	return len(s.loop.Frames)
}

// Frame returns the frame at index i, or nil when out of range
func (s *Sequence) Frame(i int) *domain.Frame {
	if i < 0 || i >= len(s.loop.Frames) {
		return nil
	}
	return s.loop.Frames[i]
}

// Valid reports whether i indexes an existing frame
func (s *Sequence) Valid(i int) bool {
	return i >= 0 && i < len(s.loop.Frames)
}

// InsertFrame inserts a default frame right after afterIndex and returns
// the new frame's ID. afterIndex is clamped to [-1, count-1]; -1 inserts at
// the head.
func (s *Sequence) InsertFrame(afterIndex int) int {
	if afterIndex < 0 {
		afterIndex = -1
	}
	if afterIndex >= len(s.loop.Frames) {
		afterIndex = len(s.loop.Frames) - 1
	}

	for _, f := range s.loop.Frames {
		if f.ID > afterIndex {
			f.ID++
		}
	}

	at := afterIndex + 1
	frame := &domain.Frame{ID: at}
	s.loop.Frames = append(s.loop.Frames, nil)
	copy(s.loop.Frames[at+1:], s.loop.Frames[at:])
	s.loop.Frames[at] = frame

	log.Debug().Int("loop", s.loop.ID).Int("frame", at).Msg("frame inserted")
	s.notify(func(o Observer) { o.FrameInserted(at) })
	s.bus.Publish(domain.FrameAddedEvent{Loop: s.loop, Frame: at})
	return at
}

// DeleteFrames removes every frame whose ID is in ids. Out-of-range and
// duplicate IDs are ignored. It returns the number of frames removed.
func (s *Sequence) DeleteFrames(ids []int) int {
	targets := s.normalize(ids)
	if len(targets) == 0 {
		return 0
	}

	removed := 0
	for _, id := range targets {
		at := id - removed
		s.loop.Frames = append(s.loop.Frames[:at], s.loop.Frames[at+1:]...)
		for i := at; i < len(s.loop.Frames); i++ {
			s.loop.Frames[i].ID--
		}
		removed++
	}

	log.Debug().Int("loop", s.loop.ID).Ints("frames", targets).Msg("frames deleted")
	s.notify(func(o Observer) { o.FramesRemoved(targets) })
	s.bus.Publish(domain.FramesDeletedEvent{Loop: s.loop, Frames: targets})
	return removed
}

// Clear removes all frames
func (s *Sequence) Clear() {
	if len(s.loop.Frames) == 0 {
		return
	}
	s.loop.Frames = nil
	s.notify(Observer.FramesReplaced)
	s.bus.Publish(domain.LoopChangedEvent{Loop: s.loop, Reason: domain.ChangeCleared})
}

// FlipAll toggles Flipped on every frame
func (s *Sequence) FlipAll() {
	if len(s.loop.Frames) == 0 {
		return
	}
	for _, f := range s.loop.Frames {
		f.Flipped = !f.Flipped
	}
	s.bus.Publish(domain.LoopChangedEvent{Loop: s.loop, Reason: domain.ChangeFlipped})
}

// FlipSubset toggles Flipped on the frames in ids, each at most once
func (s *Sequence) FlipSubset(ids []int) {
	targets := s.normalize(ids)
	if len(targets) == 0 {
		return
	}
	for _, id := range targets {
		f := s.loop.Frames[id]
		f.Flipped = !f.Flipped
	}
	s.bus.Publish(domain.LoopChangedEvent{Loop: s.loop, Reason: domain.ChangeFlipped})
}

// ReplaceFromSource appends a copy of every source frame from startIndex
// onwards that passes filter (nil accepts all), giving each a fresh ID
// starting at the current count. It returns the number appended.
func (s *Sequence) ReplaceFromSource(source []domain.Frame, startIndex int, filter func(domain.Frame) bool) int {
	if startIndex < 0 {
		startIndex = 0
	}
	added := 0
	for i := startIndex; i < len(source); i++ {
		src := source[i]
		if filter != nil && !filter(src) {
			continue
		}
		f := src
		f.ID = len(s.loop.Frames)
		s.loop.Frames = append(s.loop.Frames, &f)
		added++
	}
	if added > 0 {
		s.notify(Observer.FramesReplaced)
		s.bus.Publish(domain.LoopChangedEvent{Loop: s.loop, Reason: domain.ChangeImported})
	}
	return added
}

// PasteFrom overwrites the frames with copies of src's frames, optionally
// inverting Flipped. The loop keeps its own ID, direction and RunNextLoop.
func (s *Sequence) PasteFrom(src *domain.Loop, flipped bool) {
	if src == nil {
		return
	}
	src.CloneInto(s.loop, flipped)
	s.notify(Observer.FramesReplaced)
	s.bus.Publish(domain.LoopChangedEvent{Loop: s.loop, Reason: domain.ChangePasted})
}

// Update applies fn to each frame in ids and reports the change
func (s *Sequence) Update(ids []int, fn func(*domain.Frame)) {
	targets := s.normalize(ids)
	if len(targets) == 0 {
		return
	}
	for _, id := range targets {
		fn(s.loop.Frames[id])
	}
	s.bus.Publish(domain.LoopChangedEvent{Loop: s.loop, Reason: domain.ChangeEdited})
}

// Contiguous reports whether every frame's ID equals its index
func (s *Sequence) Contiguous() bool {
	for i, f := range s.loop.Frames {
		if f == nil || f.ID != i {
			return false
		}
	}
	return true
}

// normalize returns the valid IDs of ids, sorted ascending without duplicates
func (s *Sequence) normalize(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	var out []int
	for _, id := range ids {
		if !s.Valid(id) || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// renumber restores contiguity on a loop loaded from outside
func (s *Sequence) renumber() {
	frames := s.loop.Frames[:0]
	for _, f := range s.loop.Frames {
		if f != nil {
			frames = append(frames, f)
		}
	}
	s.loop.Frames = frames
	for i, f := range s.loop.Frames {
		f.ID = i
	}
}
