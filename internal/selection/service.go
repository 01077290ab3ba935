package selection

import (
	"sort"

	"github.com/rs/zerolog/log"

	"loopedit/internal/eventbus"
)

// Service is the multi-select state machine for one loop.
//
// The frame sequence is the source of truth: the service observes the
// sequence directly and drops or renumbers stale IDs before the sequence
// publishes its change, whatever bus it was given.
type Service struct {
	state       *State
	bus         eventbus.EventBus
	frames      Frames
	handleRange bool
	unobserve   func()
}

// NewService creates a selection service for frames. Range selection
// handling starts enabled.
func NewService(bus eventbus.EventBus, frames Frames) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	s := &Service{
		state: &State{
			SelectedFrames: make(map[int]bool),
			LastAnchor:     0,
		},
		bus:         bus,
		frames:      frames,
		handleRange: true,
	}

	s.unobserve = frames.Observe(sequenceObserver{s})

	return s
}

// Close stops following the sequence
func (s *Service) Close() {
	if s.unobserve != nil {
		s.unobserve()
		s.unobserve = nil
	}
}

// SetHandleRange controls whether AddRange fills this instance's selection.
// With handling disabled the instance only broadcasts range requests.
func (s *Service) SetHandleRange(handle bool) {
	s.handleRange = handle
}

// HandleRange reports whether range selection is applied locally
func (s *Service) HandleRange() bool {
	return s.handleRange
}

// Change applies action to target and then notifies observers.
// Targets outside the sequence never enter the selection.
func (s *Service) Change(target int, action Action) {
	count := s.frames.Count()
	valid := target >= 0 && target < count

	switch action {
	case Add:
		if valid {
			s.state.SelectedFrames[target] = true
			s.state.LastAnchor = target
		}
	case Remove:
		delete(s.state.SelectedFrames, target)
		s.state.LastAnchor = target
	case AddRange:
		s.state.SelectedFrames = make(map[int]bool)
		if s.handleRange && count > 0 {
			lo, hi := clamp(s.state.LastAnchor, count), clamp(target, count)
			if lo > hi {
				lo, hi = hi, lo
			}
			for i := lo; i <= hi; i++ {
				s.state.SelectedFrames[i] = true
			}
		}
	case ClearAll:
		s.state.SelectedFrames = make(map[int]bool)
		s.state.LastAnchor = 0
	default:
		action = Set
		s.state.SelectedFrames = make(map[int]bool)
		if valid {
			s.state.SelectedFrames[target] = true
			s.state.LastAnchor = target
		}
	}

	log.Debug().
		Int("loop", s.frames.Loop().ID).
		Int("frame", target).
		Str("action", action.String()).
		Int("selected", len(s.state.SelectedFrames)).
		Msg("selection changed")

	s.bus.Publish(eventbus.SelectionChangedEvent{
		Loop:   s.frames.Loop(),
		Frame:  target,
		Action: action,
	})
}

// Toggle adds target when unselected and removes it otherwise
func (s *Service) Toggle(target int) {
	if s.state.SelectedFrames[target] {
		s.Change(target, Remove)
		return
	}
	s.Change(target, Add)
}

// IsSelected checks if a frame is selected
func (s *Service) IsSelected(id int) bool {
	return s.state.SelectedFrames[id]
}

// Selected returns the selected frame IDs in ascending order
func (s *Service) Selected() []int {
	out := make([]int, 0, len(s.state.SelectedFrames))
	for id := range s.state.SelectedFrames {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Count returns the number of selected frames
func (s *Service) Count() int {
	return len(s.state.SelectedFrames)
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return len(s.state.SelectedFrames) > 0
}

// Anchor returns the current range-selection pivot
func (s *Service) Anchor() int {
	return s.state.LastAnchor
}

// Lowest returns the smallest selected ID
func (s *Service) Lowest() (int, bool) {
	sel := s.Selected()
	if len(sel) == 0 {
		return 0, false
	}
	return sel[0], true
}

// Highest returns the largest selected ID
func (s *Service) Highest() (int, bool) {
	sel := s.Selected()
	if len(sel) == 0 {
		return 0, false
	}
	return sel[len(sel)-1], true
}

// shiftFrom moves selected IDs at or after at one place right, following
// the frames they refer to after an insert
func (s *Service) shiftFrom(at int) {
	next := make(map[int]bool, len(s.state.SelectedFrames))
	for id := range s.state.SelectedFrames {
		if id >= at {
			id++
		}
		next[id] = true
	}
	s.state.SelectedFrames = next
	if s.state.LastAnchor >= at && s.state.LastAnchor+1 < s.frames.Count() {
		s.state.LastAnchor++
	}
}

// remapDeleted drops removed IDs and renumbers the rest. removed is
// ascending and holds pre-deletion IDs.
func (s *Service) remapDeleted(removed []int) {
	gone := make(map[int]bool, len(removed))
	for _, id := range removed {
		gone[id] = true
	}
	shift := func(id int) int {
		n := sort.SearchInts(removed, id)
		return id - n
	}

	next := make(map[int]bool, len(s.state.SelectedFrames))
	for id := range s.state.SelectedFrames {
		if gone[id] {
			continue
		}
		next[shift(id)] = true
	}
	s.state.SelectedFrames = next
	s.state.LastAnchor = clamp(shift(s.state.LastAnchor), s.frames.Count())
	s.prune()
}

// prune drops IDs past the end of the sequence
func (s *Service) prune() {
	count := s.frames.Count()
	for id := range s.state.SelectedFrames {
		if id < 0 || id >= count {
			delete(s.state.SelectedFrames, id)
		}
	}
	s.state.LastAnchor = clamp(s.state.LastAnchor, count)
}

// sequenceObserver keeps the selection in step with structural changes
type sequenceObserver struct {
	s *Service
}

func (o sequenceObserver) FrameInserted(at int) { o.s.shiftFrom(at) }

func (o sequenceObserver) FramesRemoved(removed []int) { o.s.remapDeleted(removed) }

func (o sequenceObserver) FramesReplaced() { o.s.prune() }

// clamp limits i to [0, count-1], or 0 for an empty sequence
func clamp(i, count int) int {
	if i >= count {
		i = count - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
