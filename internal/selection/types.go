package selection

import (
	"loopedit/internal/domain"
	"loopedit/internal/loop"
)

// Action aliases the domain selection actions
type Action = domain.MultiSelectAction

const (
	Set      = domain.SelectSet
	Add      = domain.SelectAdd
	Remove   = domain.SelectRemove
	AddRange = domain.SelectAddRange
	ClearAll = domain.SelectClearAll
)

// State holds selection state
type State struct {
	SelectedFrames map[int]bool
	LastAnchor     int // pivot for range selection
}

// Frames is what the selection needs to know about the sequence it refers to
type Frames interface {
	Loop() *domain.Loop
	Count() int
	Observe(o loop.Observer) func()
}
