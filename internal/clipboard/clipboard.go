// Package clipboard holds the copied loop shared by every loop editor in
// the process. It is passed explicitly to editors; nothing here is global.
package clipboard

import (
	"sync"

	"github.com/rs/zerolog/log"

	"loopedit/internal/domain"
	"loopedit/internal/eventbus"
)

// Mirror receives every loop written to the clipboard, e.g. to export it
// to the operating system clipboard
type Mirror interface {
	Write(l *domain.Loop) error
}

// Service is a last-write-wins slot holding one deep-copied loop, plus the
// last sprite picked in any editor
type Service struct {
	mu         sync.RWMutex
	copied     *domain.Loop
	lastSprite int
	bus        eventbus.EventBus
	mirror     Mirror
}

// New creates an empty clipboard. bus and mirror may be nil.
func New(bus eventbus.EventBus, mirror Mirror) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{bus: bus, mirror: mirror}
}

// Store replaces the clipboard contents with a deep copy of l
func (s *Service) Store(l *domain.Loop) {
	if l == nil {
		return
	}
	c := l.Clone()

	s.mu.Lock()
	s.copied = c
	s.mu.Unlock()

	if s.mirror != nil {
		if err := s.mirror.Write(c); err != nil {
			log.Warn().Err(err).Msg("failed to mirror copied loop")
		}
	}
	s.bus.Publish(eventbus.ClipboardChangedEvent{Frames: len(c.Frames)})
}

// Load returns the copied loop, or nil when empty. Callers must copy it
// before modifying anything.
func (s *Service) Load() *domain.Loop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copied
}

// HasContent reports whether a loop has been copied
func (s *Service) HasContent() bool {
	return s.Load() != nil
}

// LastSprite returns the most recently chosen sprite, 0 when none
func (s *Service) LastSprite() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSprite
}

// SetLastSprite records the most recently chosen sprite
func (s *Service) SetLastSprite(sprite int) {
	s.mu.Lock()
	s.lastSprite = sprite
	s.mu.Unlock()
}
