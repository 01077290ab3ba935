// Package document reads and writes view documents: named sets of loops
// stored as YAML.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"loopedit/internal/domain"
	"loopedit/internal/eventbus"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = errors.New("document not found")

// DefaultDirections labels the loops of a new view
var DefaultDirections = []string{"down", "left", "right", "up"}

// Service handles document persistence
type Service struct {
	bus eventbus.EventBus
}

// NewService creates a document service. bus may be nil.
func NewService(bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{bus: bus}
}

// Load reads a view from path and normalizes loop and frame IDs
func (s *Service) Load(path string) (*domain.View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	view, err := Decode(data)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(eventbus.DocumentLoadedEvent{Path: path, View: view})
	return view, nil
}

// Save writes view to path
func (s *Service) Save(view *domain.View, path string) error {
	data, err := Encode(view)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create document directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	s.bus.Publish(eventbus.DocumentSavedEvent{Path: path})
	return nil
}

// Decode parses a YAML view
func Decode(data []byte) (*domain.View, error) {
	var view domain.View
	if err := yaml.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	Normalize(&view)
	return &view, nil
}

// Encode renders a view as YAML
func Encode(view *domain.View) ([]byte, error) {
	data, err := yaml.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

// Normalize drops nil loops and frames and renumbers IDs by position.
// The last loop never runs into a next loop.
func Normalize(view *domain.View) {
	loops := view.Loops[:0]
	for _, l := range view.Loops {
		if l != nil {
			loops = append(loops, l)
		}
	}
	view.Loops = loops

	for i, l := range view.Loops {
		l.ID = i
		frames := l.Frames[:0]
		for _, f := range l.Frames {
			if f != nil {
				frames = append(frames, f)
			}
		}
		l.Frames = frames
		for j, f := range l.Frames {
			f.ID = j
		}
	}
	if n := len(view.Loops); n > 0 {
		view.Loops[n-1].RunNextLoop = false
	}
}

// NewView creates an empty view with one loop per direction
func NewView(name string, loops int) *domain.View {
	view := &domain.View{Name: name}
	for i := 0; i < loops; i++ {
		dir := fmt.Sprintf("loop %d", i)
		if i < len(DefaultDirections) {
			dir = DefaultDirections[i]
		}
		view.Loops = append(view.Loops, &domain.Loop{ID: i, Direction: dir})
	}
	return view
}

// Dump renders a human-readable listing of a view
func Dump(view *domain.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "View %q: %d loop(s)\n", view.Name, len(view.Loops))
	for _, l := range view.Loops {
		fmt.Fprintf(&b, "\n%s  run next: %t  frames: %d\n", l.Title(), l.RunNextLoop, len(l.Frames))
		for _, f := range l.Frames {
			flip := ""
			if f.Flipped {
				flip = " flipped"
			}
			fmt.Fprintf(&b, "  #%-3d sprite %-5d delay %-3d sound %d%s\n", f.ID, f.ImageRef, f.Delay, f.SoundRef, flip)
		}
	}
	return b.String()
}
