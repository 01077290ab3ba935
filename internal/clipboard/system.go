package clipboard

import (
	"fmt"

	osclip "github.com/atotto/clipboard"
	"gopkg.in/yaml.v3"

	"loopedit/internal/domain"
)

// SystemMirror writes copied loops to the operating system clipboard as YAML
type SystemMirror struct {
	write func(string) error
}

// NewSystemMirror returns a mirror backed by the OS clipboard
func NewSystemMirror() *SystemMirror {
	return &SystemMirror{write: osclip.WriteAll}
}

// Available reports whether the OS clipboard can be used on this system
func (m *SystemMirror) Available() bool {
	return !osclip.Unsupported
}

func (m *SystemMirror) Write(l *domain.Loop) error {
	if osclip.Unsupported {
		return nil
	}
	text, err := Marshal(l)
	if err != nil {
		return err
	}
	if err := m.write(text); err != nil {
		return fmt.Errorf("write system clipboard: %w", err)
	}
	return nil
}

// Marshal renders a loop the way it is placed on the system clipboard
func Marshal(l *domain.Loop) (string, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("marshal loop: %w", err)
	}
	return string(data), nil
}
