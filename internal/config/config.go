package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"loopedit/internal/eventbus"
)

// ErrNotFound is returned when a config file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Editor  EditorSettings `toml:"editor"`
	UI      UISettings     `toml:"ui"`
	Sprites SpriteSettings `toml:"sprites"`
}

// EditorSettings configures loop editors
type EditorSettings struct {
	Zoom                  float64 `toml:"zoom"`
	FrameSize             int     `toml:"frame_size"`             // base frame cell size in terminal columns
	HandleRangeSelection  bool    `toml:"handle_range_selection"` // false = broadcast range requests only
	SecondaryModifier     string  `toml:"secondary_modifier"`     // "ctrl" or "alt"
	MirrorSystemClipboard bool    `toml:"mirror_system_clipboard"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowFrameInfo bool `toml:"show_frame_info"`
	ShowHelp      bool `toml:"show_help"`
}

// SpriteSettings locates the sprite folders
type SpriteSettings struct {
	Root string `toml:"root"` // directory to scan or YAML catalog
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "loopedit", "config.toml")
}

// NewConfigService creates a config service for path; empty path uses DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, or defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Validate()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate clamps out-of-range values
func (c *Config) Validate() {
	if c.Editor.Zoom < 0.25 {
		c.Editor.Zoom = 0.25
	}
	if c.Editor.Zoom > 4 {
		c.Editor.Zoom = 4
	}
	if c.Editor.FrameSize < 1 {
		c.Editor.FrameSize = 1
	}
	if c.Editor.FrameSize > 64 {
		c.Editor.FrameSize = 64
	}
	switch c.Editor.SecondaryModifier {
	case "ctrl", "alt":
	default:
		c.Editor.SecondaryModifier = "ctrl"
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Editor: EditorSettings{
			Zoom:                 1,
			FrameSize:            6,
			HandleRangeSelection: true,
			SecondaryModifier:    "ctrl",
		},
		UI: UISettings{
			ShowFrameInfo: true,
			ShowHelp:      true,
		},
	}
}
