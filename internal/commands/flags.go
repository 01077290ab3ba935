package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"loopedit/internal/clipboard"
	"loopedit/internal/config"
	"loopedit/internal/document"
	"loopedit/internal/domain"
	"loopedit/internal/eventbus"
	"loopedit/internal/sprites"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Sprites    string
}

// App holds the services shared by every command. It is populated in the
// root command's Before hook.
type App struct {
	Bus       *eventbus.Bus
	ConfigSvc config.ConfigService
	Config    *config.Config
	Documents *document.Service
	Clipboard *clipboard.Service
}

// NewApp wires the shared services around bus
func NewApp(bus *eventbus.Bus, configSvc config.ConfigService, cfg *config.Config) *App {
	var mirror clipboard.Mirror
	if cfg.Editor.MirrorSystemClipboard {
		if sys := clipboard.NewSystemMirror(); sys.Available() {
			mirror = sys
		} else {
			log.Warn().Msg("system clipboard unavailable, mirroring disabled")
		}
	}

	return &App{
		Bus:       bus,
		ConfigSvc: configSvc,
		Config:    cfg,
		Documents: document.NewService(bus),
		Clipboard: clipboard.New(bus, mirror),
	}
}

// SpriteRoot returns the sprite location from the flag, else the config
func (a *App) SpriteRoot(flags *Flags) string {
	if flags.Sprites != "" {
		return flags.Sprites
	}
	return a.Config.Sprites.Root
}

// OpenSprites loads the sprite folders at root. A nil store and no error
// are returned when root is empty.
func (a *App) OpenSprites(ctx context.Context, root string) (sprites.FolderStore, error) {
	if root == "" {
		return nil, nil
	}
	store, err := sprites.Open(ctx, a.Bus, root)
	if err != nil {
		return nil, fmt.Errorf("load sprites: %w", err)
	}
	return store, nil
}

// LoadOrNew loads the document at path, or creates a new view named after
// the file when it does not exist yet
func (a *App) LoadOrNew(path string) (*domain.View, bool, error) {
	view, err := a.Documents.Load(path)
	switch {
	case err == nil:
		return view, false, nil
	case errors.Is(err, document.ErrNotFound):
		return document.NewView(viewName(path), len(document.DefaultDirections)), true, nil
	default:
		return nil, false, err
	}
}
