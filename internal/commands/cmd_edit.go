package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"loopedit/internal/ui"
)

type EditCmd struct {
	flags *Flags
	app   *App
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Edit the loops of a view document",
		UsageText: "loopedit edit [document.yaml]",
		Description: `Opens the interactive loop editor.

Every loop of the view is shown as a strip of frames. Frames are selected
with the keyboard or the mouse; press ? for the key reference.

A document that does not exist yet is created on first save.`,
		Action: cmd.Run,
	})

	return app
}

// Run executes the editor. Exported for use as default command.
func (cmd *EditCmd) Run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		path = "view.yaml"
	}

	view, created, err := cmd.app.LoadOrNew(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	if created {
		log.Info().Str("path", path).Msg("editing new document")
	}

	folders, err := cmd.app.OpenSprites(ctx, cmd.app.SpriteRoot(cmd.flags))
	if err != nil {
		log.Warn().Err(err).Msg("sprite folders unavailable, import disabled")
		folders = nil
	}

	model := ui.NewModel(ui.Options{
		Bus:       cmd.app.Bus,
		Config:    cmd.app.Config,
		Documents: cmd.app.Documents,
		Clipboard: cmd.app.Clipboard,
		Folders:   folders,
		View:      view,
		Path:      path,
		Ready:     os.Getenv("LOOPEDIT_E2E_TEST") == "1",
	})
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

func viewName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
