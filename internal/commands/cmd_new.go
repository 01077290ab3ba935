package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"loopedit/internal/document"
)

type NewCmd struct {
	flags *Flags
	app   *App

	name  string
	loops int
	force bool
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags, app *App) *NewCmd {
	return &NewCmd{flags: flags, app: app}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Create an empty view document",
		UsageText: "loopedit new [--name NAME] [--loops N] [--force] <document.yaml>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "view name (defaults to the file name)",
				Destination: &cmd.name,
			},
			&cli.IntFlag{
				Name:        "loops",
				Usage:       "number of empty loops",
				Value:       len(document.DefaultDirections),
				Destination: &cmd.loops,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "overwrite an existing document",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NewCmd) run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("missing document path")
	}
	if cmd.loops < 1 {
		return fmt.Errorf("a view needs at least one loop")
	}

	if _, err := os.Stat(path); err == nil && !cmd.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	name := cmd.name
	if name == "" {
		name = viewName(path)
	}

	view := document.NewView(name, cmd.loops)
	document.Normalize(view)
	if err := cmd.app.Documents.Save(view, path); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Created %s with %d loop(s)\n", path, cmd.loops)
	return nil
}
