package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"loopedit/internal/document"
	"loopedit/internal/ui"
)

type ShowCmd struct {
	flags *Flags
	app   *App

	plain bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "List the loops and frames of a view document",
		UsageText: "loopedit show [--plain] <document.yaml>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "print to stdout instead of opening the pager",
				Destination: &cmd.plain,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("missing document path")
	}

	view, err := cmd.app.Documents.Load(path)
	if err != nil {
		return err
	}

	listing := document.Dump(view)
	if cmd.plain {
		_, err := fmt.Fprint(os.Stdout, listing)
		return err
	}
	return ui.Page(strings.NewReader(listing))
}
