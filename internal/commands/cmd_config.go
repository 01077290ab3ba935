package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

type ConfigCmd struct {
	flags *Flags
	app   *App
}

// NewConfigCmd creates a new config command
func NewConfigCmd(flags *Flags, app *App) *ConfigCmd {
	return &ConfigCmd{flags: flags, app: app}
}

// Register adds the config command to the application
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Show or write the configuration",
		Commands: []*cli.Command{
			{
				Name:   "path",
				Usage:  "Print the config file path",
				Action: cmd.path,
			},
			{
				Name:   "init",
				Usage:  "Write the effective configuration to the config file",
				Action: cmd.write,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) path(ctx context.Context, c *cli.Command) error {
	_, err := fmt.Fprintln(os.Stdout, cmd.app.ConfigSvc.Path())
	return err
}

func (cmd *ConfigCmd) write(ctx context.Context, c *cli.Command) error {
	if err := cmd.app.ConfigSvc.Save(cmd.app.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	_, err := fmt.Fprintf(os.Stdout, "Wrote %s\n", cmd.app.ConfigSvc.Path())
	return err
}
