package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"loopedit/internal/commands"
	"loopedit/internal/config"
	"loopedit/internal/eventbus"
	"loopedit/internal/logging"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
)

func build() string {
	v, c := version, commit
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", v, c)
}

func main() {
	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		logCloser func()
		app       = &commands.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "loopedit",
		Usage:     "Edit the frame sequences of animation loops",
		UsageText: "loopedit [global options] command [command options]",
		Description: `LoopEdit edits views: named sets of animation loops, each an ordered
sequence of frames referencing sprites.

Run 'loopedit <document.yaml>' or 'loopedit edit <document.yaml>' to open
the interactive editor.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal)",
				Sources:     cli.EnvVars("LOOPEDIT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs are discarded when empty)",
				Sources:     cli.EnvVars("LOOPEDIT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("LOOPEDIT_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "sprites",
				Aliases:     []string{"s"},
				Usage:       "sprite directory or YAML catalog (overrides [sprites] root)",
				Sources:     cli.EnvVars("LOOPEDIT_SPRITES"),
				Destination: &flags.Sprites,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logging.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			bus := eventbus.New()
			eventbus.RegisterDebugLogger(bus, logger)

			configSvc := config.NewConfigServiceWithBus(flags.ConfigPath, bus)
			cfg, err := configSvc.Load()
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Populate the pre-allocated App (commands already hold a pointer to it)
			*app = *commands.NewApp(bus, configSvc, cfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	editCmd := commands.NewEditCmd(flags, app)

	root = editCmd.Register(root)
	root = commands.NewShowCmd(flags, app).Register(root)
	root = commands.NewImportCmd(flags, app).Register(root)
	root = commands.NewNewCmd(flags, app).Register(root)
	root = commands.NewConfigCmd(flags, app).Register(root)

	// Open the editor when no subcommand is given
	root.Action = editCmd.Run

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	cancel()
	os.Exit(exitCode)
}
