package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"loopedit/internal/domain"
	"loopedit/internal/editor"
	"loopedit/internal/sprites"
)

type ImportCmd struct {
	flags *Flags
	app   *App

	loop    int
	from    int
	folder  string
	replace bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Add all sprites of a folder to a loop",
		UsageText: "loopedit import (--from <sprite> | --folder <path>) [--loop N] [--replace] <document.yaml>",
		Description: `Finds the sprite folder holding --from and adds one frame for every
sprite of that folder from --from on, in folder order.

--folder names the folder by its path below the sprite root instead,
e.g. "hero/walk". Without --from every sprite of that folder is added.

Sprites are read from --sprites or the [sprites] root config key.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "loop",
				Aliases:     []string{"l"},
				Usage:       "index of the loop to import into",
				Destination: &cmd.loop,
			},
			&cli.IntFlag{
				Name:        "from",
				Aliases:     []string{"f"},
				Usage:       "first sprite to import",
				Destination: &cmd.from,
			},
			&cli.StringFlag{
				Name:        "folder",
				Usage:       "path of the sprite folder to import from",
				Destination: &cmd.folder,
			},
			&cli.BoolFlag{
				Name:        "replace",
				Usage:       "clear the loop before importing",
				Destination: &cmd.replace,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("missing document path")
	}
	if cmd.folder == "" && !c.IsSet("from") {
		return fmt.Errorf("pass --from or --folder")
	}

	root := cmd.app.SpriteRoot(cmd.flags)
	if root == "" {
		return fmt.Errorf("no sprite location: pass --sprites or set [sprites] root")
	}
	folders, err := cmd.app.OpenSprites(ctx, root)
	if err != nil {
		return err
	}

	view, _, err := cmd.app.LoadOrNew(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	if cmd.loop < 0 || cmd.loop >= len(view.Loops) {
		return fmt.Errorf("loop %d out of range: view has %d loop(s)", cmd.loop, len(view.Loops))
	}

	folder, err := importFolder(folders, cmd.folder, cmd.from)
	if err != nil {
		return fmt.Errorf("%w under %s", err, root)
	}

	ed := editor.New(view.Loops[cmd.loop], editor.Options{
		Bus:       cmd.app.Bus,
		Clipboard: cmd.app.Clipboard,
		Folders:   folders,
	})
	defer ed.Close()

	added := ed.ImportSprites(folder, cmd.from, cmd.replace)
	if err := cmd.app.Documents.Save(view, path); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d frame(s) from folder %s into %s\n", added, folder.Name, ed.Title())
	return nil
}

// importFolder picks the folder to import from: the one at folderPath when
// given, else the one holding sprite from.
func importFolder(folders sprites.FolderStore, folderPath string, from int) (*domain.SpriteFolder, error) {
	if folderPath == "" {
		folder, ok := folders.FolderContaining(from)
		if !ok {
			return nil, fmt.Errorf("sprite %d is not in any folder", from)
		}
		return folder, nil
	}

	if folder := folders.GetFolder(folderPath); folder != nil {
		return folder, nil
	}
	all := folders.GetAllFolders()
	known := make([]string, 0, len(all))
	for p := range all {
		known = append(known, p)
	}
	sort.Strings(known)
	return nil, fmt.Errorf("no sprite folder %q (have %s)", folderPath, strings.Join(known, ", "))
}
