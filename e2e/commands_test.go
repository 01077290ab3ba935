//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCLI runs the binary outside the PTY with an isolated config file
func runCLI(t *testing.T, workspace string, args ...string) (string, error) {
	t.Helper()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	cmdArgs := append([]string{"--config", filepath.Join(workspace, "config.toml")}, args...)
	cmd := exec.Command(binPath, cmdArgs...)
	cmd.Env = append(os.Environ(), "HOME="+workspace)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestHelpCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	output, err := runCLI(t, workspace, "--help")
	require.NoError(t, err, "Help command should run without error")

	require.Greater(t, len(output), 50, "Help should produce substantial output")
	require.Contains(t, output, "loopedit")
	for _, sub := range []string{"edit", "show", "import", "new", "config"} {
		require.Contains(t, output, sub, "Help should list the %s command", sub)
	}
	require.Contains(t, output, "--sprites", "Help should list the sprites option")
}

func TestNewAndShowCommands(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	doc := filepath.Join(workspace, "hero.yaml")
	_, err = runCLI(t, workspace, "new", "--loops", "2", doc)
	require.NoError(t, err, "new should create the document")

	output, err := runCLI(t, workspace, "show", "--plain", doc)
	require.NoError(t, err, "show should list the document")
	require.Contains(t, output, `View "hero": 2 loop(s)`)
	require.Contains(t, output, "Loop 0 (down)")
	require.Contains(t, output, "Loop 1 (left)")

	// A second new without --force keeps the existing file
	output, err = runCLI(t, workspace, "new", doc)
	require.Error(t, err, "new should refuse to overwrite")
	require.Contains(t, output, "already exists")
}

func TestShowListsFrames(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	doc, err := tf.CreateView("walk", [][]int{{11, 12, 13}, {}}, WithFlipped(1), WithRunNext())
	require.NoError(t, err, "Failed to create view")

	output, err := runCLI(t, tf.workspace, "show", "--plain", doc)
	require.NoError(t, err, "show should list the document")

	require.Contains(t, output, "run next: true  frames: 3")
	require.Contains(t, output, "sprite 12")
	require.Contains(t, output, "flipped")
	require.Contains(t, output, "run next: false  frames: 0")
}

func TestImportCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	root, err := tf.CreateSpriteFolder("walk", 1, 2, 3, 4, 5)
	require.NoError(t, err, "Failed to create sprite folder")
	_, err = tf.CreateSpriteFolder("idle", 20, 21)
	require.NoError(t, err, "Failed to create sprite folder")

	doc, err := tf.CreateView("hero", [][]int{{9}, {}})
	require.NoError(t, err, "Failed to create view")

	output, err := runCLI(t, tf.workspace, "--sprites", root, "import", "--from", "3", "--loop", "0", doc)
	require.NoError(t, err, "import should succeed: %s", output)
	require.Contains(t, output, "Imported 3 frame(s) from folder walk into Loop 0 (down)")

	output, err = runCLI(t, tf.workspace, "show", "--plain", doc)
	require.NoError(t, err)
	require.Contains(t, output, "frames: 4", "imported frames are appended")

	output, err = runCLI(t, tf.workspace, "--sprites", root, "import", "--from", "20", "--loop", "0", "--replace", doc)
	require.NoError(t, err, "replacing import should succeed: %s", output)
	require.Contains(t, output, "Imported 2 frame(s) from folder idle")

	output, err = runCLI(t, tf.workspace, "show", "--plain", doc)
	require.NoError(t, err)
	require.Contains(t, output, "frames: 2")
	require.False(t, strings.Contains(output, "sprite 9 "), "replace clears the loop first")
}

func TestImportCommandByFolder(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	root, err := tf.CreateSpriteFolder("hero/walk", 1, 2, 3)
	require.NoError(t, err)
	_, err = tf.CreateSpriteFolder("villain/walk", 7, 8)
	require.NoError(t, err)
	doc, err := tf.CreateView("hero", [][]int{{}})
	require.NoError(t, err)

	output, err := runCLI(t, tf.workspace, "--sprites", root, "import", "--folder", "villain/walk", doc)
	require.NoError(t, err, "import by folder should succeed: %s", output)
	require.Contains(t, output, "Imported 2 frame(s) from folder villain/walk")

	output, err = runCLI(t, tf.workspace, "--sprites", root, "import", "--folder", "nobody", doc)
	require.Error(t, err)
	require.Contains(t, output, `no sprite folder "nobody"`)
}

func TestImportCommandUnknownSprite(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	root, err := tf.CreateSpriteFolder("walk", 1, 2)
	require.NoError(t, err)
	doc, err := tf.CreateView("hero", [][]int{{}})
	require.NoError(t, err)

	output, err := runCLI(t, tf.workspace, "--sprites", root, "import", "--from", "99", doc)
	require.Error(t, err)
	require.Contains(t, output, "sprite 99 is not in any folder")
}
