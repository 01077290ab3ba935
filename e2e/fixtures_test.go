//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ViewOption configures view document creation
type ViewOption func(*viewOptions)

type viewOptions struct {
	runNext bool
	flipped map[int]bool // frame index -> flipped in every loop
}

// WithRunNext marks every loop but the last as running into the next one
func WithRunNext() ViewOption {
	return func(opts *viewOptions) {
		opts.runNext = true
	}
}

// WithFlipped mirrors the frames at the given indexes
func WithFlipped(indexes ...int) ViewOption {
	return func(opts *viewOptions) {
		if opts.flipped == nil {
			opts.flipped = make(map[int]bool)
		}
		for _, i := range indexes {
			opts.flipped[i] = true
		}
	}
}

// CreateTestWorkspace creates a temporary directory for documents and sprites
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateView writes a view document to the workspace. Each entry of loops
// lists the sprite numbers of one loop's frames.
func (tf *TUITestFramework) CreateView(name string, loops [][]int, options ...ViewOption) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	opts := &viewOptions{}
	for _, opt := range options {
		opt(opts)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\nloops:\n", name)
	directions := []string{"down", "left", "right", "up"}
	for i, frames := range loops {
		fmt.Fprintf(&b, "  - id: %d\n", i)
		fmt.Fprintf(&b, "    direction: %s\n", directions[i%len(directions)])
		fmt.Fprintf(&b, "    run_next_loop: %t\n", opts.runNext && i < len(loops)-1)
		if len(frames) == 0 {
			b.WriteString("    frames: []\n")
			continue
		}
		b.WriteString("    frames:\n")
		for j, sprite := range frames {
			fmt.Fprintf(&b, "      - id: %d\n", j)
			fmt.Fprintf(&b, "        image: %d\n", sprite)
			fmt.Fprintf(&b, "        flipped: %t\n", opts.flipped[j])
			b.WriteString("        delay: 0\n")
			b.WriteString("        sound: 0\n")
		}
	}

	path := filepath.Join(tf.workspace, name+".yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write view: %w", err)
	}
	return path, nil
}

// CreateSpriteFolder creates a sprite folder under workspace/sprites with
// one empty file per sprite number
func (tf *TUITestFramework) CreateSpriteFolder(name string, sprites ...int) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	dir := filepath.Join(tf.workspace, "sprites", name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create sprite folder: %w", err)
	}
	for _, n := range sprites {
		file := filepath.Join(dir, fmt.Sprintf("%d.png", n))
		if err := os.WriteFile(file, nil, 0644); err != nil {
			return "", fmt.Errorf("failed to create sprite %d: %w", n, err)
		}
	}
	return filepath.Join(tf.workspace, "sprites"), nil
}

// ReadView returns the raw contents of a view document
func (tf *TUITestFramework) ReadView(path string) string {
	tf.t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tf.t.Fatalf("failed to read view %s: %v", path, err)
	}
	return string(data)
}
