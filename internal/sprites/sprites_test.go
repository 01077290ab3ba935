package sprites

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loopedit/internal/domain"
	"loopedit/internal/eventbus"
	"loopedit/internal/eventbus/testbus"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestSpriteNumber(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{name: "12.png", want: 12, ok: true},
		{name: "7.JPEG", want: 7, ok: true},
		{name: "0.png"},
		{name: "-3.png"},
		{name: "walk.png"},
		{name: "12.txt"},
		{name: "12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := spriteNumber(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "1.png"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "walk", "12.png"))
	touch(t, filepath.Join(root, "walk", "10.png"))
	touch(t, filepath.Join(root, "walk", "left", "20.gif"))
	touch(t, filepath.Join(root, ".hidden", "30.png"))

	tb := testbus.New(t)
	folder, err := NewScanner(tb).Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, folder.Sprites)
	require.Len(t, folder.Folders, 1)
	walk := folder.Folders[0]
	assert.Equal(t, "walk", walk.Name)
	assert.Equal(t, []int{10, 12}, walk.Sprites)
	require.Len(t, walk.Folders, 1)
	assert.Equal(t, "walk/left", walk.Folders[0].Name)
	assert.Nil(t, folder.FindFolderThatContainsSprite(30))

	events := tb.OfType(eventbus.EventSpriteScanCompleted)
	require.Len(t, events, 1)
	assert.Equal(t, 4, events[0].(eventbus.SpriteScanCompletedEvent).Sprites)
}

func TestScan_Errors(t *testing.T) {
	s := NewScanner(nil)

	_, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	_, err = s.Scan(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNoFolders)

	file := filepath.Join(t.TempDir(), "1.png")
	touch(t, file)
	_, err = s.Scan(context.Background(), file)
	assert.Error(t, err)
}

func TestScan_Cancelled(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "1.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(nil).Scan(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: root
sprites: [1, 2]
folders:
  - name: run
    sprites: [5, 6, 7]
`), 0644))

	root, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "root", root.Name)
	require.Len(t, root.Folders, 1)
	assert.Equal(t, []int{5, 6, 7}, root.Folders[0].Sprites)
}

func TestLoadCatalog_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: root\n"), 0644))

	_, err := LoadCatalog(path)
	assert.ErrorIs(t, err, ErrNoFolders)
}

func TestOpen(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "run", "5.png"))
	touch(t, filepath.Join(root, "run", "6.png"))

	store, err := Open(context.Background(), nil, root)
	require.NoError(t, err)

	folder, ok := store.FolderContaining(6)
	require.True(t, ok)
	assert.Equal(t, "run", folder.Name)
	assert.Same(t, folder, store.GetFolder("run"))
}

func TestMemoryFolderStore(t *testing.T) {
	run := &domain.SpriteFolder{Name: "run", Sprites: []int{4, 5}}
	alsoRun := &domain.SpriteFolder{Name: "b-run", Sprites: []int{5}}
	root := &domain.SpriteFolder{Name: "root", Sprites: []int{1}, Folders: []*domain.SpriteFolder{run, alsoRun}}
	store := NewMemoryFolderStoreFrom(root)

	assert.Len(t, store.GetAllFolders(), 3)
	assert.Same(t, root, store.GetFolder("."))
	assert.Same(t, run, store.GetFolder("run"))
	assert.Same(t, run, store.GetFolder("./run/"))

	folder, ok := store.FolderContaining(5)
	require.True(t, ok)
	assert.Same(t, alsoRun, folder, "ties resolve by folder path")

	_, ok = store.FolderContaining(99)
	assert.False(t, ok)
}

func TestMemoryFolderStore_SameNameInDifferentParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: root
folders:
  - name: hero
    folders:
      - name: walk
        sprites: [1, 2]
  - name: villain
    folders:
      - name: walk
        sprites: [7, 8]
`), 0644))

	root, err := LoadCatalog(path)
	require.NoError(t, err)
	store := NewMemoryFolderStoreFrom(root)

	folder, ok := store.FolderContaining(2)
	require.True(t, ok, "the first walk folder must stay reachable")
	assert.Equal(t, []int{1, 2}, folder.Sprites)
	assert.Same(t, folder, store.GetFolder("hero/walk"))

	folder, ok = store.FolderContaining(8)
	require.True(t, ok)
	assert.Same(t, folder, store.GetFolder("villain/walk"))
	assert.Len(t, store.GetAllFolders(), 5)
}

func TestMemoryFolderStore_ScannedPaths(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "walk", "1.png"))
	touch(t, filepath.Join(root, "walk", "left", "2.png"))

	store, err := Open(context.Background(), nil, root)
	require.NoError(t, err)

	require.NotNil(t, store.GetFolder("walk/left"))
	assert.Equal(t, []int{2}, store.GetFolder("walk/left").Sprites)
	assert.Equal(t, []int{1}, store.GetFolder("walk").Sprites)
}
