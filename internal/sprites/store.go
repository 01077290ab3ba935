package sprites

import (
	"path"
	"sort"
	"sync"

	"loopedit/internal/domain"
)

// FolderStore provides access to sprite folders by their path below the
// sprite root, e.g. "hero/walk"
type FolderStore interface {
	GetFolder(path string) *domain.SpriteFolder
	GetAllFolders() map[string]*domain.SpriteFolder
	FolderContaining(sprite int) (*domain.SpriteFolder, bool)
}

// MemoryFolderStore is an in-memory implementation of FolderStore
type MemoryFolderStore struct {
	mu      sync.RWMutex
	folders map[string]*domain.SpriteFolder
}

// NewMemoryFolderStore creates a new memory-based folder store
func NewMemoryFolderStore() *MemoryFolderStore {
	return &MemoryFolderStore{
		folders: make(map[string]*domain.SpriteFolder),
	}
}

// NewMemoryFolderStoreFrom creates a store holding root and all its
// subfolders. root is stored as "."; every subfolder under its parent's
// path joined with the last element of its name.
func NewMemoryFolderStoreFrom(root *domain.SpriteFolder) *MemoryFolderStore {
	s := NewMemoryFolderStore()
	if root == nil {
		return s
	}
	var walk func(p string, f *domain.SpriteFolder)
	walk = func(p string, f *domain.SpriteFolder) {
		s.AddFolder(p, f)
		for _, sub := range f.Folders {
			walk(path.Join(p, path.Base(sub.Name)), sub)
		}
	}
	walk(".", root)
	return s
}

func (s *MemoryFolderStore) GetFolder(p string) *domain.SpriteFolder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folders[path.Clean(p)]
}

func (s *MemoryFolderStore) GetAllFolders() map[string]*domain.SpriteFolder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make(map[string]*domain.SpriteFolder)
	for k, v := range s.folders {
		result[k] = v
	}
	return result
}

// AddFolder stores folder under p, replacing any folder already there
func (s *MemoryFolderStore) AddFolder(p string, folder *domain.SpriteFolder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders[path.Clean(p)] = folder
}

// FolderContaining returns the folder listing sprite directly. Folder
// paths are searched in sorted order so the answer is stable.
func (s *MemoryFolderStore) FolderContaining(sprite int) (*domain.SpriteFolder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.paths() {
		f := s.folders[p]
		for _, sp := range f.Sprites {
			if sp == sprite {
				return f, true
			}
		}
	}
	return nil, false
}

func (s *MemoryFolderStore) paths() []string {
	paths := make([]string, 0, len(s.folders))
	for p := range s.folders {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
