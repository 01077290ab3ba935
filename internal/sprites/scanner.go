package sprites

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"loopedit/internal/domain"
	"loopedit/internal/eventbus"
)

// ErrNoFolders is returned when a scan or catalog yields no sprites
var ErrNoFolders = errors.New("no sprite folders found")

var imageExts = map[string]bool{
	".png": true, ".bmp": true, ".gif": true, ".jpg": true, ".jpeg": true,
}

// Scanner builds a sprite folder tree from a directory. Every directory
// becomes a folder; files named "<number>.<image ext>" become sprites.
type Scanner struct {
	bus      eventbus.EventBus
	maxDepth int
}

// NewScanner creates a new scanner
func NewScanner(bus eventbus.EventBus) *Scanner {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Scanner{bus: bus, maxDepth: 5}
}

// Scan walks root and returns its folder tree
func (s *Scanner) Scan(ctx context.Context, root string) (*domain.SpriteFolder, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat sprite root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sprite root %s is not a directory", root)
	}

	folders := map[string]*domain.SpriteFolder{}
	rootFolder := &domain.SpriteFolder{Name: filepath.Base(root)}
	folders["."] = rootFolder
	total := 0

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("error walking sprite path")
			return nil
		}

		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || strings.Count(rel, string(filepath.Separator)) >= s.maxDepth {
				return filepath.SkipDir
			}
			folder := &domain.SpriteFolder{Name: filepath.ToSlash(rel)}
			folders[rel] = folder
			if parent, ok := folders[filepath.Dir(rel)]; ok {
				parent.Folders = append(parent.Folders, folder)
			}
			return nil
		}

		number, ok := spriteNumber(d.Name())
		if !ok {
			return nil
		}
		if folder, ok := folders[filepath.Dir(rel)]; ok {
			folder.Sprites = append(folder.Sprites, number)
			total++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if total == 0 {
		return nil, ErrNoFolders
	}

	for _, f := range folders {
		sort.Ints(f.Sprites)
	}

	log.Info().Str("root", root).Int("folders", len(folders)).Int("sprites", total).Msg("sprite scan completed")
	s.bus.Publish(eventbus.SpriteScanCompletedEvent{Root: root, Folders: len(folders), Sprites: total})
	return rootFolder, nil
}

// spriteNumber parses "<number>.<ext>" file names
func spriteNumber(name string) (int, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if !imageExts[ext] {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(name, filepath.Ext(name)))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// LoadCatalog reads a YAML sprite catalog holding a root folder
func LoadCatalog(path string) (*domain.SpriteFolder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite catalog: %w", err)
	}
	var root domain.SpriteFolder
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse sprite catalog: %w", err)
	}
	if len(root.Sprites) == 0 && len(root.Folders) == 0 {
		return nil, ErrNoFolders
	}
	return &root, nil
}

// Open loads sprite folders from a catalog file or scans a directory
func Open(ctx context.Context, bus eventbus.EventBus, path string) (*MemoryFolderStore, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open sprites: %w", err)
	}
	var root *domain.SpriteFolder
	if info.IsDir() {
		root, err = NewScanner(bus).Scan(ctx, path)
	} else {
		root, err = LoadCatalog(path)
	}
	if err != nil {
		return nil, err
	}
	return NewMemoryFolderStoreFrom(root), nil
}
