package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	activitiesFile  = "activities.json"
	restaurantsFile = "restaurants.json"
	comboImagesFile = "combo_images.json"
)

// EmbeddedSource serves the demo catalog compiled into the binary.
type EmbeddedSource struct{}

// Load decodes the embedded catalog.
func (EmbeddedSource) Load(_ context.Context) (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded catalog: %w", err)
	}
	return loadFS(sub, false)
}

// FileSource reads a catalog from a directory holding activities.json,
// restaurants.json and, optionally, combo_images.json.
type FileSource struct {
	Dir string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Load reads and decodes the catalog files.
func (s *FileSource) Load(_ context.Context) (*Catalog, error) {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalog directory %s: %w", s.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", s.Dir)
	}

	cat, err := loadFS(os.DirFS(s.Dir), true)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", filepath.Clean(s.Dir), err)
	}
	return cat, nil
}

// Default returns the embedded catalog and panics if it cannot be decoded,
// which only happens when the binary was built with broken data files.
func Default() *Catalog {
	cat, err := EmbeddedSource{}.Load(context.Background())
	if err != nil {
		panic(err)
	}
	return cat
}

func loadFS(fsys fs.FS, comboOptional bool) (*Catalog, error) {
	var cat Catalog
	if err := decodeFile(fsys, activitiesFile, &cat.Activities); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, restaurantsFile, &cat.Restaurants); err != nil {
		return nil, err
	}

	err := decodeFile(fsys, comboImagesFile, &cat.ComboImages)
	if err != nil {
		if !comboOptional || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		// Directory catalogs without their own combo art reuse the demo set.
		fallback, ferr := EmbeddedSource{}.Load(context.Background())
		if ferr != nil {
			return nil, ferr
		}
		cat.ComboImages = fallback.ComboImages
	}

	return &cat, nil
}

func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}
