package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thirukguru/aws-list-all/shared/fileutil"
)

// PackagedPath is the source location of the catalog compiled into the
// binary, relative to the repository root.
const PackagedPath = "service/catalog/data/catalog.json"

//go:embed data/catalog.json
var packagedCatalog []byte

// Store reads and writes a catalog Document at a path.
type Store struct {
	Path string
}

// DefaultUserPath returns the per-user cache location.
func DefaultUserPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache dir: %w", err)
	}
	return filepath.Join(dir, "aws_list_all", "catalog.json"), nil
}

// Load reads the document. A missing file yields an empty document; a file
// that cannot be decoded is an error.
func (s *Store) Load() (Document, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Document{Services: map[string]Entry{}}, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to read catalog cache: %w", err)
	}
	return decodeDocument(b, s.Path)
}

// Save replaces the document atomically.
func (s *Store) Save(doc Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return fileutil.WriteFileAtomic(s.Path, append(b, '\n'))
}

func decodeDocument(b []byte, source string) (Document, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Document{}, fmt.Errorf("corrupt catalog cache %s: %w", source, err)
	}
	if doc.Services == nil {
		doc.Services = map[string]Entry{}
	}
	return doc, nil
}

func loadPackaged() (Document, error) {
	return decodeDocument(packagedCatalog, "(packaged)")
}
