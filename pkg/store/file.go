package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/errors"
)

// FileStore persists one JSON document per banner under a directory.
// This is the CLI default backend.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
// The directory is created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "creating store directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads and decodes the banner's document.
func (s *FileStore) Load(ctx context.Context, bannerID string) (comp *banner.Composition, err error) {
	defer func() { observeLoad(ctx, bannerID, err) }()

	data, err := os.ReadFile(s.path(bannerID))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "reading banner %s", bannerID)
	}

	var doc banner.Composition
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decoding banner %s", bannerID)
	}
	return &doc, nil
}

// Save encodes the document and writes it atomically (write + rename).
func (s *FileStore) Save(ctx context.Context, bannerID string, comp *banner.Composition) (err error) {
	defer func() { observeSave(ctx, bannerID, err) }()

	data, err := json.MarshalIndent(comp, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encoding banner %s", bannerID)
	}

	path := s.path(bannerID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing banner %s", bannerID)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing banner %s", bannerID)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// path maps a banner id to its document file, flattening path separators so
// ids can't escape the store directory.
func (s *FileStore) path(bannerID string) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' {
			return '_'
		}
		return r
	}, bannerID)
	return filepath.Join(s.dir, fmt.Sprintf("%s.json", safe))
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
