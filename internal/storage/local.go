package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoredFile is the reference returned after a successful save. The rest of
// the application records only this reference.
type StoredFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// FileStore persists binary payloads and returns retrievable references.
type FileStore interface {
	Save(filename string, r io.Reader) (*StoredFile, error)
}

// LocalStore writes uploads to a directory on local disk.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a LocalStore rooted at dir; saved files are exposed
// under baseURL.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes the payload under a uuid-prefixed name to avoid collisions and
// returns the reference. The original filename is preserved in the reference
// for display.
func (s *LocalStore) Save(filename string, r io.Reader) (*StoredFile, error) {
	safe := strings.ReplaceAll(filepath.Base(filename), " ", "_")
	stored := fmt.Sprintf("%s-%s", uuid.New().String(), safe)

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredFile{
		URL:      s.baseURL + "/" + stored,
		Filename: filename,
	}, nil
}
