// Package storage persists uploaded files (product images, team photos, CVs)
// under a single upload directory. Stored names are prefixed with a UUID so
// two uploads with the same original filename never clobber each other.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind selects the extension allowlist for an upload.
type Kind int

const (
	KindImage Kind = iota
	KindCV
)

var (
	// ErrInvalidType is returned when an upload's extension is not allowed
	// for its kind. Handlers map it to a 400.
	ErrInvalidType = errors.New("invalid file type")

	// ErrNotFound is returned when a stored file does not exist.
	ErrNotFound = errors.New("file not found")
)

var allowedExts = map[Kind]map[string]bool{
	KindImage: {".png": true, ".jpg": true, ".jpeg": true, ".gif": true},
	KindCV:    {".pdf": true, ".doc": true, ".docx": true, ".txt": true},
}

// FileStore is the storage contract handlers depend on.
type FileStore interface {
	// Save writes src under a collision-free key derived from the original
	// filename and returns that key.
	Save(name string, src io.Reader, kind Kind) (string, error)
	// Path resolves a stored key to an absolute path on disk.
	Path(name string) (string, error)
}

// DiskStore stores files on the local filesystem.
type DiskStore struct {
	dir string
}

var _ FileStore = (*DiskStore)(nil)

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(name string, src io.Reader, kind Kind) (string, error) {
	base := sanitize(name)
	ext := strings.ToLower(filepath.Ext(base))
	if !allowedExts[kind][ext] {
		return "", ErrInvalidType
	}

	stored := uuid.NewString() + "_" + base
	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}

	return stored, nil
}

func (s *DiskStore) Path(name string) (string, error) {
	base := sanitize(name)
	if base == "" || base == "." {
		return "", ErrNotFound
	}

	p := filepath.Join(s.dir, base)
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}

		return "", err
	}

	return p, nil
}

// sanitize strips any path components from an uploaded filename.
func sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return filepath.Base(name)
}
