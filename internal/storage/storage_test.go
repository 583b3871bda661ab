package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kloop/amco/internal/storage"
)

func TestSaveAndPath(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	key, err := store.Save("photo.PNG", strings.NewReader("png-bytes"), storage.KindImage)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !strings.HasSuffix(key, "_photo.PNG") {
		t.Fatalf("stored key %q should keep the original base name", key)
	}

	p, err := store.Path(key)
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored content = %q", data)
	}
}

func TestSaveCollisionFreeKeys(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	first, err := store.Save("cv.pdf", strings.NewReader("first"), storage.KindCV)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	second, err := store.Save("cv.pdf", strings.NewReader("second"), storage.KindCV)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if first == second {
		t.Fatalf("two uploads of the same filename got the same key %q", first)
	}

	p, err := store.Path(first)
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if data, _ := os.ReadFile(p); string(data) != "first" {
		t.Fatalf("first upload overwritten: %q", data)
	}
}

func TestSaveRejectsDisallowedTypes(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	tests := []struct {
		name string
		kind storage.Kind
	}{
		{"malware.exe", storage.KindImage},
		{"cv.pdf", storage.KindImage},
		{"photo.png", storage.KindCV},
		{"noext", storage.KindCV},
	}
	for _, tt := range tests {
		if _, err := store.Save(tt.name, strings.NewReader("x"), tt.kind); !errors.Is(err, storage.ErrInvalidType) {
			t.Errorf("Save(%q, kind %d) = %v, want ErrInvalidType", tt.name, tt.kind, err)
		}
	}
}

func TestSaveStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	key, err := store.Save("../../etc/passwd.txt", strings.NewReader("x"), storage.KindCV)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if strings.ContainsAny(key, "/\\") {
		t.Fatalf("stored key %q contains path separators", key)
	}
	if _, err := os.Stat(filepath.Join(dir, key)); err != nil {
		t.Fatalf("file not stored inside upload dir: %v", err)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	outside := filepath.Join(filepath.Dir(dir), "secret.txt")
	if err := os.WriteFile(outside, []byte("secret"), 0o600); err != nil {
		t.Fatalf("write outside file: %v", err)
	}

	if p, err := store.Path("../secret.txt"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Path(../secret.txt) = %q, %v, want ErrNotFound", p, err)
	}
	if _, err := store.Path("missing.png"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Path(missing.png) = %v, want ErrNotFound", err)
	}
}
