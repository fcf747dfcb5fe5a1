package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Blob describes one archived source document.
type Blob struct {
	Key       string
	URL       string
	SHA256Hex string
	Size      int64
}

// Store archives uploaded documents so a stored match can always point back
// at the files it was extracted from.
type Store interface {
	Put(ctx context.Context, filename string, r io.Reader) (Blob, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// fsStore keeps blobs as flat files under a single directory. Keys are
// random so two uploads of the same filename never collide.
type fsStore struct {
	dir    string
	logger *slog.Logger
}

func NewFSStore(dir string, logger *slog.Logger) (Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &fsStore{dir: abs, logger: logger}, nil
}

func (s *fsStore) Put(_ context.Context, filename string, r io.Reader) (Blob, error) {
	key := uuid.New().String() + normalizeExt(filename)
	path := filepath.Join(s.dir, key)

	f, err := os.Create(path)
	if err != nil {
		return Blob{}, fmt.Errorf("create blob: %w", err)
	}

	h := sha256.New()
	size, err := io.Copy(io.MultiWriter(f, h), r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return Blob{}, fmt.Errorf("write blob: %w", err)
	}

	blob := Blob{
		Key:       key,
		URL:       "file://" + path,
		SHA256Hex: hex.EncodeToString(h.Sum(nil)),
		Size:      size,
	}
	s.logger.Info("blob.stored", "key", key, "size", size, "filename", filename)
	return blob, nil
}

func (s *fsStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(key)))
}

func (s *fsStore) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(key)))
}

// normalizeExt returns the lowercased extension including the dot, or ""
// when the filename has none.
func normalizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "." {
		return ""
	}
	return ext
}
