package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/mkdom/internal/errors"
)

// DiskStore keeps documents as files under a directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed and returns a store rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("E181").WithDetailf("cannot create %s", dir).Wrap(err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the root directory.
func (s *DiskStore) Dir() string {
	return s.dir
}

// path resolves key inside the root. Keys may not escape it.
func (s *DiskStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("E182").WithDetailf("key %q is outside %s", key, s.dir)
	}
	return filepath.Join(s.dir, clean), nil
}

// Load reads the document stored under key.
func (s *DiskStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New("E180").WithDetail(path)
	}
	if err != nil {
		return nil, errors.New("E180").WithDetail(path).Wrap(err)
	}
	return data, nil
}

// Save writes data under key. The file is replaced atomically.
func (s *DiskStore) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("E181").WithDetail(path).Wrap(err)
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+tempSuffix())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return errors.New("E181").WithDetail(path).Wrap(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.New("E181").WithDetail(path).Wrap(err)
	}
	return nil
}

func tempSuffix() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
