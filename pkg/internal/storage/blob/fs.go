package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/configs"
)

func init() {
	RegisterFactory(configs.BlobTypeFS, func(_ context.Context, cfg *configs.BlobConfig) (Store, error) {
		return NewFSStore(cfg.ResolveRoot())
	})
}

// FSStore stores blobs as plain files under root, one subdirectory per
// category, file name equal to the identifier with no extension. It is the
// default backend and the reference for the store semantics.
type FSStore struct {
	root string
}

// NewFSStore creates the root and all category directories up front so Put
// never races directory creation.
func NewFSStore(root string) (*FSStore, error) {
	for _, c := range Categories {
		if err := os.MkdirAll(filepath.Join(root, string(c)), 0o755); err != nil {
			return nil, apperr.BlobStore("init", string(c), "", err)
		}
	}

	log.Debug().Str("root", root).Msg("filesystem blob store ready")

	return &FSStore{root: root}, nil
}

// Root returns the store's base directory.
func (s *FSStore) Root() string { return s.root }

func (s *FSStore) path(key string, category Category) (string, error) {
	// Keys are self-allocated ULIDs; anything with a separator is hostile
	// input, not a lost blob.
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", apperr.Validation("key", fmt.Sprintf("malformed blob identifier %q", key))
	}
	if !category.Valid() {
		return "", apperr.Validation("category", fmt.Sprintf("unknown blob category %q", category))
	}

	return filepath.Join(s.root, string(category), key), nil
}

// Put writes data under a fresh identifier and returns it.
func (s *FSStore) Put(_ context.Context, data []byte, category Category) (string, error) {
	if !category.Valid() {
		return "", apperr.Validation("category", fmt.Sprintf("unknown blob category %q", category))
	}

	key, err := newKey()
	if err != nil {
		return "", apperr.BlobStore("put", string(category), "", err)
	}

	p := filepath.Join(s.root, string(category), key)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", apperr.BlobStore("put", string(category), key, err)
	}

	return key, nil
}

// Get returns the stored bytes for key.
func (s *FSStore) Get(_ context.Context, key string, category Category) ([]byte, error) {
	p, err := s.path(key, category)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFound("blob", key)
		}

		return nil, apperr.BlobStore("get", string(category), key, err)
	}

	return data, nil
}

// Delete removes the blob file.
func (s *FSStore) Delete(_ context.Context, key string, category Category) error {
	p, err := s.path(key, category)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.NotFound("blob", key)
		}

		return apperr.BlobStore("delete", string(category), key, err)
	}

	return nil
}

// Exists reports whether key resolves in category.
func (s *FSStore) Exists(_ context.Context, key string, category Category) (bool, error) {
	p, err := s.path(key, category)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, apperr.BlobStore("stat", string(category), key, err)
	}

	return true, nil
}

// List enumerates the category directory.
func (s *FSStore) List(_ context.Context, category Category) ([]Info, error) {
	if !category.Valid() {
		return nil, apperr.Validation("category", fmt.Sprintf("unknown blob category %q", category))
	}

	entries, err := os.ReadDir(filepath.Join(s.root, string(category)))
	if err != nil {
		return nil, apperr.BlobStore("list", string(category), "", err)
	}

	infos := make([]Info, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		fi, err := e.Info()
		if err != nil {
			continue
		}

		infos = append(infos, Info{Key: e.Name(), Size: fi.Size(), ModTime: fi.ModTime()})
	}

	return infos, nil
}

// Close is a no-op for the filesystem backend.
func (s *FSStore) Close() error { return nil }
