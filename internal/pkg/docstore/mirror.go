package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// MirrorStore decorates a primary Store with a best-effort local file cache,
// the server-side counterpart of the portal's localStorage mirror. Every
// successful Set is also written to <dir>/<key>.json; when the primary Get
// fails the cached file is served instead. The mirror carries no consistency
// guarantee: cache write failures are logged and ignored.
type MirrorStore struct {
	primary Store
	dir     string
}

func NewMirrorStore(primary Store, dir string) (*MirrorStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &MirrorStore{primary: primary, dir: dir}, nil
}

func (s *MirrorStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if err == ErrKeyNotFound {
		return nil, err
	}

	cached, cacheErr := os.ReadFile(s.cachePath(key))
	if cacheErr != nil {
		return nil, err
	}
	slog.Warn("serving document from local cache", "key", key, "error", err)
	return json.RawMessage(cached), nil
}

func (s *MirrorStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	if err := s.primary.Set(ctx, key, value); err != nil {
		return err
	}
	if err := os.WriteFile(s.cachePath(key), value, 0644); err != nil {
		slog.Warn("failed to mirror document to local cache", "key", key, "error", err)
	}
	return nil
}

// cachePath sanitizes the key so a hostile collection name cannot escape the
// cache directory.
func (s *MirrorStore) cachePath(key string) string {
	clean := filepath.Base(filepath.Clean(strings.ReplaceAll(key, string(os.PathSeparator), "_")))
	return filepath.Join(s.dir, clean+".json")
}
