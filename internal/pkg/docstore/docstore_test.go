package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

func TestMemoryStore_GetMissingKey(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), "lateCheckInRecords")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get on empty store = %v, want ErrKeyNotFound", err)
	}
}

func TestMemoryStore_SetReplacesWholeValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", json.RawMessage(`[1,2,3]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "k", json.RawMessage(`[4]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[4]` {
		t.Errorf("Get = %s, want [4] (whole-value replace, not merge)", got)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Set(ctx, "k", json.RawMessage(`"abc"`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	first, _ := store.Get(ctx, "k")
	first[1] = 'x'

	second, _ := store.Get(ctx, "k")
	if string(second) != `"abc"` {
		t.Errorf("mutating a Get result leaked into the store: %s", second)
	}
}

type failingStore struct{ err error }

func (f *failingStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	return nil, f.err
}

func (f *failingStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	return f.err
}

func TestMirrorStore_ServesCacheWhenPrimaryFails(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	primary := NewMemoryStore()
	mirror, err := NewMirrorStore(primary, dir)
	if err != nil {
		t.Fatalf("NewMirrorStore: %v", err)
	}
	if err := mirror.Set(ctx, "lateCheckInRecords", json.RawMessage(`[{"employee":"Ana"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Same cache dir, now with a broken primary.
	broken, err := NewMirrorStore(&failingStore{err: errors.New("transport down")}, dir)
	if err != nil {
		t.Fatalf("NewMirrorStore: %v", err)
	}
	got, err := broken.Get(ctx, "lateCheckInRecords")
	if err != nil {
		t.Fatalf("Get with failing primary = %v, want cached value", err)
	}
	if string(got) != `[{"employee":"Ana"}]` {
		t.Errorf("cached value = %s", got)
	}
}

func TestMirrorStore_KeyNotFoundIsNotMasked(t *testing.T) {
	ctx := context.Background()
	mirror, err := NewMirrorStore(NewMemoryStore(), t.TempDir())
	if err != nil {
		t.Fatalf("NewMirrorStore: %v", err)
	}
	_, err = mirror.Get(ctx, "missing")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get missing key = %v, want ErrKeyNotFound", err)
	}
}

func TestMirrorStore_CachePathStaysInDir(t *testing.T) {
	dir := t.TempDir()
	mirror, err := NewMirrorStore(NewMemoryStore(), dir)
	if err != nil {
		t.Fatalf("NewMirrorStore: %v", err)
	}
	path := mirror.cachePath("../../etc/passwd")
	if filepath.Dir(path) != dir {
		t.Errorf("cachePath escaped the cache directory: %s", path)
	}
}
