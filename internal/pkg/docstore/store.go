package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Store is a remote document store addressed by collection key. Set replaces
// the whole value for a key; there is no merge and no server-side locking, so
// callers edit collections as read-modify-write cycles and the last writer
// wins. Keep the window between Get and Set short.
type Store interface {
	// Get returns the current value for key, or ErrKeyNotFound if the key
	// has never been written.
	Get(ctx context.Context, key string) (json.RawMessage, error)

	// Set replaces the value for key.
	Set(ctx context.Context, key string, value json.RawMessage) error
}

var ErrKeyNotFound = errors.New("document key not found")
