package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Substrate when a key has no entry.
var ErrNotFound = errors.New("cache: key not found")

// Substrate is the key-value layer underneath the expiring store. Entries
// are opaque bytes; expiry bookkeeping lives in the store envelope, a
// substrate only has to keep whole values by key.
//
// Set entries are subject to the substrate's retention policy. SetPersistent
// entries are exempt: they stay until deleted, which is what plain settings
// such as the manual city selection need.
type Substrate interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetPersistent(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
