// Package metadata stores small key/value pairs of client state (the admin
// session) in the local SQLite database.
package metadata

import (
	"context"
)

// Repository is a flat key/value store. Keys are namespaced by a dotted
// prefix, e.g. "session.token".
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) (map[string][]byte, error)
	DeletePrefix(ctx context.Context, prefix string) error
}
