// Package storage is the companion's persistent key-value store, the
// counterpart of the browser's localStorage in the original site. Values are
// small JSON blobs or token strings kept in a single sqlite table.
//
// Concurrent processes sharing one database file perform read-modify-write
// sequences that are not atomic across processes; this mirrors the
// cross-tab behavior of localStorage and is accepted at this scope.
package storage

import "context"

// Storage keys. Names match the original site's localStorage keys so a
// persisted state dump reads the same way.
const (
	KeyAuthToken    = "auth_token"
	KeyUserData     = "user_data"
	KeyUsers        = "users"
	KeyGeminiAPIKey = "gemini_api_key"
)

// Store is a persistent string-keyed blob store.
//
// Get returns (nil, nil) when the key is absent, so callers can treat a
// missing key as empty state without error plumbing. Update runs a
// read-modify-write of one key in a single transaction; fn receives nil for
// an absent key and its error aborts the write.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
