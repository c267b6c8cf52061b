// Package metadata is the local key/value store of the client. It backs the
// persistent credential-token slot.
package metadata

import "context"

// Repository is a byte-valued key/value store.
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not
// an error. Clear empties the whole store.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
