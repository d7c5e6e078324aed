// Package kv is the persistent key-value substrate the directory store is
// built on: opaque byte values under string keys, stored in a single SQL
// table so that several keys can be written in one transaction.
package kv

import "context"

// Repository is a key-value table bound to a connection or a transaction.
//
// Get returns (nil, nil) for an absent key and a non-nil slice, possibly
// empty, for a present one. Delete of an absent key is not
// an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
