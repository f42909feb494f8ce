// Package credstore is the TTL-keyed credential store backing pending OTP
// codes and attempt counters. Every record expires on its own; callers never
// garbage-collect.
package credstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrMiss is returned by Get when a key is absent or its TTL has elapsed.
// It is distinct from infrastructure failures, which wrap the underlying
// store error.
var ErrMiss = errors.New("credential store: miss")

// Store is the TTL key/value contract. Increment must be atomic across
// concurrent callers so parallel wrong guesses cannot both observe the same
// attempt number.
type Store interface {
	Put(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, key string) error
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Key derives a namespaced store key from an identifier. The identifier is
// hashed so it never appears in the keyspace in plaintext.
func Key(namespace, identifier string) string {
	sum := sha256.Sum256([]byte(identifier))
	return namespace + ":" + hex.EncodeToString(sum[:])
}
