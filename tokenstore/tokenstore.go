// tokenstore/tokenstore.go
/* The tokenstore package holds the short-lived bearer token used to authenticate against
the streaming API. A store is a dumb single-slot holder: it never inspects expiry, it only
keeps the most recently written TokenInfo. Expiry policy lives in the connector package.
Backends: in-memory (default), file-backed and redis-backed for embedding applications
that need tokens to survive a process or be shared across processes. */
package tokenstore

import (
	"context"
	"sync"
	"time"
)

// TokenInfo is the immutable value describing one issued token. It is replaced wholesale
// on every refresh, never mutated in place.
type TokenInfo struct {
	Token     string    // Token is the opaque credential presented to the streaming API.
	ExpiresAt time.Time // ExpiresAt is the instant the token stops being accepted.
}

// IsExpiring reports whether the token's expiry is at or before the current time.
func (t TokenInfo) IsExpiring() bool {
	return !t.ExpiresAt.After(time.Now())
}

// Store is the contract every token storage backend implements.
// Get returns the stored token and true, or the zero TokenInfo and false when nothing
// has been stored yet. Backends with fallible I/O log their own failures and report
// absent rather than surfacing an error; an empty store is not an error condition.
type Store interface {
	Get(ctx context.Context) (TokenInfo, bool)
	Set(ctx context.Context, token TokenInfo)
}

// MemoryStore is the default Store: a mutex-guarded single slot scoped to the instance
// that constructed it. Construct one per connector; there is no package-level default.
type MemoryStore struct {
	lock  sync.Mutex
	token TokenInfo
	held  bool
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the held token, or false when the store is empty.
func (s *MemoryStore) Get(ctx context.Context) (TokenInfo, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.token, s.held
}

// Set overwrites the held token.
func (s *MemoryStore) Set(ctx context.Context, token TokenInfo) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.token = token
	s.held = true
}
