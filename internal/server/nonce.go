package server

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// NonceStore issues anti-forgery tokens bound to a user. A nonce stays valid
// for its TTL and may be reused by the same user during that time.
type NonceStore struct {
	cache *gocache.Cache
}

// NewNonceStore creates a store whose nonces expire after ttl
func NewNonceStore(ttl time.Duration) *NonceStore {
	return &NonceStore{cache: gocache.New(ttl, ttl/2)}
}

// Issue returns a fresh nonce for userID
func (n *NonceStore) Issue(userID uint) string {
	nonce := uuid.New().String()
	n.cache.SetDefault(nonce, userID)
	return nonce
}

// Verify reports whether nonce was issued to userID and has not expired
func (n *NonceStore) Verify(userID uint, nonce string) bool {
	if nonce == "" {
		return false
	}
	owner, ok := n.cache.Get(nonce)
	if !ok {
		return false
	}
	return owner.(uint) == userID
}
