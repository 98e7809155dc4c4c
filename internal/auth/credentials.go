// Package auth holds the credential store and the authenticator. Passwords
// are stored only as bcrypt digests (salted, iterated); plaintext never
// leaves the hashing call.
package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("password cannot be empty")

// CredentialStore maps usernames to bcrypt digests.
type CredentialStore struct {
	mu      sync.RWMutex
	digests map[string][]byte
	cost    int

	// dummyDigest is compared against when the username is unknown so that
	// verification cost does not reveal whether the username exists.
	dummyDigest []byte
}

// NewCredentialStore creates an empty store hashing at the given bcrypt cost.
// Costs outside bcrypt's supported range fall back to the default cost.
func NewCredentialStore(cost int) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("credential-store-dummy"), cost)
	if err != nil {
		// GenerateFromPassword only fails for out-of-range costs, which are
		// clamped above.
		panic(err)
	}
	return &CredentialStore{
		digests:     make(map[string][]byte),
		cost:        cost,
		dummyDigest: dummy,
	}
}

// Put hashes the password and stores the digest for username, replacing any
// previous digest.
func (s *CredentialStore) Put(username, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.digests[username] = digest
	return nil
}

// Verify reports whether password matches the stored digest for username.
// An unknown username still pays a full bcrypt comparison.
func (s *CredentialStore) Verify(username, password string) bool {
	s.mu.RLock()
	digest, ok := s.digests[username]
	s.mu.RUnlock()
	if !ok {
		_ = bcrypt.CompareHashAndPassword(s.dummyDigest, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword(digest, []byte(password)) == nil
}

// Has reports whether a digest is stored for username.
func (s *CredentialStore) Has(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.digests[username]
	return ok
}
