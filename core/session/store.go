package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/AhmedMostafa129/Mahd/core"
)

// storage keys
const (
	tokenKey = "token"
	userKey  = "user"
)

// Reader is the read side of the Store, as consumed by guards and the request interceptor.
type Reader interface {
	Token() (string, bool)
	User() (Identity, bool)
	IsAuthenticated() bool
}

// Store is the sole holder of the session token and identity.
//
// It is loaded once from its Storage and answers from memory afterwards, so reads never block.
// Writes go to memory and Storage.
type Store struct {
	storage Storage
	logger  core.Logger

	mu    sync.RWMutex
	token string
	user  *Identity
}

var _ Reader = (*Store)(nil)

func NewStore(storage Storage, logger core.Logger) *Store {
	if logger == nil {
		logger = core.NopLogger()
	}
	return &Store{storage: storage, logger: logger}
}

// Load reads the persisted session into memory.
// If the storage is unavailable the store is left empty (i.e. not authenticated) and the error is
// returned for logging purposes only.
func (s *Store) Load(ctx context.Context) error {
	token, user, err := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.token, s.user = "", nil
		s.logger.Warn("session storage unavailable; continuing unauthenticated", "error", err)
		return err
	}
	s.token, s.user = token, user
	return nil
}

func (s *Store) read(ctx context.Context) (string, *Identity, error) {
	token, err := s.storage.Get(ctx, tokenKey)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return "", nil, nil
		}
		return "", nil, errors.Wrap(err, "reading token")
	}

	raw, err := s.storage.Get(ctx, userKey)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return token, nil, nil
		}
		return "", nil, errors.Wrap(err, "reading user")
	}

	var user Identity
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// a corrupt identity is as good as none; the token alone is kept
		s.logger.Warn("discarding unreadable session identity", "error", err)
		return token, nil, nil
	}
	return token, &user, nil
}

// Set replaces the current session.
func (s *Store) Set(ctx context.Context, sess Session) error {
	if !sess.Valid() {
		return errors.New("session without token")
	}
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return errors.Wrap(err, "encoding user")
	}

	user := sess.User
	s.mu.Lock()
	s.token, s.user = sess.Token, &user
	s.mu.Unlock()

	if err := s.storage.Set(ctx, tokenKey, sess.Token); err != nil {
		return errors.Wrap(err, "persisting token")
	}
	if err := s.storage.Set(ctx, userKey, string(raw)); err != nil {
		return errors.Wrap(err, "persisting user")
	}
	return nil
}

// Token returns the session token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// User returns the signed-in identity, if any.
func (s *Store) User() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return Identity{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a token is present. The token's expiry is not checked.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// ClearAll removes the session from memory and storage. It is idempotent.
// Memory is always cleared, even when the storage fails.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	s.token, s.user = "", nil
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, tokenKey, userKey); err != nil {
		return errors.Wrap(err, "clearing session storage")
	}
	return nil
}
