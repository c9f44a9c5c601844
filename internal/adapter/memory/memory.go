// Package memory implements in-memory repositories for development and
// testing, plus the process-local session store.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"inventoried/internal/domain"
)

// DB implements the record-store ports in memory. Identifiers follow the
// store's 24-hex-digit format so id validation behaves the same as
// against the real store.
type DB struct {
	mu    sync.Mutex
	items []domain.Item
	users []domain.User
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.ItemRepository = (*DB)(nil)
var _ domain.UserRepository = (*UserRepo)(nil)
var _ domain.SessionStore = (*SessionStore)(nil)

func newID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// --- ItemRepository ---

// List returns all items, newest first.
func (db *DB) List(ctx context.Context) ([]domain.Item, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Item, len(db.items))
	copy(result, db.items)
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// GetByID returns the item with the given id, or nil if absent.
func (db *DB) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.items {
		if db.items[i].ID == id {
			item := db.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

// Create stores a new item and assigns its id.
func (db *DB) Create(ctx context.Context, item *domain.Item) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	item.ID = newID()
	db.items = append(db.items, *item)
	return nil
}

// Update applies the supplied fields and refreshes updatedAt.
func (db *DB) Update(ctx context.Context, id string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.items {
		if db.items[i].ID != id {
			continue
		}
		it := &db.items[i]
		if patch.Name != nil {
			it.Name = *patch.Name
		}
		if patch.Description != nil {
			it.Description = *patch.Description
		}
		if patch.Price != nil {
			it.Price = *patch.Price
		}
		if patch.Category != nil {
			it.Category = *patch.Category
		}
		if patch.Stock != nil {
			it.Stock = *patch.Stock
		}
		it.UpdatedAt = updatedAt
		item := *it
		return &item, nil
	}
	return nil, nil
}

// Delete removes the item and returns the removed record, or nil if absent.
func (db *DB) Delete(ctx context.Context, id string) (*domain.Item, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.items {
		if db.items[i].ID == id {
			item := db.items[i]
			db.items = append(db.items[:i], db.items[i+1:]...)
			return &item, nil
		}
	}
	return nil, nil
}

// --- UserRepository ---

// UserRepo implements user persistence over the same in-memory database.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a user repository sharing the database.
func (db *DB) NewUserRepo() *UserRepo {
	return &UserRepo{db: db}
}

// List returns all users, newest first.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	result := make([]domain.User, len(r.db.users))
	copy(result, r.db.users)
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// GetByID returns the user with the given id, or nil if absent.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.users {
		if r.db.users[i].ID == id {
			user := r.db.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

// Create stores a new user, enforcing the unique username/email indexes.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.uniqueViolation(user.Username, user.Email, ""); err != nil {
		return err
	}
	user.ID = newID()
	r.db.users = append(r.db.users, *user)
	return nil
}

// Update applies the supplied fields and refreshes updatedAt.
func (r *UserRepo) Update(ctx context.Context, id string, patch domain.UserPatch, updatedAt time.Time) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.users {
		if r.db.users[i].ID != id {
			continue
		}
		u := &r.db.users[i]
		username, email := u.Username, u.Email
		if patch.Username != nil {
			username = *patch.Username
		}
		if patch.Email != nil {
			email = *patch.Email
		}
		if err := r.uniqueViolation(username, email, id); err != nil {
			return nil, err
		}
		u.Username = username
		u.Email = email
		if patch.Role != nil {
			u.Role = *patch.Role
		}
		u.UpdatedAt = updatedAt
		user := *u
		return &user, nil
	}
	return nil, nil
}

// Delete removes the user and returns the removed record, or nil if absent.
func (r *UserRepo) Delete(ctx context.Context, id string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.users {
		if r.db.users[i].ID == id {
			user := r.db.users[i]
			r.db.users = append(r.db.users[:i], r.db.users[i+1:]...)
			return &user, nil
		}
	}
	return nil, nil
}

// uniqueViolation mirrors the store's unique-index errors. Callers must
// hold the mutex.
func (r *UserRepo) uniqueViolation(username, email, excludeID string) error {
	var errs domain.FieldErrors
	for i := range r.db.users {
		if r.db.users[i].ID == excludeID {
			continue
		}
		if strings.EqualFold(r.db.users[i].Username, username) {
			errs = errs.Add("username", "Username already exists")
			break
		}
	}
	for i := range r.db.users {
		if r.db.users[i].ID == excludeID {
			continue
		}
		if strings.EqualFold(r.db.users[i].Email, email) {
			errs = errs.Add("email", "Email already exists")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// --- SessionStore ---

// SessionStore keeps sessions in memory; they are ephemeral by design
// and vanish with the process.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*domain.Session)}
}

// Create stores a session keyed by its token.
func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

// GetByToken returns the session for a token, or nil if absent.
func (s *SessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[token]; ok {
		return sess, nil
	}
	return nil, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// DeleteExpired removes all expired sessions.
func (s *SessionStore) DeleteExpired(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, v := range s.sessions {
		if now.After(v.ExpiresAt) {
			delete(s.sessions, k)
		}
	}
	return nil
}
