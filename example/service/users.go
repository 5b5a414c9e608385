package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/conduit"
	"github.com/dmitrymomot/conduit/pkg/store"
)

// User is a registered account. Usernames are unique, case-insensitively.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Users manages accounts. Records live in byID; byName maps lowercased
// usernames to user IDs and guarantees uniqueness.
type Users struct {
	byID   store.Store[User]
	byName store.Store[string]
}

// NewUsers creates the user service over the given stores.
func NewUsers(byID store.Store[User], byName store.Store[string]) *Users {
	return &Users{byID: byID, byName: byName}
}

// Create registers username and returns the new user.
// Returns an ErrInvalidArgument error for an empty username and an
// ErrAlreadyExists error when it is taken.
func (s *Users) Create(ctx context.Context, username string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, conduit.InvalidArgument("username is required")
	}

	u := User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.byName.Insert(ctx, nameKey(username), u.ID); err != nil {
		if errors.Is(err, store.ErrExists) {
			return User{}, conduit.AlreadyExists("username is already in use", conduit.WithError(err))
		}
		return User{}, err
	}
	if err := s.byID.Put(ctx, u.ID, u); err != nil {
		// Release the name so the user can retry.
		_ = s.byName.Delete(ctx, nameKey(username))
		return User{}, err
	}
	return u, nil
}

// Get returns the user with the given ID.
func (s *Users) Get(ctx context.Context, id string) (User, error) {
	u, err := s.byID.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return User{}, conduit.NotFound("user not found", conduit.WithError(err))
	}
	return u, err
}

// Authenticate looks a user up by username.
//
// There is no password: knowing a username is enough to sign in.
func (s *Users) Authenticate(ctx context.Context, username string) (User, error) {
	id, err := s.byName.Get(ctx, nameKey(strings.TrimSpace(username)))
	if errors.Is(err, store.ErrNotFound) {
		return User{}, conduit.NotFound("user not found", conduit.WithError(err))
	}
	if err != nil {
		return User{}, err
	}
	return s.Get(ctx, id)
}

func nameKey(username string) string {
	return strings.ToLower(username)
}
