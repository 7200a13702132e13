// Package users maps provider profiles to local accounts.
package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fanburst"
)

var (
	ErrMissingProfile   = errors.New("users: profile is nil")
	ErrMissingProfileID = errors.New("users: profile has no id")
	ErrStoreFailed      = errors.New("users: store operation failed")
)

// User is a local account linked to one provider identity.
type User struct {
	CreatedAt      time.Time `json:"created_at"`
	LastLoginAt    time.Time `json:"last_login_at"`
	Provider       string    `json:"provider"`
	ProviderUserID string    `json:"provider_user_id"`
	Username       string    `json:"username"`
	Avatar         string    `json:"avatar"`
	ID             uuid.UUID `json:"id"`
}

// Store finds the account linked to a profile, creating it on first login.
// Username and avatar are refreshed from the profile on every call.
type Store interface {
	FindOrCreate(ctx context.Context, profile *fanburst.Profile) (*User, error)
}

func validateProfile(p *fanburst.Profile) error {
	if p == nil {
		return ErrMissingProfile
	}
	if p.ID == "" {
		return ErrMissingProfileID
	}
	return nil
}

func newUser(p *fanburst.Profile, now time.Time) *User {
	return &User{
		ID:             uuid.New(),
		Provider:       p.Provider,
		ProviderUserID: p.ID,
		Username:       p.Username,
		Avatar:         p.Avatar,
		CreatedAt:      now,
		LastLoginAt:    now,
	}
}

func (u *User) refresh(p *fanburst.Profile, now time.Time) {
	u.Username = p.Username
	u.Avatar = p.Avatar
	u.LastLoginAt = now
}

func identityKey(provider, id string) string {
	return provider + ":" + id
}
