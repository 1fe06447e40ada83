package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/meusdesafios/auth/internal/auth/domain"
	"github.com/meusdesafios/auth/internal/auth/store"
	"github.com/meusdesafios/auth/pkg/idx"
	"github.com/meusdesafios/auth/pkg/slogx"
)

// UserService manages account records. Accounts are created lazily on first
// provider login and keyed by (provider, subject).
type UserService struct {
	Store store.Store
}

// FindOrCreateUser resolves the account for a verified provider identity,
// creating it on first login. Two first-logins racing on the same identity
// both succeed: the loser of the insert re-reads the winner's row.
func (s *UserService) FindOrCreateUser(ctx context.Context, profile domain.ProviderProfile) (domain.User, error) {
	u, err := s.Store.Users().GetUserByProvider(ctx, profile.Provider, profile.Subject)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	first, last := splitName(profile.Name)
	u = domain.User{
		ID:          idx.New().String(),
		Provider:    profile.Provider,
		ProviderID:  profile.Subject,
		Email:       profile.Email,
		Handle:      handleFromEmail(profile.Email, profile.Subject),
		FirstName:   first,
		LastName:    last,
		DisplayName: profile.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the first-login race; the row exists now.
			return s.Store.Users().GetUserByProvider(ctx, profile.Provider, profile.Subject)
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("created user",
		"user_id", u.ID,
		"provider", u.Provider,
	)
	return u, nil
}

// GetUser returns the account by id.
func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

// UpdateProfile mutates the display fields of an account.
func (s *UserService) UpdateProfile(ctx context.Context, userID, firstName, lastName, displayName string) error {
	return s.Store.Users().UpdateUserProfile(ctx, userID, firstName, lastName, displayName)
}

// splitName breaks a full name into first/last on the final word, so
// multi-word given names stay in the first slot.
func splitName(full string) (string, string) {
	words := strings.Fields(full)
	switch len(words) {
	case 0:
		return "", ""
	case 1:
		return words[0], ""
	default:
		return strings.Join(words[:len(words)-1], " "), words[len(words)-1]
	}
}

// handleFromEmail derives an initial handle from the email local part,
// falling back to the provider subject when the email is missing.
func handleFromEmail(email, subject string) string {
	at := strings.Index(email, "@")
	if at > 0 {
		return strings.ToLower(email[:at])
	}
	return strings.ToLower(subject)
}
