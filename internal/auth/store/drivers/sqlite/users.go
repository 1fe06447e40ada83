package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/meusdesafios/auth/internal/auth/domain"
	"github.com/meusdesafios/auth/internal/auth/store"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, provider, provider_id, email, handle, first_name, last_name, display_name, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *usersRepo) GetUserByProvider(
	ctx context.Context,
	provider domain.Provider,
	providerID string,
) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE provider = ? AND provider_id = ?`,
		string(provider), providerID,
	)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, provider, provider_id, email, handle, first_name, last_name, display_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		string(u.Provider),
		u.ProviderID,
		u.Email,
		u.Handle,
		u.FirstName,
		u.LastName,
		u.DisplayName,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) UpdateUserProfile(
	ctx context.Context,
	userID, firstName, lastName, displayName string,
) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users
		SET first_name = ?, last_name = ?, display_name = ?, updated_at = ?
		WHERE id = ?`,
		firstName, lastName, displayName, time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	var provider string
	err := row.Scan(
		&u.ID,
		&provider,
		&u.ProviderID,
		&u.Email,
		&u.Handle,
		&u.FirstName,
		&u.LastName,
		&u.DisplayName,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Provider = domain.Provider(provider)
	return u, nil
}
