package sqlite

import (
	"context"
	"database/sql"

	"github.com/AkshatMishra0/Derivity-ai/internal/site/domain"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, handle, email, password_hash, first_name, last_name, is_active, created_at, updated_at, last_login_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u         domain.User
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Handle, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt, &lastLogin,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = utc(u.CreatedAt)
	u.UpdatedAt = utc(u.UpdatedAt)
	u.LastLoginAt = mapNullTimePtr(lastLogin)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) HandleExists(ctx context.Context, handle string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE handle = ?)`, handle).Scan(&exists)
	return exists, err
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Handle, u.Email, u.PasswordHash,
		u.FirstName, u.LastName, u.IsActive,
		utc(u.CreatedAt), utc(u.UpdatedAt), mapOptionalTime(u.LastLoginAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users
		SET email = ?, first_name = ?, last_name = ?, is_active = ?,
		    last_login_at = ?, updated_at = ?
		WHERE id = ?`,
		u.Email, u.FirstName, u.LastName, u.IsActive,
		mapOptionalTime(u.LastLoginAt), utc(u.UpdatedAt),
		u.ID,
	)
	return requireAffected(res, mapConstraint(err))
}
