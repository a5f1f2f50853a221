package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pmboard/internal/models"
)

const userColumns = `id, email, password_hash, name, created_at`

// CreateUser persists a new account. The password must already be hashed.
func (s *Store) CreateUser(ctx context.Context, email, name, passwordHash string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if name == "" {
		name = email
	}
	id, err := s.insert(ctx, s.db, `INSERT INTO users(email, password_hash, name, created_at) VALUES(?, ?, ?, ?)`,
		email, passwordHash, name, s.timestamp())
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return s.GetUser(ctx, id)
}

// GetUser fetches a single user by id.
func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks an account up by its login address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE email = ?`),
		strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// ListUsers returns every account ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser changes the provided fields of an account.
func (s *Store) UpdateUser(ctx context.Context, id int64, name, email, passwordHash *string) (models.User, error) {
	if email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*email))
		email = &normalized
	}
	err := s.exec(ctx, "update user",
		`UPDATE users SET name = COALESCE(?, name), email = COALESCE(?, email), password_hash = COALESCE(?, password_hash) WHERE id = ?`,
		name, email, passwordHash, id)
	if err != nil {
		return models.User{}, err
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes an account. Assigned tasks become unassigned.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return s.exec(ctx, "delete user", `DELETE FROM users WHERE id = ?`, id)
}

// CountUsers reports how many accounts exist.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
