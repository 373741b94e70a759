package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"taskboard-api/domain"
)

// CreateUser inserts a new account. The password must already be hashed by
// the caller; this layer never sees plaintext credentials.
func (s *Storage) CreateUser(ctx context.Context, username, email, passwordHash string) (domain.User, error) {
	if err := requireText("username", username); err != nil {
		return domain.User{}, err
	}
	if err := requireText("password", passwordHash); err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, nowUTC(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.User{}, ValidationError{Field: "username", Message: "a user with that username already exists"}
		}
		return domain.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

// UserByUsername looks up an account for login.
func (s *Storage) UserByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("querying user: %w", err)
	}
	return u, nil
}
