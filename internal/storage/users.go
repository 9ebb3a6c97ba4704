package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicate is returned when an insert violates a uniqueness rule,
// e.g. signing up an email that already has an account.
var ErrDuplicate = errors.New("record already exists")

// User is an identity record. Only the auth service reads or writes it.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    int64
}

// CreateUser inserts an identity record and returns its assigned id.
func (g *SQLiteGateway) CreateUser(ctx context.Context, email, passwordHash string) (User, error) {
	u := User{
		ID:           newID(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    nowMillis(),
	}
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`, u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return User{}, ErrDuplicate
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UserByEmail loads an identity record by email.
func (g *SQLiteGateway) UserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := g.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("user by email: %w", err)
	}
	return u, nil
}
