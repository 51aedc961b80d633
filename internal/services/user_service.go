// Package services implements the domain operations over fresh row-store
// snapshots. Services are constructed explicitly and injected into the HTTP
// layer; nothing here is a process-wide singleton.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Trantoan12022004/chome2/internal/core"
	"github.com/Trantoan12022004/chome2/internal/tables"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users *tables.Users
	now   func() time.Time
}

func NewUserService(users *tables.Users) *UserService {
	return &UserService{users: users, now: time.Now}
}

// List returns every user in append order. PasswordHash is populated;
// callers must not re-expose it.
func (s *UserService) List(ctx context.Context) ([]core.User, error) {
	return s.users.All(ctx)
}

// FindByEmail scans all user rows for an exact match. Absence is (nil, nil),
// not an error. The result carries the password hash.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*core.User, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Email == email {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Create validates, rejects duplicate emails, hashes the password, stamps
// created_at and appends the row. The returned record has no password hash.
func (s *UserService) Create(ctx context.Context, name, email, password string) (core.User, error) {
	u := core.User{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}
	if len(password) < 8 {
		return core.User{}, core.ErrWeakPassword
	}

	existing, err := s.FindByEmail(ctx, u.Email)
	if err != nil {
		return core.User{}, err
	}
	if existing != nil {
		return core.User{}, fmt.Errorf("%w: %s", core.ErrDuplicateEmail, u.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.CreatedAt = core.Stamp(s.now())

	created, err := s.users.Append(ctx, u)
	if err != nil {
		return core.User{}, err
	}

	slog.InfoContext(ctx, "User created", "id", created.ID, "email", created.Email)

	created.PasswordHash = ""
	return created, nil
}
