// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"account/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when no record matches
// the lookup key, or when an update affected zero rows.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when a write trips the store's unique index on
// the email column. The usecase layer still runs its advisory pre-check; this
// sentinel covers the race the pre-check cannot close.
var ErrEmailTaken = errors.New("email already taken")

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdateProfile writes the display name and email of the user identified
	// by id, touching updated_at, and returns the post-write record.
	// Returns ErrUserNotFound if the update affected zero rows and
	// ErrEmailTaken on a unique-constraint violation.
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*entity.User, error)

	// UpdatePassword writes a new password hash for the user identified by
	// id, touching updated_at, and returns the post-write record.
	// Returns ErrUserNotFound if the update affected zero rows.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (*entity.User, error)
}
