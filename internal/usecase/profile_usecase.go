// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpdateProfileInput defines the data required to update a profile.
// The UI models the name as first/last; the store keeps a single combined
// display name, so the service joins the two on write.
type UpdateProfileInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// --- Output DTOs ---

// ProfileView is the read-only projection of a user record returned to the
// delivery layer. It never carries the password hash. FirstName/LastName are
// derived by splitting the combined name on its first space so the UI form
// can prefill; the split silently drops tokens beyond the first space.
type ProfileView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileUsecase defines the interface for profile-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
// The caller's identity is always an explicit parameter; there is no ambient
// session lookup inside the core.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*ProfileView, error)
}
