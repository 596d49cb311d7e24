package usecase

import (
	"context"

	"github.com/google/uuid"
)

// ChangePasswordInput defines the data required to rotate a password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CredentialUsecase defines the interface for credential-related business
// operations. ChangePassword returns no payload on success; in particular it
// never returns the stored or newly computed hash.
type CredentialUsecase interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error
}
