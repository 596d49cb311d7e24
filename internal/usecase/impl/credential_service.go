package impl

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "account/internal/domain/errors"
	"account/internal/domain/repository"
	"account/internal/domain/service"
	"account/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// minNewPasswordLength is the only strength rule: at least 8 characters as
// provided. There is no uppercase/digit/symbol requirement.
const minNewPasswordLength = 8

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// NewCredentialService is the constructor for credentialService.
func NewCredentialService(userRepo repository.UserRepository, hasher service.PasswordHasher, logger *slog.Logger) usecase.CredentialUsecase {
	return &credentialService{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

// ChangePassword verifies the caller's current password and rotates the
// stored hash. A single linear pass: either every check passes and exactly
// one write occurs, or no write occurs. Cheap validations short-circuit
// before any hash computation, so a rejected candidate is never hashed.
func (srv *credentialService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.logger.Info("Changing password", slog.Any("userID", userID))

	// 1. Both fields are required.
	if strings.TrimSpace(input.CurrentPassword) == "" || strings.TrimSpace(input.NewPassword) == "" {
		return errors.Wrap(domainerrors.ErrPasswordsRequired, "password change rejected")
	}

	// 2. Minimum length, counted on the password as provided.
	if len(input.NewPassword) < minNewPasswordLength {
		return errors.Wrap(domainerrors.ErrPasswordTooShort, "password change rejected")
	}

	// 3. Load the caller's record.
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "password change")
		}

		return errors.Wrap(err, "failed to find user")
	}

	// 4. Verify the current password. bcrypt's comparison is constant-time;
	// never fall back to string equality here.
	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		srv.logger.Warn("Current password incorrect", slog.Any("userID", userID))

		return errors.Wrap(domainerrors.ErrCurrentPasswordIncorrect, "password change rejected")
	}

	// 5. Reject a no-op rotation that would only reset updated_at.
	if srv.hasher.Check(input.NewPassword, user.PasswordHash) {
		return errors.Wrap(domainerrors.ErrPasswordUnchanged, "password change rejected")
	}

	// 6. Compute the new hash.
	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.logger.Error("Failed to hash new password", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "password change failed")
	}

	// 7. Write the new hash. Zero rows here means the record vanished
	// between steps 3 and 7.
	if _, err := srv.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Error("Password update affected no rows", slog.Any("userID", userID))

			return errors.Wrap(domainerrors.ErrInternalError, "password update affected no rows")
		}

		return errors.Wrap(err, "failed to update password")
	}
	srv.logger.Debug("Password changed", slog.Any("userID", userID))

	return nil
}
