// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"account/internal/domain/entity"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/repository"
	"account/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// emailShape is the intentionally permissive local@domain.tld check the
// product uses: some non-whitespace, an @, some non-whitespace, a dot, some
// non-whitespace. It is not an RFC validator.
var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(userRepo repository.UserRepository, logger *slog.Logger) usecase.ProfileUsecase {
	return &profileService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile retrieves the read-only projection of the caller's record.
// Reads have no side effects; calling it twice without an intervening
// mutation returns identical projections.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.ProfileView, error) {
	srv.logger.Debug("Getting profile", slog.Any("userID", userID))

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile lookup")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toProfileView(user), nil
}

// UpdateProfile validates the input, runs the advisory email-uniqueness
// check, composes the combined display name, and writes the record. The
// check-then-act on email is not atomic with the write; the store's unique
// index is the backstop and surfaces as the same conflict error.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.ProfileView, error) {
	srv.logger.Info("Updating profile", slog.Any("userID", userID))

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.TrimSpace(input.Email)

	// 1. All three fields are required after trimming.
	if firstName == "" || lastName == "" || email == "" {
		return nil, errors.Wrap(domainerrors.ErrFieldsRequired, "profile update rejected")
	}

	// 2. Basic email shape check.
	if !emailShape.MatchString(email) {
		return nil, errors.Wrap(domainerrors.ErrInvalidEmailFormat, "profile update rejected")
	}

	// 3. Advisory uniqueness pre-check. Updating to one's own current email
	// is not a conflict.
	existing, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email availability")
	}
	if existing != nil && existing.ID != userID {
		srv.logger.Warn("Email already taken", slog.Any("userID", userID))

		return nil, errors.Wrap(domainerrors.ErrEmailTaken, "profile update rejected")
	}

	// 4-5. Compose the combined display name and write.
	updated, err := srv.userRepo.UpdateProfile(ctx, userID, composeName(firstName, lastName), email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			// Lost the race the pre-check could not close.
			return nil, errors.Wrap(domainerrors.ErrEmailTaken, "profile update rejected")
		case errors.Is(err, repository.ErrUserNotFound):
			// All checks passed but the write matched no row; the record was
			// deleted concurrently. Unexpected for an authenticated caller.
			srv.logger.Error("Profile update affected no rows", slog.Any("userID", userID))

			return nil, errors.Wrap(domainerrors.ErrInternalError, "profile update affected no rows")
		default:
			return nil, errors.Wrap(err, "failed to update profile")
		}
	}
	srv.logger.Debug("Profile updated", slog.Any("userID", userID))

	return toProfileView(updated), nil
}

// toProfileView builds the outbound projection from a user record, omitting
// the password hash and deriving first/last from the combined name.
func toProfileView(user *entity.User) *usecase.ProfileView {
	first, last := splitName(user.Name)

	return &usecase.ProfileView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		FirstName: first,
		LastName:  last,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
