package postgres

import (
	"context"
	"time"

	"account/internal/domain/entity"
	"account/internal/domain/repository"
	"account/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address. The lookup is
// exact; email case is preserved as stored.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// UpdateProfile writes name, email and updated_at for the given user and
// returns the post-write record. Zero affected rows surfaces as
// ErrUserNotFound; a duplicate email tripping the unique index surfaces as
// ErrEmailTaken.
func (repo *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*entity.User, error) {
	return repo.updateFields(ctx, id, map[string]any{
		"name":  name,
		"email": email,
	})
}

// UpdatePassword writes the password hash and updated_at for the given user
// and returns the post-write record.
func (repo *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (*entity.User, error) {
	return repo.updateFields(ctx, id, map[string]any{
		"password_hash": passwordHash,
	})
}

func (repo *userRepository) updateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.User, error) {
	fields["updated_at"] = time.Now()

	res := repo.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if isUniqueConstraintViolation(res.Error) {
			return nil, repository.ErrEmailTaken
		}

		return nil, errors.Wrap(res.Error, "failed to update user")
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	// Re-read so the caller gets the post-write record with the timestamps
	// the database actually stored.
	return repo.FindByID(ctx, id)
}

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
