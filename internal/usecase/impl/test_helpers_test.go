package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"account/internal/domain/entity"
	"account/internal/domain/repository"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memUserRepository is an in-memory UserRepository used by the end-to-end
// style tests. It mirrors the store contract: zero-row updates return
// ErrUserNotFound and the unique email index surfaces as ErrEmailTaken.
type memUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUserRepository(users ...*entity.User) *memUserRepository {
	repo := &memUserRepository{users: make(map[uuid.UUID]*entity.User)}
	for _, user := range users {
		clone := *user
		repo.users[user.ID] = &clone
	}

	return repo
}

func (r *memUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *memUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepository) UpdateProfile(_ context.Context, id uuid.UUID, name, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for otherID, other := range r.users {
		if otherID != id && other.Email == email {
			return nil, repository.ErrEmailTaken
		}
	}

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.Name = name
	user.Email = email
	user.UpdatedAt = time.Now()
	clone := *user

	return &clone, nil
}

func (r *memUserRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	clone := *user

	return &clone, nil
}
