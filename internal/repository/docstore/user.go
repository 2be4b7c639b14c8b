package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fspro/attendance-backend-go/internal/domain/user"
	"github.com/fspro/attendance-backend-go/internal/pkg/docstore"
)

const userCollection = "users"

type UserRepository struct {
	store docstore.Store
}

func NewUserRepository(store docstore.Store) user.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) readAll(ctx context.Context) ([]user.User, error) {
	raw, err := r.store.Get(ctx, userCollection)
	if err != nil {
		if errors.Is(err, docstore.ErrKeyNotFound) {
			return []user.User{}, nil
		}
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	var users []user.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// GetByEmail implements user.UserRepository.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	users, err := r.readAll(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// Create implements user.UserRepository.
func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	users, err := r.readAll(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.User{}, user.ErrEmailExists
		}
	}

	users = append(users, u)
	raw, err := json.Marshal(users)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to encode users: %w", err)
	}
	if err := r.store.Set(ctx, userCollection, raw); err != nil {
		return user.User{}, fmt.Errorf("failed to save users: %w", err)
	}
	return u, nil
}
