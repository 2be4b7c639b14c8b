package user

import "context"

// UserRepository provides access to the users collection.
type UserRepository interface {
	// GetByEmail returns the user with the given email, or ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (User, error)

	// Create appends a new user. Fails with ErrEmailExists when the email is
	// already taken.
	Create(ctx context.Context, u User) (User, error)
}
