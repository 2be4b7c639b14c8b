package auth

import "context"

// AuthService authenticates portal accounts against the users collection.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
