package user

import "context"

// Service defines staff account business logic.
type Service interface {
	RegisterUser(ctx context.Context, email, password, name, role string) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
}
