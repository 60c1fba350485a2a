package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)

	// ListNonAdmin returns every user that takes part in attendance, ordered by full name.
	ListNonAdmin(ctx context.Context) ([]User, error)
}
