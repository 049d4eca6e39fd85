package user

import (
	"context"
)

type Repository interface {
	// Create fails with ErrDuplicate when the email is taken.
	Create(ctx context.Context, u User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdatePreferences(ctx context.Context, id string, prefs Preferences) error
	SetRole(ctx context.Context, email string, role Role) (User, error)
}
