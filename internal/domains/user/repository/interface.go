package repository

import (
	"context"

	"github.com/google/uuid"

	"souvenir-shop-backend/internal/domains/user/model"
)

// UserRepository defines user data access.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}
