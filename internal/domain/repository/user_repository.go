package repository

import (
	"context"

	"github.com/pastaria/backend/internal/domain/entity"
)

// UserRepository defines the persistence operations for user documents.
// Update replaces the whole document; concurrent writers for the same
// user are serialized above this interface.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByAccount(ctx context.Context, account string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
