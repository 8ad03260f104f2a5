package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pastaria/backend/internal/domain/entity"
)

// OrderRepository defines the persistence operations for orders.
// Orders are immutable once created, so there is no update.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	ListByUser(ctx context.Context, user primitive.ObjectID) ([]entity.Order, error)
}
