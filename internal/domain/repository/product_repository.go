package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pastaria/backend/internal/domain/entity"
)

// ProductRepository defines the persistence operations for catalogue
// products.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	// GetByIDs bulk-loads products; missing ids are simply absent from
	// the result.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*entity.Product, error)
	// List returns products, optionally restricted to sellable ones.
	List(ctx context.Context, sellOnly bool) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
}
