package application

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pastaria/backend/internal/domain/entity"
	repo "github.com/pastaria/backend/internal/domain/repository"
)

// ErrInvalidProductID: the product identifier is not a valid ObjectID
// hex string.
var ErrInvalidProductID = errors.New("invalid product id")

// EditCart merges a quantity delta into the user's cart.
//
// A line is keyed by (product, noodle). If a matching line exists, the
// delta is added to it: a non-positive result removes the line, a
// positive one updates it in place. These two branches partition all
// integer deltas. If no line matches, the product must exist and be
// sellable, and the initial quantity must be positive, the same rule
// the merge branch enforces.
//
// Returns the updated total cart quantity.
func (s *Service) EditCart(ctx context.Context, userID, productID string, delta int, noodle entity.Noodle) (int, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return 0, ErrInvalidProductID
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	idx := u.FindCartLine(pid, noodle)
	if idx >= 0 {
		quantity := u.Cart[idx].Quantity + delta
		if quantity <= 0 {
			u.RemoveCartLine(pid, noodle)
		} else {
			u.Cart[idx].Quantity = quantity
		}
	} else {
		p, err := s.Products.GetByID(ctx, pid)
		if err != nil {
			return 0, err
		}
		if !p.Sell {
			return 0, repo.ErrNotFound
		}
		if delta <= 0 {
			return 0, &entity.FieldError{Field: "quantity", Message: "商品數量錯誤"}
		}
		u.Cart = append(u.Cart, entity.CartLine{Product: pid, Quantity: delta, Noodle: noodle})
	}

	if err := u.Validate(); err != nil {
		return 0, err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return 0, err
	}
	return u.CartQuantity(), nil
}

// CartDetail is a cart line with the referenced product populated.
type CartDetail struct {
	Product  *entity.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Noodle   entity.Noodle   `json:"noodle"`
}

// GetCart returns the user's cart lines with product details filled in.
func (s *Service) GetCart(ctx context.Context, userID string) ([]CartDetail, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(u.Cart))
	for _, l := range u.Cart {
		ids = append(ids, l.Product)
	}
	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]CartDetail, 0, len(u.Cart))
	for _, l := range u.Cart {
		out = append(out, CartDetail{
			Product:  products[l.Product],
			Quantity: l.Quantity,
			Noodle:   l.Noodle,
		})
	}
	return out, nil
}
