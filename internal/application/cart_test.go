package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pastaria/backend/internal/domain/entity"
	repo "github.com/pastaria/backend/internal/domain/repository"
)

func TestEditCartAddsNewLine(t *testing.T) {
	s, users, products := newTestService(t)
	u := register(t, s)
	id := products.add(entity.Product{Name: "肉醬麵", Price: 180, Category: entity.CategoryNoodle, Sell: true})

	total, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 2, entity.NoodleSpaghetti)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	stored, _ := users.GetByID(context.Background(), u.ID.Hex())
	require.Len(t, stored.Cart, 1)
	assert.Equal(t, id, stored.Cart[0].Product)
	assert.Equal(t, entity.NoodleSpaghetti, stored.Cart[0].Noodle)
}

func TestEditCartMergesByCompoundKey(t *testing.T) {
	s, users, products := newTestService(t)
	u := register(t, s)
	id := products.add(entity.Product{Name: "肉醬麵", Price: 180, Category: entity.CategoryNoodle, Sell: true})

	_, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 2, entity.NoodleSpaghetti)
	require.NoError(t, err)

	// Same product, same noodle: the existing line absorbs the delta.
	total, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 3, entity.NoodleSpaghetti)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	// Same product, different noodle: a separate line.
	total, err = s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 1, entity.NoodlePenne)
	require.NoError(t, err)
	assert.Equal(t, 6, total)

	stored, _ := users.GetByID(context.Background(), u.ID.Hex())
	assert.Len(t, stored.Cart, 2)
}

func TestEditCartNegativeDeltaRemovesLine(t *testing.T) {
	s, users, products := newTestService(t)
	u := register(t, s)
	id := products.add(entity.Product{Name: "肉醬麵", Price: 180, Category: entity.CategoryNoodle, Sell: true})

	_, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 2, entity.NoodleSpaghetti)
	require.NoError(t, err)

	// -1 keeps the line at 1.
	total, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), -1, entity.NoodleSpaghetti)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// Driving it to zero removes the line entirely.
	total, err = s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), -1, entity.NoodleSpaghetti)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	stored, _ := users.GetByID(context.Background(), u.ID.Hex())
	assert.Empty(t, stored.Cart)
}

func TestEditCartZeroDeltaIsNoOp(t *testing.T) {
	s, users, products := newTestService(t)
	u := register(t, s)
	id := products.add(entity.Product{Name: "肉醬麵", Price: 180, Category: entity.CategoryNoodle, Sell: true})

	_, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 2, entity.NoodleSpaghetti)
	require.NoError(t, err)

	// 2 + 0 is still positive, so the line is updated in place.
	total, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 0, entity.NoodleSpaghetti)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	stored, _ := users.GetByID(context.Background(), u.ID.Hex())
	require.Len(t, stored.Cart, 1)
	assert.Equal(t, 2, stored.Cart[0].Quantity)
}

func TestEditCartOvershootRemoves(t *testing.T) {
	s, users, products := newTestService(t)
	u := register(t, s)
	id := products.add(entity.Product{Name: "肉醬麵", Price: 180, Category: entity.CategoryNoodle, Sell: true})

	_, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 2, entity.NoodleSpaghetti)
	require.NoError(t, err)

	// A result below zero behaves exactly like a result of zero.
	total, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), -10, entity.NoodleSpaghetti)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	stored, _ := users.GetByID(context.Background(), u.ID.Hex())
	assert.Empty(t, stored.Cart)
}

func TestEditCartNewLineRequiresPositiveDelta(t *testing.T) {
	s, _, products := newTestService(t)
	u := register(t, s)
	id := products.add(entity.Product{Name: "肉醬麵", Price: 180, Category: entity.CategoryNoodle, Sell: true})

	_, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), -1, entity.NoodleSpaghetti)

	var fe *entity.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "quantity", fe.Field)
}

func TestEditCartBadProductID(t *testing.T) {
	s, _, _ := newTestService(t)
	u := register(t, s)

	_, err := s.EditCart(context.Background(), u.ID.Hex(), "not-hex", 1, entity.NoodleSpaghetti)
	assert.ErrorIs(t, err, ErrInvalidProductID)
}

func TestEditCartUnknownProduct(t *testing.T) {
	s, _, _ := newTestService(t)
	u := register(t, s)

	_, err := s.EditCart(context.Background(), u.ID.Hex(), primitive.NewObjectID().Hex(), 1, entity.NoodleSpaghetti)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestEditCartDelistedProduct(t *testing.T) {
	s, _, products := newTestService(t)
	u := register(t, s)
	id := products.add(entity.Product{Name: "下架麵", Price: 100, Category: entity.CategoryNoodle, Sell: false})

	_, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 1, entity.NoodleSpaghetti)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestEditCartKeepsDelistedLineMergeable(t *testing.T) {
	s, users, products := newTestService(t)
	u := register(t, s)
	id := products.add(entity.Product{Name: "肉醬麵", Price: 180, Category: entity.CategoryNoodle, Sell: true})

	_, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 2, entity.NoodleSpaghetti)
	require.NoError(t, err)

	// Delist after the line exists: the merge branch still works, so
	// the user can always empty the line.
	p, err := products.GetByID(context.Background(), id)
	require.NoError(t, err)
	p.Sell = false
	require.NoError(t, products.Update(context.Background(), p))

	total, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), -2, entity.NoodleSpaghetti)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	stored, _ := users.GetByID(context.Background(), u.ID.Hex())
	assert.Empty(t, stored.Cart)
}

func TestGetCartPopulatesProducts(t *testing.T) {
	s, _, products := newTestService(t)
	u := register(t, s)
	id := products.add(entity.Product{Name: "肉醬麵", Price: 180, Category: entity.CategoryNoodle, Sell: true})

	_, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 2, entity.NoodlePenne)
	require.NoError(t, err)

	cart, err := s.GetCart(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	require.Len(t, cart, 1)
	require.NotNil(t, cart[0].Product)
	assert.Equal(t, "肉醬麵", cart[0].Product.Name)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, entity.NoodlePenne, cart[0].Noodle)
}

func TestGetCartEmpty(t *testing.T) {
	s, _, _ := newTestService(t)
	u := register(t, s)

	cart, err := s.GetCart(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, cart)
}
