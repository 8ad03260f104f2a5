package application

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pastaria/backend/internal/domain/entity"
	repo "github.com/pastaria/backend/internal/domain/repository"
	"github.com/pastaria/backend/pkg/helpers"
	"github.com/pastaria/backend/pkg/mailer"
)

// OrderService snapshots carts into immutable orders at checkout and
// enqueues the confirmation mail.
type OrderService struct {
	Repo     repo.OrderRepository
	Users    repo.UserRepository
	Products repo.ProductRepository
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
	locks    *KeyedMutex
}

func NewOrderService(orderRepo repo.OrderRepository, userRepo repo.UserRepository, productRepo repo.ProductRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger, locks *KeyedMutex) *OrderService {
	return &OrderService{
		Repo:     orderRepo,
		Users:    userRepo,
		Products: productRepo,
		Pub:      pub,
		Logger:   logger,
		locks:    locks,
	}
}

type CheckoutInput struct {
	Name    string
	Phone   string
	Address string
}

// Checkout creates an order from the user's current cart and clears
// the cart. The cart snapshot must be non-empty; the order is
// immutable afterwards.
func (s *OrderService) Checkout(ctx context.Context, userID string, in CheckoutInput) (*entity.Order, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := make([]entity.CartLine, len(u.Cart))
	copy(cart, u.Cart)

	o := &entity.Order{
		User:    u.ID,
		Cart:    cart,
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, err
	}

	u.Cart = []entity.CartLine{}
	if err := s.Users.Update(ctx, u); err != nil {
		// The order exists; an unclearable cart is logged, not fatal.
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("order_id", o.ID.Hex()).Warn("clear cart after checkout failed")
		}
	}

	s.enqueueConfirmation(ctx, u, o)
	return o, nil
}

func (s *OrderService) enqueueConfirmation(ctx context.Context, u *entity.User, o *entity.Order) {
	if s.Pub == nil {
		return
	}
	products, err := s.Products.GetByIDs(ctx, productIDs(o.Cart))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("order_id", o.ID.Hex()).Warn("load products for confirmation failed")
		}
		return
	}

	items := make([]mailer.OrderItem, 0, len(o.Cart))
	total := 0
	for _, l := range o.Cart {
		item := mailer.OrderItem{Quantity: l.Quantity, Noodle: string(l.Noodle)}
		if p := products[l.Product]; p != nil {
			item.Name = p.Name
			item.Price = p.Price
			total += p.Price * l.Quantity
		}
		items = append(items, item)
	}

	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateOrderConfirmation,
		Data: mailer.OrderConfirmationData{
			Account: u.Account,
			OrderID: o.ID.Hex(),
			Name:    o.Name,
			Phone:   o.Phone,
			Address: o.Address,
			Items:   items,
			Total:   total,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID.Hex()).Warn("publish confirmation mail failed")
	}
}

// OrderDetail is an order with its cart lines populated.
type OrderDetail struct {
	ID        primitive.ObjectID `json:"id"`
	Cart      []CartDetail       `json:"cart"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Address   string             `json:"address"`
	CreatedAt string             `json:"created_at"`
}

// ListByUser returns the user's orders, newest first, with product
// details populated.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]OrderDetail, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repo.ErrNotFound
	}
	orders, err := s.Repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	var ids []primitive.ObjectID
	for _, o := range orders {
		ids = append(ids, productIDs(o.Cart)...)
	}
	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]OrderDetail, 0, len(orders))
	for _, o := range orders {
		detail := OrderDetail{
			ID:        o.ID,
			Name:      o.Name,
			Phone:     o.Phone,
			Address:   o.Address,
			CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for _, l := range o.Cart {
			detail.Cart = append(detail.Cart, CartDetail{
				Product:  products[l.Product],
				Quantity: l.Quantity,
				Noodle:   l.Noodle,
			})
		}
		out = append(out, detail)
	}
	return out, nil
}

func productIDs(cart []entity.CartLine) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(cart))
	for _, l := range cart {
		ids = append(ids, l.Product)
	}
	return ids
}
