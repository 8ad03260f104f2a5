package application

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pastaria/backend/internal/domain/entity"
	repo "github.com/pastaria/backend/internal/domain/repository"
)

// In-memory repositories backing the service tests. They copy on
// read and write so tests observe persisted state, not shared
// pointers.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // by hex id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Tokens = append([]string(nil), u.Tokens...)
	c.Cart = append([]entity.CartLine(nil), u.Cart...)
	return &c
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Account == u.Account || e.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Tokens == nil {
		u.Tokens = []string{}
	}
	if u.Cart == nil {
		u.Cart = []entity.CartLine{}
	}
	r.users[u.ID.Hex()] = cloneUser(u)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *fakeUserRepo) GetByAccount(ctx context.Context, account string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Account == account {
			return cloneUser(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID.Hex()]; !ok {
		return repo.ErrNotFound
	}
	r.users[u.ID.Hex()] = cloneUser(u)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[primitive.ObjectID]*entity.Product{}}
}

func (r *fakeProductRepo) add(p entity.Product) primitive.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID] = &p
	return p.ID
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	p.ID = r.add(*p)
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[primitive.ObjectID]*entity.Product{}
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			c := *p
			out[id] = &c
		}
	}
	return out, nil
}

func (r *fakeProductRepo) List(ctx context.Context, sellOnly bool) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, p := range r.products {
		if sellOnly && !p.Sell {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	c := *p
	r.products[p.ID] = &c
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo { return &fakeOrderRepo{} }

func (r *fakeOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	r.orders = append(r.orders, *o)
	return nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, user primitive.ObjectID) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].User == user {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}
