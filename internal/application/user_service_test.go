package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastaria/backend/internal/domain/entity"
	repo "github.com/pastaria/backend/internal/domain/repository"
	"github.com/pastaria/backend/pkg/helpers"
)

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakeProductRepo) {
	t.Helper()
	users := newFakeUserRepo()
	products := newFakeProductRepo()
	tokens := helpers.NewTokenIssuer("test-secret", time.Second, 168*time.Hour)
	return NewService(users, products, tokens, nil, NewKeyedMutex()), users, products
}

func register(t *testing.T, s *Service) *entity.User {
	t.Helper()
	err := s.Register(context.Background(), RegisterInput{
		Account:  "mario",
		Email:    "mario@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)
	u, err := s.Repo.GetByAccount(context.Background(), "mario")
	require.NoError(t, err)
	return u
}

func TestRegisterDuplicateAccount(t *testing.T) {
	s, _, _ := newTestService(t)
	register(t, s)

	err := s.Register(context.Background(), RegisterInput{
		Account:  "mario",
		Email:    "other@example.com",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, repo.ErrDuplicate)
}

func TestRegisterRejectsBadAccount(t *testing.T) {
	s, _, _ := newTestService(t)
	err := s.Register(context.Background(), RegisterInput{
		Account:  "no", // too short
		Email:    "a@example.com",
		Password: "longenough",
	})

	var fe *entity.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "account", fe.Field)
}

func TestLoginAppendsToken(t *testing.T) {
	s, users, _ := newTestService(t)
	u := register(t, s)

	res, err := s.Login(context.Background(), "mario", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "mario", res.Account)
	assert.Equal(t, entity.RoleUser, res.Role)
	assert.NotEmpty(t, res.Token)

	stored, err := users.GetByID(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{res.Token}, stored.Tokens)

	// A second login appends, it never replaces.
	res2, err := s.Login(context.Background(), "mario", "longenough")
	require.NoError(t, err)
	stored, _ = users.GetByID(context.Background(), u.ID.Hex())
	assert.Equal(t, []string{res.Token, res2.Token}, stored.Tokens)
}

func TestLoginWrongPassword(t *testing.T) {
	s, _, _ := newTestService(t)
	register(t, s)

	_, err := s.Login(context.Background(), "mario", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(context.Background(), "nobody", "longenough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRemovesOnlyPresentedToken(t *testing.T) {
	s, users, _ := newTestService(t)
	u := register(t, s)

	first, err := s.Login(context.Background(), "mario", "longenough")
	require.NoError(t, err)
	second, err := s.Login(context.Background(), "mario", "longenough")
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background(), u.ID.Hex(), first.Token))

	stored, _ := users.GetByID(context.Background(), u.ID.Hex())
	assert.Equal(t, []string{second.Token}, stored.Tokens)
}

func TestLogoutIsIdempotent(t *testing.T) {
	s, users, _ := newTestService(t)
	u := register(t, s)

	res, err := s.Login(context.Background(), "mario", "longenough")
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background(), u.ID.Hex(), res.Token))
	require.NoError(t, s.Logout(context.Background(), u.ID.Hex(), res.Token))

	stored, _ := users.GetByID(context.Background(), u.ID.Hex())
	assert.Empty(t, stored.Tokens)
}

func TestExtendReplacesTokenInPlace(t *testing.T) {
	s, users, _ := newTestService(t)
	u := register(t, s)

	first, err := s.Login(context.Background(), "mario", "longenough")
	require.NoError(t, err)
	second, err := s.Login(context.Background(), "mario", "longenough")
	require.NoError(t, err)

	fresh, err := s.Extend(context.Background(), u.ID.Hex(), first.Token)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, fresh)

	// The slot is overwritten: same length, same order, other
	// sessions untouched.
	stored, _ := users.GetByID(context.Background(), u.ID.Hex())
	assert.Equal(t, []string{fresh, second.Token}, stored.Tokens)

	claims, err := s.Tokens.Parse(fresh)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.UserID)
	assert.Greater(t, time.Until(claims.ExpiresAt.Time), 24*time.Hour)
}

func TestExtendUnknownToken(t *testing.T) {
	s, _, _ := newTestService(t)
	u := register(t, s)

	_, err := s.Extend(context.Background(), u.ID.Hex(), "never-issued")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestGetProfile(t *testing.T) {
	s, _, products := newTestService(t)
	u := register(t, s)

	id := products.add(entity.Product{Name: "肉醬麵", Price: 180, Category: entity.CategoryNoodle, Sell: true})
	_, err := s.EditCart(context.Background(), u.ID.Hex(), id.Hex(), 3, entity.NoodleSpaghetti)
	require.NoError(t, err)

	fresh, err := s.Repo.GetByID(context.Background(), u.ID.Hex())
	require.NoError(t, err)
	p := s.GetProfile(fresh)
	assert.Equal(t, "mario", p.Account)
	assert.Equal(t, 3, p.Cart)
}
