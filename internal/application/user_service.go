package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/pastaria/backend/internal/domain/entity"
	repo "github.com/pastaria/backend/internal/domain/repository"
	"github.com/pastaria/backend/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	// ErrTokenNotFound: the presented token left the token list between
	// the middleware check and the extend write (concurrent logout).
	ErrTokenNotFound = errors.New("token not in list")
)

// Service implements account and session operations. The session model
// is a list of currently valid tokens embedded in the user document:
// login appends, logout filters out, extend replaces in place.
type Service struct {
	Repo     repo.UserRepository
	Products repo.ProductRepository
	Tokens   *helpers.TokenIssuer
	Logger   *logrus.Logger
	locks    *KeyedMutex
}

func NewService(userRepo repo.UserRepository, productRepo repo.ProductRepository, tokens *helpers.TokenIssuer, logger *logrus.Logger, locks *KeyedMutex) *Service {
	return &Service{
		Repo:     userRepo,
		Products: productRepo,
		Tokens:   tokens,
		Logger:   logger,
		locks:    locks,
	}
}

type RegisterInput struct {
	Account  string
	Email    string
	Password string
}

// Register creates a new account. Uniqueness of account and email is
// enforced by the store's unique indexes and surfaces as
// repository.ErrDuplicate.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}
	u := &entity.User{
		Account:  in.Account,
		Email:    in.Email,
		Password: hash,
		Role:     entity.RoleUser,
	}
	if err := u.Validate(); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if !errors.Is(err, repo.ErrDuplicate) && s.Logger != nil {
			s.Logger.WithError(err).WithField("account", in.Account).Error("create user failed")
		}
		return err
	}
	return nil
}

// Authenticate validates account/password and returns the user.
func (s *Service) Authenticate(ctx context.Context, account, password string) (*entity.User, error) {
	u, err := s.Repo.GetByAccount(ctx, account)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

type LoginResult struct {
	Token   string `json:"token"`
	Account string `json:"account"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Cart    int    `json:"cart"`
}

// Login issues a short-lived token for an authenticated user, appends
// it to the token list and persists the document.
func (s *Service) Login(ctx context.Context, account, password string) (*LoginResult, error) {
	u, err := s.Authenticate(ctx, account, password)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(u.ID.Hex())
	defer unlock()

	// Re-read under the lock; Authenticate ran outside it.
	u, err = s.Repo.GetByID(ctx, u.ID.Hex())
	if err != nil {
		return nil, err
	}

	token, err := s.Tokens.SignLogin(u.ID.Hex())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("sign login token failed")
		}
		return nil, err
	}
	u.Tokens = append(u.Tokens, token)
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:   token,
		Account: u.Account,
		Email:   u.Email,
		Role:    u.Role,
		Cart:    u.CartQuantity(),
	}, nil
}

// Logout removes the presented token from the user's token list.
// Idempotent: a token that is already gone leaves the list unchanged.
func (s *Service) Logout(ctx context.Context, userID, token string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	u.RemoveToken(token)
	return s.Repo.Update(ctx, u)
}

// Extend trades the presented token for a long-lived one, overwriting
// the same slot in the token list so order and size are preserved.
func (s *Service) Extend(ctx context.Context, userID, token string) (string, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	idx := u.TokenIndex(token)
	if idx < 0 {
		return "", ErrTokenNotFound
	}
	fresh, err := s.Tokens.SignRefresh(userID)
	if err != nil {
		return "", err
	}
	u.Tokens[idx] = fresh
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	return fresh, nil
}

type Profile struct {
	Account string `json:"account"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Cart    int    `json:"cart"`
}

// GetProfile returns the public profile fields for a user.
func (s *Service) GetProfile(u *entity.User) *Profile {
	return &Profile{
		Account: u.Account,
		Email:   u.Email,
		Role:    u.Role,
		Cart:    u.CartQuantity(),
	}
}
