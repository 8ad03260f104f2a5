package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	repo "github.com/pastaria/backend/internal/domain/repository"
	ihttp "github.com/pastaria/backend/internal/interface/http"
	"github.com/pastaria/backend/internal/interface/middleware"
	"github.com/pastaria/backend/pkg/helpers"
)

type OrderModule struct {
	handler *ihttp.OrderHandler
	users   repo.UserRepository
	tokens  *helpers.TokenIssuer
	redis   *redis.Client
}

func NewOrderModule(h *ihttp.OrderHandler, users repo.UserRepository, tokens *helpers.TokenIssuer, rdb *redis.Client) *OrderModule {
	return &OrderModule{handler: h, users: users, tokens: tokens, redis: rdb}
}

func (m *OrderModule) Name() string { return "order" }

func (m *OrderModule) Register(api *gin.RouterGroup) {
	g := api.Group("/orders", middleware.Auth(m.users, m.tokens, false))
	g.GET("", m.handler.List)
	g.POST("/checkout", middleware.RateLimit(m.redis, "checkout", 10, time.Minute), m.handler.Checkout)
}
