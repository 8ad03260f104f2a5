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

type ProductModule struct {
	handler *ihttp.ProductHandler
	users   repo.UserRepository
	tokens  *helpers.TokenIssuer
	redis   *redis.Client
}

func NewProductModule(h *ihttp.ProductHandler, users repo.UserRepository, tokens *helpers.TokenIssuer, rdb *redis.Client) *ProductModule {
	return &ProductModule{handler: h, users: users, tokens: tokens, redis: rdb}
}

func (m *ProductModule) Name() string { return "product" }

func (m *ProductModule) Register(api *gin.RouterGroup) {
	g := api.Group("/products")
	g.GET("", m.handler.List)
	g.GET("/search", middleware.RateLimit(m.redis, "search", 30, time.Minute), m.handler.Search)
	g.GET("/:id", m.handler.Get)

	admin := api.Group("/admin/products",
		middleware.Auth(m.users, m.tokens, false),
		middleware.RequireAdmin(),
	)
	admin.GET("", m.handler.List)
	admin.POST("", m.handler.Create)
	admin.PUT("/:id", m.handler.Update)
}
