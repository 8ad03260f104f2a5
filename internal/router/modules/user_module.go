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

type UserModule struct {
	handler *ihttp.UserHandler
	users   repo.UserRepository
	tokens  *helpers.TokenIssuer
	redis   *redis.Client
}

func NewUserModule(h *ihttp.UserHandler, users repo.UserRepository, tokens *helpers.TokenIssuer, rdb *redis.Client) *UserModule {
	return &UserModule{handler: h, users: users, tokens: tokens, redis: rdb}
}

func (m *UserModule) Name() string { return "user" }

func (m *UserModule) Register(api *gin.RouterGroup) {
	g := api.Group("/user")

	// Credential endpoints take the tightest limit: they are the brute
	// force surface.
	g.POST("/signup", middleware.RateLimit(m.redis, "signup", 10, time.Minute), m.handler.Register)
	g.POST("/login", middleware.RateLimit(m.redis, "login", 20, time.Minute), m.handler.Login)

	auth := g.Group("", middleware.Auth(m.users, m.tokens, false))
	auth.GET("/profile", m.handler.Profile)
	auth.GET("/cart", m.handler.Cart)
	auth.PATCH("/cart", m.handler.EditCart)

	// Logout and extend accept expired tokens: a login token lives
	// about a second and both routes must still honour it.
	stale := g.Group("", middleware.Auth(m.users, m.tokens, true))
	stale.POST("/logout", m.handler.Logout)
	stale.PATCH("/extend", m.handler.Extend)
}
