package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pastaria/backend/internal/domain/entity"
	repo "github.com/pastaria/backend/internal/domain/repository"
	"github.com/pastaria/backend/pkg/helpers"
	"github.com/pastaria/backend/pkg/response"
)

// Context keys set by the auth middleware.
const (
	CtxUserKey  = "user"
	CtxTokenKey = "token"
)

// Auth validates the bearer token and loads the acting user. A token
// is valid only while it is a member of the user's token list, so a
// logged-out token is rejected even before it expires.
//
// allowExpired is set on the logout and extend routes: a login token
// may live for only a second, and it must still be usable to log out
// or to trade for a long-lived token. The signature is always
// verified.
func Auth(users repo.UserRepository, issuer *helpers.TokenIssuer, allowExpired bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.MsgUnauthorized)
			return
		}

		var (
			claims *helpers.Claims
			err    error
		)
		if allowExpired {
			claims, err = issuer.ParseAllowExpired(token)
		} else {
			claims, err = issuer.Parse(token)
		}
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.MsgUnauthorized)
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || !u.HasToken(token) {
			response.AbortFail(c, http.StatusUnauthorized, response.MsgUnauthorized)
			return
		}

		c.Set(CtxUserKey, u)
		c.Set(CtxTokenKey, token)
		c.Next()
	}
}

// RequireAdmin rejects non-admin users. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := UserFrom(c)
		if u == nil || u.Role != entity.RoleAdmin {
			response.AbortFail(c, http.StatusForbidden, response.MsgForbidden)
			return
		}
		c.Next()
	}
}

// UserFrom returns the acting user loaded by Auth, or nil.
func UserFrom(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// TokenFrom returns the bearer token presented by the caller.
func TokenFrom(c *gin.Context) string {
	return c.GetString(CtxTokenKey)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
