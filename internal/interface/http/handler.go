// Package http contains the gin handlers. Handlers translate tagged
// errors from the application layer into localized envelope
// responses; they hold no business rules of their own.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/pastaria/backend/internal/domain/entity"
	"github.com/pastaria/backend/internal/interface/middleware"
)

func isAdmin(c *gin.Context) bool {
	u := middleware.UserFrom(c)
	return u != nil && u.Role == entity.RoleAdmin
}
