package router

import "github.com/gin-gonic/gin"

// Module is one routable feature area. Each module registers its own
// routes under the shared /api group.
type Module interface {
	Name() string
	Register(api *gin.RouterGroup)
}
