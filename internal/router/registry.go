package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Registry struct {
	modules []Module
	logger  *logrus.Logger
}

func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{logger: logger}
}

func (r *Registry) Add(m Module) {
	r.modules = append(r.modules, m)
}

// Apply mounts every registered module under /api.
func (r *Registry) Apply(engine *gin.Engine) {
	api := engine.Group("/api")
	for _, m := range r.modules {
		m.Register(api)
		if r.logger != nil {
			r.logger.WithField("module", m.Name()).Debug("routes registered")
		}
	}
}
