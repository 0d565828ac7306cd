package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers a handler's routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts API handlers under a versioned prefix
type Router struct {
	engine     *gin.Engine
	registrars []RouteRegistrar
}

// New creates a router over the given engine
func New(engine *gin.Engine) *Router {
	return &Router{engine: engine}
}

// Register adds handlers to be mounted on Setup
func (r *Router) Register(registrars ...RouteRegistrar) {
	r.registrars = append(r.registrars, registrars...)
}

// Setup mounts all registered handlers under /api/v1
func (r *Router) Setup() {
	v1 := r.engine.Group("/api/v1")
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(v1)
	}
}
