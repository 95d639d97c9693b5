package delivery

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouteRegistrar interface {
	RegisterRoutes(router gin.IRouter)
}

// NewRouter mounts every resource at the root and again under /api.
func NewRouter(logger *logrus.Logger, health *HealthHandler, resources ...RouteRegistrar) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger), gin.Recovery())

	health.RegisterRoutes(router)
	api := router.Group("/api")
	for _, r := range resources {
		r.RegisterRoutes(router)
		r.RegisterRoutes(api)
	}
	return router
}
