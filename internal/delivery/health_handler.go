package delivery

import (
	"context"
	"net/http"
	"time"

	"github.com/Kazeku-06/lv-backend/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HealthHandler struct {
	db      db.Pinger
	timeout time.Duration
	log     *logrus.Logger
}

func NewHealthHandler(pinger db.Pinger, timeout time.Duration, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:      pinger,
		timeout: timeout,
		log:     logger,
	}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warnf("Health check failed: database ping: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
