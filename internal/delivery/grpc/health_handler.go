package grpc

import (
	"context"
	"time"

	"github.com/Kazeku-06/lv-backend/pkg/db"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported alongside the overall "" entry.
const ServiceName = "catalog.v1.Catalog"

// HealthHandler answers grpc.health.v1.Health, reporting NOT_SERVING
// whenever the database does not answer a ping.
type HealthHandler struct {
	*health.Server
	db      db.Pinger
	timeout time.Duration
	log     *logrus.Logger
}

func NewHealthHandler(pinger db.Pinger, timeout time.Duration, logger *logrus.Logger) *HealthHandler {
	h := &HealthHandler{
		Server:  health.NewServer(),
		db:      pinger,
		timeout: timeout,
		log:     logger,
	}
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return h
}

func (h *HealthHandler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	resp, err := h.Server.Check(ctx, req)
	if err != nil || resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return resp, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	if err := h.db.PingContext(pingCtx); err != nil {
		h.log.Warnf("gRPC Handler: Health check for '%s' failed: database ping: %v", req.GetService(), err)
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return resp, nil
}
