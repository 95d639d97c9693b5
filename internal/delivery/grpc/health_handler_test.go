package grpc

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

func newHandler(t *testing.T) (*HealthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewHealthHandler(db, time.Second, logger), mock
}

func TestHealthCheck(t *testing.T) {
	testCases := []struct {
		name    string
		service string
		pingErr error
		want    healthpb.HealthCheckResponse_ServingStatus
	}{
		{name: "Overall serving", service: "", want: healthpb.HealthCheckResponse_SERVING},
		{name: "Named service serving", service: ServiceName, want: healthpb.HealthCheckResponse_SERVING},
		{name: "Database down", service: "", pingErr: errors.New("connection refused"), want: healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, mock := newHandler(t)
			mock.ExpectPing().WillReturnError(tc.pingErr)

			resp, err := h.Check(context.Background(), &healthpb.HealthCheckRequest{Service: tc.service})
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.GetStatus())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthCheck_UnknownService(t *testing.T) {
	h, _ := newHandler(t)

	_, err := h.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "other.Service"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHealthCheck_AfterShutdown(t *testing.T) {
	h, mock := newHandler(t)
	h.Shutdown()

	resp, err := h.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
	assert.NoError(t, mock.ExpectationsWereMet())
}
