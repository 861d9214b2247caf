// Package health serves the standard gRPC health service, reporting SERVING
// while the scanning backend answers its health probe.
package health

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"scamshield/internal/domain/models"
	"scamshield/pkg/logger"
)

// ServiceName is the name the gateway registers its status under
const ServiceName = "scamshield.v1.Gateway"

// DefaultProbeInterval is used when no interval is configured
const DefaultProbeInterval = 10 * time.Second

// Prober reports backend health
type Prober interface {
	Health(ctx context.Context) *models.BackendHealth
}

// Monitor keeps a gRPC health server in sync with the backend
type Monitor struct {
	server   *health.Server
	prober   Prober
	interval time.Duration
	logger   *logger.Logger
}

// NewMonitor creates a monitor probing every interval
func NewMonitor(p Prober, interval time.Duration, log *logger.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &Monitor{
		server:   health.NewServer(),
		prober:   p,
		interval: interval,
		logger:   log.WithComponent("grpc-health"),
	}
}

// Register attaches the health service to grpcServer
func (m *Monitor) Register(grpcServer *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(grpcServer, m.server)
}

// Server returns the underlying health server
func (m *Monitor) Server() *health.Server {
	return m.server
}

// Probe checks the backend once and updates the serving status
func (m *Monitor) Probe(ctx context.Context) bool {
	h := m.prober.Health(ctx)
	healthy := h != nil && h.Reachable && h.Status == "healthy"

	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if healthy {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	m.server.SetServingStatus("", status)
	m.server.SetServingStatus(ServiceName, status)
	return healthy
}

// Run probes until ctx is cancelled. The status is marked NOT_SERVING on
// exit so clients drain before shutdown.
func (m *Monitor) Run(ctx context.Context) {
	last := m.Probe(ctx)
	m.logger.Info().Bool("serving", last).Dur("interval", m.interval).Msg("health monitor started")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.server.Shutdown()
			return
		case <-ticker.C:
			if healthy := m.Probe(ctx); healthy != last {
				m.logger.Warn().Bool("serving", healthy).Msg("backend health changed")
				last = healthy
			}
		}
	}
}
