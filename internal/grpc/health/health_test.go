package health

import (
	"context"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc/health/grpc_health_v1"

	"scamshield/internal/domain/models"
	"scamshield/pkg/logger"
)

type stubProber struct {
	mu     sync.Mutex
	status string
}

func (p *stubProber) set(status string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
}

func (p *stubProber) Health(context.Context) *models.BackendHealth {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &models.BackendHealth{Status: p.status, Reachable: p.status != "unreachable"}
}

func servingStatus(t *testing.T, m *Monitor, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := m.Server().Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		t.Fatalf("check %q: %v", service, err)
	}
	return resp.GetStatus()
}

func TestProbe(t *testing.T) {
	tests := []struct {
		status string
		want   grpc_health_v1.HealthCheckResponse_ServingStatus
	}{
		{"healthy", grpc_health_v1.HealthCheckResponse_SERVING},
		{"unhealthy", grpc_health_v1.HealthCheckResponse_NOT_SERVING},
		{"unreachable", grpc_health_v1.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			p := &stubProber{status: tt.status}
			m := NewMonitor(p, time.Second, logger.NewNop())
			m.Probe(context.Background())

			for _, svc := range []string{"", ServiceName} {
				if got := servingStatus(t, m, svc); got != tt.want {
					t.Errorf("status(%q) = %v, want %v", svc, got, tt.want)
				}
			}
		})
	}
}

func TestRunTracksBackend(t *testing.T) {
	p := &stubProber{status: "unreachable"}
	m := NewMonitor(p, 5*time.Millisecond, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	p.set("healthy")
	deadline := time.Now().Add(2 * time.Second)
	for servingStatus(t, m, "") != grpc_health_v1.HealthCheckResponse_SERVING {
		if time.Now().After(deadline) {
			t.Fatal("monitor never reported SERVING")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
