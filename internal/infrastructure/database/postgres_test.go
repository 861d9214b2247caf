package database

import (
	"testing"
	"time"

	"scamshield/internal/config"
)

func TestPoolConfigFor(t *testing.T) {
	base := config.DatabaseConfig{
		Host: "db", Port: 5432, User: "scamshield", Password: "pw",
		DBName: "scamshield", SSLMode: "disable", Schema: "public",
	}

	tests := []struct {
		name         string
		open, idle   int
		lifetime     time.Duration
		wantMax      int32
		wantMin      int32
		wantLifetime time.Duration
	}{
		{"configured", 20, 5, 30 * time.Minute, 20, 5, 30 * time.Minute},
		{"idle above open ignored", 4, 10, 0, 4, 0, time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime = tt.open, tt.idle, tt.lifetime

			pc, err := poolConfigFor(cfg)
			if err != nil {
				t.Fatalf("poolConfigFor: %v", err)
			}
			if pc.MaxConns != tt.wantMax || pc.MinConns != tt.wantMin {
				t.Errorf("conns = %d/%d, want %d/%d", pc.MaxConns, pc.MinConns, tt.wantMax, tt.wantMin)
			}
			if pc.MaxConnLifetime != tt.wantLifetime {
				t.Errorf("lifetime = %v, want %v", pc.MaxConnLifetime, tt.wantLifetime)
			}
			if pc.ConnConfig.Host != "db" || pc.ConnConfig.Database != "scamshield" {
				t.Errorf("conn config = %s/%s", pc.ConnConfig.Host, pc.ConnConfig.Database)
			}
		})
	}
}
