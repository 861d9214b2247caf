package handlers

import (
	"context"

	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health    *HealthHandler
	Scan      *ScanHandler
	Chat      *ChatHandler
	Community *CommunityHandler
	Relay     *RelayHandler
	Auth      *AuthHandler
}

// AuthBackend is the account part of the remote API
type AuthBackend interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.Token, error)
	Me(ctx context.Context) (*models.User, error)
}

// BackendProber reports backend health
type BackendProber interface {
	Health(ctx context.Context) *models.BackendHealth
}

// Pinger is a dependency the readiness check can probe
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Scans     *services.ScanService
	Chat      *services.ChatService
	Community *services.CommunityService
	Relay     *services.RelayService
	Auth      AuthBackend
	Backend   BackendProber
	Checks    map[string]Pinger
	Version   string
	Logger    *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Backend, deps.Checks, deps.Version, deps.Logger),
		Scan:      NewScanHandler(deps.Scans, deps.Logger),
		Chat:      NewChatHandler(deps.Chat, deps.Logger),
		Community: NewCommunityHandler(deps.Community, deps.Logger),
		Relay:     NewRelayHandler(deps.Relay, deps.Logger),
		Auth:      NewAuthHandler(deps.Auth, deps.Logger),
	}
}
