package container

import (
	"github.com/gridworks/roadnet/cmd/roadnet/repository"
	"github.com/gridworks/roadnet/cmd/roadnet/service"
	"github.com/gridworks/roadnet/common/bootstrap"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	Components *bootstrap.Components

	// Repositories
	NetworkRepo *repository.NetworkRepository
	UserRepo    *repository.UserRepository
	SessionRepo *repository.SessionRepository

	// Services
	NetworkService *service.NetworkService
	AuthService    *service.AuthService
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	// Initialize repositories
	networkRepo := repository.NewNetworkRepository(components.DB)
	userRepo := repository.NewUserRepository(components.DB)
	sessionRepo := repository.NewSessionRepository(components.Redis, components.Config.Auth.SessionTTL)

	// Initialize services (bottom-up: dependencies first)
	networkService := service.NewNetworkService(networkRepo, userRepo, components.Logger)
	authService := service.NewAuthService(userRepo, sessionRepo, components.Logger)

	return &Container{
		Components:     components,
		NetworkRepo:    networkRepo,
		UserRepo:       userRepo,
		SessionRepo:    sessionRepo,
		NetworkService: networkService,
		AuthService:    authService,
	}, nil
}
