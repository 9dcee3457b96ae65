package services

import (
	"github.com/corkboard/bulletin_board_app/internal/core/ports"
	portssvc "github.com/corkboard/bulletin_board_app/internal/core/ports/services"
	"github.com/corkboard/bulletin_board_app/internal/platform/config"
)

// NewServiceContainer wires all services from the repository provider and
// application configuration.
func NewServiceContainer(cfg *config.Config, repos ports.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:        NewUserService(repos.UserRepo),
		Token:       NewTokenService(cfg),
		GoogleOAuth: NewGoogleOAuthService(cfg),
		Post:        NewPostService(repos.PostRepo, repos.UserRepo),
	}
}
