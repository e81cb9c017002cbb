package auth

import (
	"context"

	"github.com/develophasan/SlotyPi/internal/client/pi"
	"github.com/develophasan/SlotyPi/internal/config"
	"github.com/develophasan/SlotyPi/internal/repository"
	"github.com/develophasan/SlotyPi/internal/service"
)

// PiIdentity проверка токена пользователя в Pi
type PiIdentity interface {
	Me(ctx context.Context, accessToken string) (*pi.Me, error)
}

type serv struct {
	pi        PiIdentity
	userRepo  repository.UserRepository
	ledger    service.LedgerService
	jwtConfig config.JWTConfig
	piConfig  config.PiConfig
}

func NewAuthService(
	piClient PiIdentity,
	userRepo repository.UserRepository,
	ledger service.LedgerService,
	jwtCfg config.JWTConfig,
	piCfg config.PiConfig,
) service.AuthService {
	return &serv{
		pi:        piClient,
		userRepo:  userRepo,
		ledger:    ledger,
		jwtConfig: jwtCfg,
		piConfig:  piCfg,
	}
}
