package env

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/develophasan/SlotyPi/internal/config"
)

type jwtEnv struct {
	AccessToken         string        `env:"ACCESS_TOKEN,required,notEmpty"`
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION" envDefault:"24h"`
}

type jwtConfig struct {
	accessTokenSecretKey string
	accessTokenDuration  time.Duration
}

func NewJWTConfig() (config.JWTConfig, error) {
	var raw jwtEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse jwt config: %w", err)
	}
	if raw.AccessTokenDuration <= 0 {
		return nil, fmt.Errorf("invalid access token duration: %s", raw.AccessTokenDuration)
	}

	return &jwtConfig{
		accessTokenSecretKey: raw.AccessToken,
		accessTokenDuration:  raw.AccessTokenDuration,
	}, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.accessTokenSecretKey)
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.accessTokenDuration
}
