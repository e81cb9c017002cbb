package env

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/develophasan/SlotyPi/internal/config"
)

type piEnv struct {
	APIBase      string        `env:"PI_API_BASE" envDefault:"https://api.minepi.com/v2"`
	ServerAPIKey string        `env:"PI_SERVER_API_KEY,required,notEmpty"`
	HTTPTimeout  time.Duration `env:"PI_HTTP_TIMEOUT" envDefault:"10s"`
	MeCacheSize  int           `env:"PI_ME_CACHE_SIZE" envDefault:"1024"`
	MeCacheTTL   time.Duration `env:"PI_ME_CACHE_TTL" envDefault:"1m"`
	CreditsPerPi int64         `env:"CREDITS_PER_PI" envDefault:"100"`
}

type piConfig struct {
	raw piEnv
}

func NewPiConfig() (config.PiConfig, error) {
	var raw piEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse pi config: %w", err)
	}
	if raw.CreditsPerPi <= 0 {
		return nil, fmt.Errorf("CREDITS_PER_PI must be positive, got %d", raw.CreditsPerPi)
	}
	if raw.MeCacheSize <= 0 {
		return nil, fmt.Errorf("PI_ME_CACHE_SIZE must be positive, got %d", raw.MeCacheSize)
	}
	raw.APIBase = strings.TrimRight(raw.APIBase, "/")

	return &piConfig{raw: raw}, nil
}

func (cfg *piConfig) APIBase() string {
	return cfg.raw.APIBase
}

func (cfg *piConfig) ServerAPIKey() string {
	return cfg.raw.ServerAPIKey
}

func (cfg *piConfig) HTTPTimeout() time.Duration {
	return cfg.raw.HTTPTimeout
}

func (cfg *piConfig) MeCacheSize() int {
	return cfg.raw.MeCacheSize
}

func (cfg *piConfig) MeCacheTTL() time.Duration {
	return cfg.raw.MeCacheTTL
}

func (cfg *piConfig) CreditsPerPi() int64 {
	return cfg.raw.CreditsPerPi
}
