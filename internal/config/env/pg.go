package env

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/develophasan/SlotyPi/internal/config"
)

type pgEnv struct {
	DSN string `env:"PG_DSN"`
}

type pgConfig struct {
	dsn string
}

func NewPGConfig() (config.PGConfig, error) {
	var raw pgEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse pg config: %w", err)
	}

	return &pgConfig{
		dsn: raw.DSN,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}
