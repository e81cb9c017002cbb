package env

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/develophasan/SlotyPi/internal/config"
)

type logEnv struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

type logConfig struct {
	level  string
	pretty bool
}

func NewLogConfig() (config.LogConfig, error) {
	var raw logEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse log config: %w", err)
	}
	return &logConfig{level: raw.Level, pretty: raw.Pretty}, nil
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) Pretty() bool {
	return cfg.pretty
}
