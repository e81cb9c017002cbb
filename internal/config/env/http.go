package env

import (
	"fmt"
	"net"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/develophasan/SlotyPi/internal/config"
)

type httpEnv struct {
	Host       string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port       string `env:"HTTP_PORT" envDefault:"8787"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`
}

type httpConfig struct {
	address string
	origins []string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	var raw httpEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse http config: %w", err)
	}

	// CORS_ORIGIN может содержать несколько origin через запятую
	var origins []string
	for _, o := range strings.Split(raw.CORSOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &httpConfig{
		address: net.JoinHostPort(raw.Host, raw.Port),
		origins: origins,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.address
}

func (cfg *httpConfig) CORSOrigins() []string {
	return cfg.origins
}
