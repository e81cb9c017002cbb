package config

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/develophasan/SlotyPi/internal/game"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
	CORSOrigins() []string
}

// PGConfig пустой DSN - работаем на in-memory хранилище
type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

type LogConfig interface {
	Level() string
	Pretty() bool
}

type GameConfig interface {
	Catalog() *game.Catalog
	MaxBetCredits() int64
	HistoryMaxLimit() int
}

type PiConfig interface {
	APIBase() string
	ServerAPIKey() string
	HTTPTimeout() time.Duration
	MeCacheSize() int
	MeCacheTTL() time.Duration
	CreditsPerPi() int64
}
