package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/develophasan/SlotyPi/internal/config"
	"github.com/develophasan/SlotyPi/internal/game"
	"github.com/develophasan/SlotyPi/internal/model"
)

type gameEnv struct {
	ConfigPath      string `env:"GAME_CONFIG_PATH" envDefault:"config.yaml"`
	MaxBetCredits   int64  `env:"MAX_BET_CREDITS" envDefault:"10000"`
	HistoryMaxLimit int    `env:"HISTORY_MAX_LIMIT" envDefault:"200"`
}

// gameYAML раздел game в config.yaml
type gameYAML struct {
	Game struct {
		Symbols []struct {
			ID         string  `yaml:"id"`
			Kind       string  `yaml:"kind"`
			Value      int     `yaml:"value"`
			Multiplier int     `yaml:"multiplier"`
			Size       int     `yaml:"size"`
			Weight     float64 `yaml:"weight"`
		} `yaml:"symbols"`
		PayTable map[int]int64 `yaml:"paytable"`
		Bonus    struct {
			Prizes   []string `yaml:"prizes"`
			Wildcard string   `yaml:"wildcard"`
		} `yaml:"bonus"`
	} `yaml:"game"`
}

type gameConfig struct {
	catalog         *game.Catalog
	maxBetCredits   int64
	historyMaxLimit int
}

func NewGameConfig() (config.GameConfig, error) {
	var raw gameEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse game config: %w", err)
	}
	if raw.MaxBetCredits <= 0 {
		return nil, fmt.Errorf("MAX_BET_CREDITS must be positive, got %d", raw.MaxBetCredits)
	}
	if raw.HistoryMaxLimit <= 0 {
		return nil, fmt.Errorf("HISTORY_MAX_LIMIT must be positive, got %d", raw.HistoryMaxLimit)
	}

	catalog, err := NewCatalogFromYAML(raw.ConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		catalog = game.DefaultCatalog()
	} else if err != nil {
		return nil, err
	}

	return &gameConfig{
		catalog:         catalog,
		maxBetCredits:   raw.MaxBetCredits,
		historyMaxLimit: raw.HistoryMaxLimit,
	}, nil
}

// NewCatalogFromYAML читает каталог символов из файла. Если раздела game нет, берется встроенный
func NewCatalogFromYAML(path string) (*game.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config: %w", err)
	}

	var doc gameYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse game config %s: %w", path, err)
	}
	if len(doc.Game.Symbols) == 0 {
		return game.DefaultCatalog(), nil
	}

	symbols := make([]model.Symbol, 0, len(doc.Game.Symbols))
	for _, s := range doc.Game.Symbols {
		kind, err := model.ParseSymbolKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w", s.ID, err)
		}
		symbols = append(symbols, model.Symbol{
			ID:         model.SymbolID(s.ID),
			Kind:       kind,
			Value:      s.Value,
			Multiplier: s.Multiplier,
			Size:       s.Size,
			Weight:     s.Weight,
		})
	}

	wildcard := doc.Game.Bonus.Wildcard
	if wildcard == "" {
		wildcard = game.DefaultWildcard
	}

	catalog, err := game.NewCatalog(symbols, doc.Game.PayTable, doc.Game.Bonus.Prizes, wildcard)
	if err != nil {
		return nil, fmt.Errorf("invalid game config %s: %w", path, err)
	}
	return catalog, nil
}

func (cfg *gameConfig) Catalog() *game.Catalog {
	return cfg.catalog
}

func (cfg *gameConfig) MaxBetCredits() int64 {
	return cfg.maxBetCredits
}

func (cfg *gameConfig) HistoryMaxLimit() int {
	return cfg.historyMaxLimit
}
