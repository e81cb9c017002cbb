package game

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/develophasan/SlotyPi/internal/model"
)

const (
	// Минимальный размер кластера
	MinClusterSize = 3
	// Кластеры от этого размера платят одинаково
	MaxPaySize = 6
	// Предел итераций каскада. Достижение предела не ошибка
	MaxCascades = 10
	// Сколько ключей на начальном поле запускают бонус
	BonusTriggerCount = 3
	// Размер бонусного поля
	BonusBoardSize = 12
	// DefaultWildcard джокер бонусного раунда
	DefaultWildcard = "JOKER"
)

// Catalog каталог символов, таблица выплат и призы бонусного раунда
type Catalog struct {
	symbols     []model.Symbol
	byID        map[model.SymbolID]model.Symbol
	totalWeight float64
	payTable    map[int]int64
	prizes      []string
	wildcard    string
}

// NewCatalog собирает и проверяет каталог. Порядок symbols важен: при равенстве
// накопленного веса выигрывает символ, стоящий раньше
func NewCatalog(symbols []model.Symbol, payTable map[int]int64, prizes []string, wildcard string) (*Catalog, error) {
	if len(symbols) == 0 {
		return nil, errors.New("catalog has no symbols")
	}

	c := &Catalog{
		symbols:  make([]model.Symbol, 0, len(symbols)),
		byID:     make(map[model.SymbolID]model.Symbol, len(symbols)),
		payTable: make(map[int]int64, len(payTable)),
		prizes:   append([]string(nil), prizes...),
		wildcard: wildcard,
	}

	plain := 0
	for _, s := range symbols {
		if s.ID == "" {
			return nil, errors.New("symbol with empty id")
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate symbol %s", s.ID)
		}
		if s.Weight < 0 {
			return nil, fmt.Errorf("symbol %s: negative weight", s.ID)
		}
		switch s.Kind {
		case model.KindPlain:
			plain++
		case model.KindBonusTrigger:
		case model.KindMultiplier:
			if s.Multiplier < 2 {
				return nil, fmt.Errorf("symbol %s: multiplier must be >= 2", s.ID)
			}
		case model.KindBigSymbol:
			if s.Size < 1 {
				return nil, fmt.Errorf("symbol %s: big symbol size must be positive", s.ID)
			}
		default:
			return nil, fmt.Errorf("symbol %s: unknown kind %s", s.ID, s.Kind)
		}
		c.symbols = append(c.symbols, s)
		c.byID[s.ID] = s
		c.totalWeight += s.Weight
	}
	if plain == 0 {
		return nil, errors.New("catalog needs at least one plain symbol")
	}
	if c.totalWeight <= 0 {
		return nil, errors.New("catalog total weight must be positive")
	}

	for size := MinClusterSize; size <= MaxPaySize; size++ {
		mult, ok := payTable[size]
		if !ok {
			return nil, fmt.Errorf("paytable has no entry for cluster size %d", size)
		}
		if mult < 0 {
			return nil, fmt.Errorf("paytable entry for size %d is negative", size)
		}
		c.payTable[size] = mult
	}

	if wildcard == "" {
		return nil, errors.New("bonus wildcard label is empty")
	}
	numeric, hasWild := 0, false
	for _, p := range prizes {
		if p == wildcard {
			hasWild = true
			continue
		}
		if _, err := strconv.ParseInt(p, 10, 64); err != nil {
			return nil, fmt.Errorf("bonus prize %q is not numeric", p)
		}
		numeric++
	}
	if !hasWild || numeric == 0 {
		return nil, errors.New("bonus prizes need the wildcard and at least one numeric prize")
	}

	return c, nil
}

// DefaultCatalog встроенный каталог, если config.yaml не задан
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		[]model.Symbol{
			{ID: "CHERRY", Kind: model.KindPlain, Value: 1, Weight: 22},
			{ID: "LEMON", Kind: model.KindPlain, Value: 2, Weight: 20},
			{ID: "ORANGE", Kind: model.KindPlain, Value: 3, Weight: 17},
			{ID: "PLUM", Kind: model.KindPlain, Value: 4, Weight: 14},
			{ID: "GRAPE", Kind: model.KindPlain, Value: 5, Weight: 11},
			{ID: "WATERMELON", Kind: model.KindPlain, Value: 6, Weight: 8},
			{ID: "KEY", Kind: model.KindBonusTrigger, Weight: 3},
			{ID: "MULT_2X", Kind: model.KindMultiplier, Multiplier: 2, Weight: 1.5},
			{ID: "MULT_3X", Kind: model.KindMultiplier, Multiplier: 3, Weight: 1},
			{ID: "MULT_5X", Kind: model.KindMultiplier, Multiplier: 5, Weight: 0.5},
			{ID: "BIG_SEVEN", Kind: model.KindBigSymbol, Size: 2, Weight: 1},
		},
		map[int]int64{3: 1, 4: 2, 5: 3, 6: 5},
		[]string{"10", "25", "50", "100", "250", DefaultWildcard},
		DefaultWildcard,
	)
	if err != nil {
		panic("default catalog: " + err.Error())
	}
	return c
}

// Symbol символ по id. Неизвестный id на поле - нарушение инварианта
func (c *Catalog) Symbol(id model.SymbolID) model.Symbol {
	s, ok := c.byID[id]
	if !ok {
		panic(fmt.Sprintf("symbol %q is not in the catalog", id))
	}
	return s
}

func (c *Catalog) Symbols() []model.Symbol {
	return append([]model.Symbol(nil), c.symbols...)
}

// PayMultiplier множитель ставки для кластера данного размера. От 6 и выше - как за 6
func (c *Catalog) PayMultiplier(size int) int64 {
	if size < MinClusterSize {
		return 0
	}
	if size > MaxPaySize {
		size = MaxPaySize
	}
	return c.payTable[size]
}

func (c *Catalog) Prizes() []string {
	return append([]string(nil), c.prizes...)
}

func (c *Catalog) Wildcard() string {
	return c.wildcard
}
