package model

import "fmt"

// SymbolID идентификатор символа из каталога
type SymbolID string

// SymbolKind вариант символа: обычный, бонусный ключ, множитель или большой символ
type SymbolKind int

const (
	KindPlain SymbolKind = iota
	KindBonusTrigger
	KindMultiplier
	KindBigSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindBonusTrigger:
		return "bonus_trigger"
	case KindMultiplier:
		return "multiplier"
	case KindBigSymbol:
		return "big_symbol"
	}
	return fmt.Sprintf("SymbolKind(%d)", int(k))
}

// ParseSymbolKind разбор вида символа из конфига. Пустая строка - обычный символ
func ParseSymbolKind(s string) (SymbolKind, error) {
	switch s {
	case "", "plain":
		return KindPlain, nil
	case "bonus_trigger":
		return KindBonusTrigger, nil
	case "multiplier":
		return KindMultiplier, nil
	case "big_symbol":
		return KindBigSymbol, nil
	}
	return 0, fmt.Errorf("unknown symbol kind %q", s)
}

// Symbol элемент каталога. Значимое поле зависит от Kind:
// Value для обычных, Multiplier для множителей, Size для больших символов
type Symbol struct {
	ID         SymbolID
	Kind       SymbolKind
	Value      int
	Multiplier int
	Size       int
	Weight     float64
}

// Clusterable может ли символ входить в выигрышный кластер
func (s Symbol) Clusterable() bool {
	switch s.Kind {
	case KindPlain:
		return true
	case KindBonusTrigger, KindMultiplier, KindBigSymbol:
		return false
	}
	panic(fmt.Sprintf("symbol %s: unhandled kind %s", s.ID, s.Kind))
}
