package game

import (
	"strconv"

	"github.com/develophasan/SlotyPi/internal/model"
)

// FindMultipliers значения множителей на начальном поле, построчно
func (e *Engine) FindMultipliers(initial model.Grid) []int {
	var mults []int
	for r := 0; r < model.GridRows; r++ {
		for c := 0; c < model.GridCols; c++ {
			s := e.catalog.Symbol(initial[r][c])
			switch s.Kind {
			case model.KindMultiplier:
				mults = append(mults, s.Multiplier)
			case model.KindPlain, model.KindBonusTrigger, model.KindBigSymbol:
			}
		}
	}
	return mults
}

// ApplyMultipliers множители складываются, а не перемножаются
func ApplyMultipliers(win int64, mults []int) int64 {
	if len(mults) == 0 {
		return win
	}
	var sum int64
	for _, m := range mults {
		sum += int64(m)
	}
	return win * sum
}

// CheckBonusTrigger true, если на начальном поле не меньше BonusTriggerCount ключей
func (e *Engine) CheckBonusTrigger(initial model.Grid) bool {
	n := 0
	for r := 0; r < model.GridRows; r++ {
		for c := 0; c < model.GridCols; c++ {
			switch e.catalog.Symbol(initial[r][c]).Kind {
			case model.KindBonusTrigger:
				n++
			case model.KindPlain, model.KindMultiplier, model.KindBigSymbol:
			}
		}
	}
	return n >= BonusTriggerCount
}

// GenerateBonusRound BonusBoardSize равновероятных выборок из призов каталога
func (e *Engine) GenerateBonusRound() model.BonusBoard {
	prizes := e.catalog.prizes
	board := make(model.BonusBoard, BonusBoardSize)
	for i := range board {
		board[i] = prizes[e.rng.IntN(len(prizes))]
	}
	return board
}

// ValidatePicks три разных индекса в [0, size)
func ValidatePicks(size int, picks [3]int) error {
	for i, p := range picks {
		if p < 0 || p >= size {
			return model.ErrInvalidPicks
		}
		for _, q := range picks[:i] {
			if q == p {
				return model.ErrInvalidPicks
			}
		}
	}
	return nil
}

// ProcessBonusPick разрешает выбор трех ячеек бонусного поля.
// Порядок правил:
//  1. джокер среди выбранных и хотя бы два обычных приза: выигрыш равен первому обычному призу
//  2. все три приза одинаковые: выигрыш равен этому призу
//  3. иначе выигрыша нет
//
// Два джокера и один приз под правило 1 не попадают и выигрыша не дают
func (e *Engine) ProcessBonusPick(board model.BonusBoard, picks [3]int) (model.BonusPickOutcome, error) {
	if err := ValidatePicks(len(board), picks); err != nil {
		return model.BonusPickOutcome{}, err
	}

	wildcard := e.catalog.wildcard
	selected := make([]string, 0, len(picks))
	for _, p := range picks {
		selected = append(selected, board[p])
	}

	var regular []string
	hasWild := false
	for _, s := range selected {
		if s == wildcard {
			hasWild = true
			continue
		}
		regular = append(regular, s)
	}

	if hasWild && len(regular) >= 2 {
		first := regular[0]
		return model.BonusPickOutcome{
			Win:     prizeValue(first),
			Matched: []string{first, first, wildcard},
		}, nil
	}

	counts := make(map[string]int, len(regular))
	for _, s := range regular {
		counts[s]++
		if counts[s] >= 3 {
			return model.BonusPickOutcome{
				Win:     prizeValue(s),
				Matched: []string{s, s, s},
			}, nil
		}
	}

	return model.BonusPickOutcome{Matched: selected}, nil
}

// prizeValue числовое значение приза. Нечисловая метка ничего не стоит
func prizeValue(label string) int64 {
	v, err := strconv.ParseInt(label, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
