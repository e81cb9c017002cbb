package game

import "github.com/develophasan/SlotyPi/internal/model"

// GenerateGrid заполняет поле независимыми взвешенными выборками
func (e *Engine) GenerateGrid() model.Grid {
	var grid model.Grid
	for r := 0; r < model.GridRows; r++ {
		for c := 0; c < model.GridCols; c++ {
			grid[r][c] = e.sampleSymbol()
		}
	}
	return grid
}

// sampleSymbol выбирает первый символ, чей накопленный вес достиг броска.
// При равенстве выигрывает символ, стоящий в каталоге раньше
func (e *Engine) sampleSymbol() model.SymbolID {
	roll := e.rng.Float64() * e.catalog.totalWeight
	var acc float64
	for _, s := range e.catalog.symbols {
		acc += s.Weight
		if roll <= acc {
			return s.ID
		}
	}
	// Погрешность float при roll ~ totalWeight
	return e.catalog.symbols[len(e.catalog.symbols)-1].ID
}
