package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/develophasan/SlotyPi/internal/model"
)

// scriptedSource отдает заранее заданные значения по порядку
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		panic("scripted source: floats exhausted")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		panic("scripted source: ints exhausted")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		panic(fmt.Sprintf("scripted source: %d out of range %d", v, n))
	}
	return v
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(
		[]model.Symbol{
			{ID: "A", Kind: model.KindPlain, Value: 1, Weight: 1},
			{ID: "B", Kind: model.KindPlain, Value: 2, Weight: 1},
			{ID: "C", Kind: model.KindPlain, Value: 3, Weight: 1},
			{ID: "D", Kind: model.KindPlain, Value: 4, Weight: 1},
			{ID: "K", Kind: model.KindBonusTrigger, Weight: 1},
			{ID: "M2", Kind: model.KindMultiplier, Multiplier: 2, Weight: 1},
			{ID: "M3", Kind: model.KindMultiplier, Multiplier: 3, Weight: 1},
		},
		map[int]int64{3: 1, 4: 2, 5: 5, 6: 10},
		[]string{"10", "50", "JOKER"},
		"JOKER",
	)
	require.NoError(t, err)
	return c
}

// floatFor бросок, попадающий в середину интервала символа
func floatFor(c *Catalog, id model.SymbolID) float64 {
	var acc float64
	for _, s := range c.symbols {
		if s.ID == id {
			return (acc + s.Weight/2) / c.totalWeight
		}
		acc += s.Weight
	}
	panic("unknown symbol " + string(id))
}

// floatsFor броски, которые воспроизведут поле при построчной генерации
func floatsFor(c *Catalog, grid model.Grid, extra ...model.SymbolID) []float64 {
	out := make([]float64, 0, model.GridRows*model.GridCols+len(extra))
	for r := 0; r < model.GridRows; r++ {
		for col := 0; col < model.GridCols; col++ {
			out = append(out, floatFor(c, grid[r][col]))
		}
	}
	for _, id := range extra {
		out = append(out, floatFor(c, id))
	}
	return out
}

func filled(id model.SymbolID) model.Grid {
	var g model.Grid
	for r := range g {
		for c := range g[r] {
			g[r][c] = id
		}
	}
	return g
}

// checkerboard поле без кластеров
func checkerboard() model.Grid {
	var g model.Grid
	for r := range g {
		for c := range g[r] {
			if (r+c)%2 == 0 {
				g[r][c] = "A"
			} else {
				g[r][c] = "B"
			}
		}
	}
	return g
}
