package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/develophasan/SlotyPi/internal/model"
)

func TestFindMultipliers_UsesInitialLayout(t *testing.T) {
	e := NewEngine(testCatalog(t), nil)

	g := checkerboard()
	g[0][5] = "M2"
	g[3][1] = "M3"

	mults := e.FindMultipliers(g)
	assert.Equal(t, []int{2, 3}, mults)
	// сумма, а не произведение
	assert.Equal(t, int64(500), ApplyMultipliers(100, mults))
	assert.Equal(t, int64(400), ApplyMultipliers(100, []int{2, 2}))
	assert.Equal(t, int64(100), ApplyMultipliers(100, nil))
}

func TestCheckBonusTrigger(t *testing.T) {
	e := NewEngine(testCatalog(t), nil)

	g := checkerboard()
	g[0][0], g[4][5] = "K", "K"
	assert.False(t, e.CheckBonusTrigger(g))

	g[2][2] = "K"
	assert.True(t, e.CheckBonusTrigger(g))
}

func TestGenerateBonusRound(t *testing.T) {
	ints := []int{0, 1, 2, 0, 0, 0, 1, 1, 1, 2, 2, 2}
	e := NewEngine(testCatalog(t), &scriptedSource{ints: ints})

	board := e.GenerateBonusRound()
	require.Len(t, board, BonusBoardSize)
	assert.Equal(t, model.BonusBoard{"10", "50", "JOKER", "10", "10", "10", "50", "50", "50", "JOKER", "JOKER", "JOKER"}, board)
}

func board(head ...string) model.BonusBoard {
	b := make(model.BonusBoard, BonusBoardSize)
	for i := range b {
		b[i] = "25"
	}
	copy(b, head)
	return b
}

func TestProcessBonusPick(t *testing.T) {
	e := NewEngine(DefaultCatalog(), nil)

	tests := []struct {
		name    string
		board   model.BonusBoard
		picks   [3]int
		win     int64
		matched []string
	}{
		{"three of a kind", board("10", "10", "10"), [3]int{0, 1, 2}, 10, []string{"10", "10", "10"}},
		{"joker with pair", board("JOKER", "50", "50"), [3]int{0, 1, 2}, 50, []string{"50", "50", "JOKER"}},
		{"joker takes first regular prize", board("100", "JOKER", "10"), [3]int{0, 1, 2}, 100, []string{"100", "100", "JOKER"}},
		{"two jokers fall through", board("JOKER", "JOKER", "10"), [3]int{0, 1, 2}, 0, []string{"JOKER", "JOKER", "10"}},
		{"three jokers", board("JOKER", "JOKER", "JOKER"), [3]int{0, 1, 2}, 0, []string{"JOKER", "JOKER", "JOKER"}},
		{"no match", board("10", "50", "100"), [3]int{2, 0, 1}, 0, []string{"100", "10", "50"}},
		{"picks anywhere", board("10", "50", "100"), [3]int{11, 5, 9}, 25, []string{"25", "25", "25"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.ProcessBonusPick(tt.board, tt.picks)
			require.NoError(t, err)
			assert.Equal(t, tt.win, out.Win)
			assert.Equal(t, tt.matched, out.Matched)
		})
	}
}

func TestProcessBonusPick_InvalidPicks(t *testing.T) {
	e := NewEngine(DefaultCatalog(), nil)
	b := board("10", "10", "10")

	for _, picks := range [][3]int{{0, 0, 1}, {0, 1, 12}, {-1, 1, 2}, {3, 4, 3}} {
		_, err := e.ProcessBonusPick(b, picks)
		assert.ErrorIs(t, err, model.ErrInvalidPicks, "picks %v", picks)
	}
}
