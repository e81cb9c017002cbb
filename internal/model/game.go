package model

const (
	// GridRows строки игрового поля
	GridRows = 5
	// GridCols колонки игрового поля
	GridCols = 6
)

// Grid игровое поле 5x6, адресуется как grid[row][col]
type Grid [GridRows][GridCols]SymbolID

type Position struct {
	Row int
	Col int
}

// Cluster связная (по 4 направлениям) группа одинаковых символов размером от 3
type Cluster struct {
	Symbol SymbolID
	Cells  []Position
}

func (c Cluster) Size() int {
	return len(c.Cells)
}

// CascadeStep снимок одного шага каскада: поле до удаления, найденные кластеры и выигрыш шага
type CascadeStep struct {
	GridBefore Grid
	Clusters   []Cluster
	Win        int64
}

// BonusBoard 12 призов бонусного раунда (числа строкой или джокер)
type BonusBoard []string

// GameResult полный результат одного спина
type GameResult struct {
	InitialGrid    Grid
	FinalGrid      Grid
	Clusters       []Cluster
	CascadeSteps   []CascadeStep
	CascadeWin     int64
	Multipliers    []int
	TotalWin       int64
	BonusTriggered bool
	BonusBoard     BonusBoard
	CapReached     bool
}

// BonusPickOutcome результат выбора трех ячеек бонусного поля
type BonusPickOutcome struct {
	Win     int64
	Matched []string
}
