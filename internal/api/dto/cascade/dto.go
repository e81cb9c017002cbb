package cascade

import "encoding/json"

type SpinRequest struct {
	BetCredits json.RawMessage `json:"betCredits" validate:"required"` // Целое > 0 числом JSON, иначе INVALID_BET
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Cluster struct {
	Symbol string     `json:"symbol"`
	Cells  []Position `json:"cells"`
}

type CascadeStep struct {
	Grid     [][]string `json:"grid"` // Поле до удаления кластеров
	Clusters []Cluster  `json:"clusters"`
	Win      int64      `json:"win"`
}

type GameResult struct {
	InitialGrid       [][]string    `json:"initialGrid"`
	FinalGrid         [][]string    `json:"finalGrid"`
	Clusters          []Cluster     `json:"clusters"`
	CascadeSteps      []CascadeStep `json:"cascadeSteps"`
	Multipliers       []int         `json:"multipliers"`
	BonusTriggered    bool          `json:"bonusTriggered"`
	BonusBoard        []string      `json:"bonusBoard"` // null, если бонус не выпал
	CascadeCapReached bool          `json:"cascadeCapReached"`
}

type SpinResponse struct {
	SpinID         string     `json:"spinId"`
	BetCredits     int64      `json:"betCredits"`
	WinCredits     int64      `json:"winCredits"`
	BalanceCredits int64      `json:"balanceCredits"`
	GameResult     GameResult `json:"gameResult"`
}

type BonusPickRequest struct {
	SpinID string `json:"spinId" validate:"required"`
	Picks  []int  `json:"picks"` // Ровно 3 разных индекса 0..11
}

type BonusPickResponse struct {
	BonusWin       int64    `json:"bonusWin"`
	Matched        []string `json:"matched"`
	BalanceCredits int64    `json:"balanceCredits"`
}
