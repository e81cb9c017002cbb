package converter

import (
	"github.com/develophasan/SlotyPi/internal/api/dto/cascade"
	"github.com/develophasan/SlotyPi/internal/model"
)

// ToCascadeSpin ставку уже распарсили в хендлере: json.Number -> int64
func ToCascadeSpin(userID string, bet int64) model.CascadeSpin {
	return model.CascadeSpin{
		UserID:     userID,
		BetCredits: bet,
	}
}

func ToSpinResponse(res model.CascadeSpinResult) cascade.SpinResponse {
	return cascade.SpinResponse{
		SpinID:         res.SpinID,
		BetCredits:     res.BetCredits,
		WinCredits:     res.WinCredits,
		BalanceCredits: res.BalanceCredits,
		GameResult:     toGameResult(res.Game),
	}
}

func toGameResult(g model.GameResult) cascade.GameResult {
	steps := make([]cascade.CascadeStep, len(g.CascadeSteps))
	for i, s := range g.CascadeSteps {
		steps[i] = cascade.CascadeStep{
			Grid:     toGrid(s.GridBefore),
			Clusters: toClusters(s.Clusters),
			Win:      s.Win,
		}
	}

	multipliers := g.Multipliers
	if multipliers == nil {
		multipliers = []int{}
	}

	var board []string
	if g.BonusTriggered {
		board = append([]string{}, g.BonusBoard...)
	}

	return cascade.GameResult{
		InitialGrid:       toGrid(g.InitialGrid),
		FinalGrid:         toGrid(g.FinalGrid),
		Clusters:          toClusters(g.Clusters),
		CascadeSteps:      steps,
		Multipliers:       multipliers,
		BonusTriggered:    g.BonusTriggered,
		BonusBoard:        board,
		CascadeCapReached: g.CapReached,
	}
}

func toGrid(g model.Grid) [][]string {
	rows := make([][]string, model.GridRows)
	for r := range g {
		rows[r] = make([]string, model.GridCols)
		for c, id := range g[r] {
			rows[r][c] = string(id)
		}
	}
	return rows
}

func toClusters(clusters []model.Cluster) []cascade.Cluster {
	out := make([]cascade.Cluster, len(clusters))
	for i, cl := range clusters {
		cells := make([]cascade.Position, len(cl.Cells))
		for j, p := range cl.Cells {
			cells[j] = cascade.Position{Row: p.Row, Col: p.Col}
		}
		out[i] = cascade.Cluster{Symbol: string(cl.Symbol), Cells: cells}
	}
	return out
}

// ToBonusPick picks длины 3 проверяет хендлер
func ToBonusPick(userID string, req cascade.BonusPickRequest) model.BonusPick {
	pick := model.BonusPick{UserID: userID, SpinID: req.SpinID}
	copy(pick.Picks[:], req.Picks)
	return pick
}

func ToBonusPickResponse(res model.BonusPickResult) cascade.BonusPickResponse {
	matched := res.Matched
	if matched == nil {
		matched = []string{}
	}
	return cascade.BonusPickResponse{
		BonusWin:       res.BonusWin,
		Matched:        matched,
		BalanceCredits: res.BalanceCredits,
	}
}
