package game

import "github.com/develophasan/SlotyPi/internal/model"

// PlayGame полный спин: начальное поле, каскады до стабилизации или до MaxCascades,
// множители и бонус по начальному полю
func (e *Engine) PlayGame(bet int64) model.GameResult {
	initial := e.GenerateGrid()
	working := initial

	res := model.GameResult{InitialGrid: initial}

	for iter := 0; iter < MaxCascades; iter++ {
		clusters := e.FindClusters(working)
		if len(clusters) == 0 {
			break
		}

		win := e.CalculateClusterWin(clusters, bet)
		res.CascadeSteps = append(res.CascadeSteps, model.CascadeStep{
			GridBefore: working,
			Clusters:   clusters,
			Win:        win,
		})
		res.Clusters = append(res.Clusters, clusters...)
		res.CascadeWin += win

		e.ApplyCascade(&working, matchedCells(clusters))
	}

	if len(res.CascadeSteps) == MaxCascades && len(e.FindClusters(working)) > 0 {
		res.CapReached = true
	}
	res.FinalGrid = working

	res.Multipliers = e.FindMultipliers(initial)
	res.TotalWin = ApplyMultipliers(res.CascadeWin, res.Multipliers)

	res.BonusTriggered = e.CheckBonusTrigger(initial)
	if res.BonusTriggered {
		res.BonusBoard = e.GenerateBonusRound()
	}

	return res
}
