package game

import "github.com/develophasan/SlotyPi/internal/model"

var directions = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// FindClusters ищет связные (4 направления) группы одинаковых обычных символов размером от MinClusterSize.
// Обход построчный, каждая ячейка посещается один раз, поэтому кластеры не пересекаются
func (e *Engine) FindClusters(grid model.Grid) []model.Cluster {
	var visited [model.GridRows][model.GridCols]bool
	var clusters []model.Cluster

	for r := 0; r < model.GridRows; r++ {
		for c := 0; c < model.GridCols; c++ {
			if visited[r][c] {
				continue
			}
			id := grid[r][c]
			if !e.catalog.Symbol(id).Clusterable() {
				visited[r][c] = true
				continue
			}

			// BFS
			cells := []model.Position{{Row: r, Col: c}}
			visited[r][c] = true
			for i := 0; i < len(cells); i++ {
				cur := cells[i]
				for _, d := range directions {
					nr, nc := cur.Row+d[0], cur.Col+d[1]
					if nr < 0 || nr >= model.GridRows || nc < 0 || nc >= model.GridCols {
						continue
					}
					if visited[nr][nc] || grid[nr][nc] != id {
						continue
					}
					visited[nr][nc] = true
					cells = append(cells, model.Position{Row: nr, Col: nc})
				}
			}

			if len(cells) >= MinClusterSize {
				clusters = append(clusters, model.Cluster{Symbol: id, Cells: cells})
			}
		}
	}
	return clusters
}

// ApplyCascade убирает совпавшие ячейки, сдвигает оставшиеся вниз с сохранением порядка
// и досыпает сверху новые символы. Колонки без совпадений не трогаются
func (e *Engine) ApplyCascade(grid *model.Grid, matched []model.Position) {
	var removed [model.GridRows][model.GridCols]bool
	var affected [model.GridCols]bool
	for _, p := range matched {
		removed[p.Row][p.Col] = true
		affected[p.Col] = true
	}

	for c := 0; c < model.GridCols; c++ {
		if !affected[c] {
			continue
		}

		survivors := make([]model.SymbolID, 0, model.GridRows)
		for r := 0; r < model.GridRows; r++ {
			if !removed[r][c] {
				survivors = append(survivors, grid[r][c])
			}
		}

		gap := model.GridRows - len(survivors)
		for r := 0; r < gap; r++ {
			grid[r][c] = e.sampleSymbol()
		}
		for i, s := range survivors {
			grid[gap+i][c] = s
		}
	}
}

// CalculateClusterWin выигрыш шага: сумма множителей таблицы по всем кластерам, умноженная на ставку
func (e *Engine) CalculateClusterWin(clusters []model.Cluster, bet int64) int64 {
	var factor int64
	for _, cl := range clusters {
		factor += e.catalog.PayMultiplier(cl.Size())
	}
	return factor * bet
}

func matchedCells(clusters []model.Cluster) []model.Position {
	n := 0
	for _, cl := range clusters {
		n += len(cl.Cells)
	}
	cells := make([]model.Position, 0, n)
	for _, cl := range clusters {
		cells = append(cells, cl.Cells...)
	}
	return cells
}
