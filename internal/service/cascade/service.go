package cascade

import (
	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/service"
)

// Engine движок игры. *game.Engine
type Engine interface {
	PlayGame(bet int64) model.GameResult
	ProcessBonusPick(board model.BonusBoard, picks [3]int) (model.BonusPickOutcome, error)
}

type serv struct {
	engine    Engine
	ledger    service.LedgerService
	txManager trm.Manager
}

// NewCascadeService Создать новый cascade
func NewCascadeService(engine Engine, ledger service.LedgerService, txManager trm.Manager) service.CascadeService {
	return &serv{
		engine:    engine,
		ledger:    ledger,
		txManager: txManager,
	}
}
