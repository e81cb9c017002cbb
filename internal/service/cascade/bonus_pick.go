package cascade

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/develophasan/SlotyPi/internal/game"
	"github.com/develophasan/SlotyPi/internal/metrics"
	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/repository"
)

// BonusPick - разыгрывает бонусное поле спина. Поле разыгрывается один раз, даже без выигрыша
func (s *serv) BonusPick(ctx context.Context, req model.BonusPick) (*model.BonusPickResult, error) {
	if err := game.ValidatePicks(game.BonusBoardSize, req.Picks); err != nil {
		metrics.BonusPicksTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	var res *model.BonusPickResult
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		board, err := s.ledger.FindBonusBoard(txCtx, req.UserID, req.SpinID)
		if err != nil {
			return err
		}

		outcome, err := s.engine.ProcessBonusPick(board, req.Picks)
		if err != nil {
			return err
		}

		err = s.ledger.RecordBonusPayout(txCtx, req.UserID, req.SpinID, outcome.Win, model.BonusMeta{
			Picks:   req.Picks,
			Matched: outcome.Matched,
		})
		if err != nil {
			return err
		}

		balance, err := s.ledger.GetBalance(txCtx, req.UserID)
		if err != nil {
			return err
		}

		res = &model.BonusPickResult{
			BonusWin:       outcome.Win,
			Matched:        outcome.Matched,
			BalanceCredits: balance,
		}
		return nil
	})
	if errors.Is(err, repository.ErrDuplicateEntry) {
		err = model.ErrBonusAlreadyResolved
	}
	if err != nil {
		metrics.BonusPicksTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	result := "no_win"
	if res.BonusWin > 0 {
		result = "win"
		metrics.WinCreditsTotal.Add(float64(res.BonusWin))
	}
	metrics.BonusPicksTotal.WithLabelValues(result).Inc()

	log.Info().
		Str("user_id", req.UserID).
		Str("spin_id", req.SpinID).
		Ints("picks", req.Picks[:]).
		Int64("win", res.BonusWin).
		Msg("bonus pick")

	return res, nil
}
