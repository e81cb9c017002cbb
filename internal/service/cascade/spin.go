package cascade

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/develophasan/SlotyPi/internal/metrics"
	"github.com/develophasan/SlotyPi/internal/model"
)

// Spin - ставка, розыгрыш и выплата одной транзакцией под блокировкой пользователя.
// Поле разыгрывается до записи BET: бонусное поле хранится в ее метаданных
func (s *serv) Spin(ctx context.Context, req model.CascadeSpin) (*model.CascadeSpinResult, error) {
	if err := s.ledger.ValidateBet(req.BetCredits); err != nil {
		metrics.SpinsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	var res *model.CascadeSpinResult
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		game := s.engine.PlayGame(req.BetCredits)
		meta := spinMeta(game)

		spinID, err := s.ledger.RecordSpin(txCtx, req.UserID, req.BetCredits, meta)
		if err != nil {
			return err
		}

		if game.TotalWin > 0 {
			if err := s.ledger.RecordPayout(txCtx, req.UserID, spinID, game.TotalWin, meta); err != nil {
				return err
			}
		}

		balance, err := s.ledger.GetBalance(txCtx, req.UserID)
		if err != nil {
			return err
		}

		res = &model.CascadeSpinResult{
			SpinID:         spinID,
			BetCredits:     req.BetCredits,
			WinCredits:     game.TotalWin,
			BalanceCredits: balance,
			Game:           game,
		}
		return nil
	})
	if err != nil {
		metrics.SpinsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	metrics.SpinsTotal.WithLabelValues("ok").Inc()
	metrics.BetCreditsTotal.Add(float64(res.BetCredits))
	metrics.WinCreditsTotal.Add(float64(res.WinCredits))
	metrics.CascadeSteps.Observe(float64(len(res.Game.CascadeSteps)))
	if res.Game.BonusTriggered {
		metrics.BonusTriggered.Inc()
	}
	if res.Game.CapReached {
		metrics.CascadeCapReached.Inc()
		log.Warn().
			Str("user_id", req.UserID).
			Str("spin_id", res.SpinID).
			Int("cascade_steps", len(res.Game.CascadeSteps)).
			Msg("cascade stopped at iteration cap")
	}

	log.Info().
		Str("user_id", req.UserID).
		Str("spin_id", res.SpinID).
		Int64("bet", res.BetCredits).
		Int64("win", res.WinCredits).
		Int64("balance", res.BalanceCredits).
		Bool("bonus", res.Game.BonusTriggered).
		Msg("spin")

	return res, nil
}

func spinMeta(g model.GameResult) model.SpinMeta {
	return model.SpinMeta{
		WinCredits:        g.TotalWin,
		Clusters:          len(g.Clusters),
		CascadeSteps:      len(g.CascadeSteps),
		Multipliers:       g.Multipliers,
		BonusTriggered:    g.BonusTriggered,
		BonusBoard:        g.BonusBoard,
		CascadeCapReached: g.CapReached,
	}
}
