package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/develophasan/SlotyPi/internal/config"
	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/repository"
	"github.com/develophasan/SlotyPi/internal/service"
)

const (
	defaultHistoryLimit = 50
	spinIDPrefix        = "spin_"
	bonusRefSuffix      = "_bonus"
)

type serv struct {
	ledgerRepo repository.LedgerRepository
	txManager  trm.Manager
	gameConfig config.GameConfig
	now        func() time.Time
}

func NewLedgerService(cfg config.GameConfig, repo repository.LedgerRepository, txManager trm.Manager) service.LedgerService {
	return &serv{
		ledgerRepo: repo,
		txManager:  txManager,
		gameConfig: cfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func newID(at time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(at), entropy).String()
}

// GetBalance - сумма всех записей пользователя
func (s *serv) GetBalance(ctx context.Context, userID string) (int64, error) {
	return s.ledgerRepo.SumByUser(ctx, userID)
}

func (s *serv) ValidateBet(bet int64) error {
	if bet <= 0 {
		return model.ErrInvalidBet
	}
	if bet > s.gameConfig.MaxBetCredits() {
		return model.ErrBetTooLarge
	}
	return nil
}

// RecordSpin - списывает ставку одной записью BET под блокировкой пользователя.
// Возвращает новый spinID
func (s *serv) RecordSpin(ctx context.Context, userID string, bet int64, meta model.SpinMeta) (string, error) {
	if err := s.ValidateBet(bet); err != nil {
		return "", err
	}

	var spinID string
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.ledgerRepo.LockUser(txCtx, userID); err != nil {
			return err
		}

		balance, err := s.ledgerRepo.SumByUser(txCtx, userID)
		if err != nil {
			return err
		}
		if balance < bet {
			return model.ErrInsufficientBalance
		}

		now := s.now()
		spinID = spinIDPrefix + newID(now)
		meta.BetCredits = bet
		return s.insert(txCtx, userID, model.EntryBet, -bet, model.RefSpin, spinID, meta, now)
	})
	if err != nil {
		return "", err
	}
	return spinID, nil
}

// RecordPayout - выигрыш спина отдельной записью PAYOUT с той же ссылкой
func (s *serv) RecordPayout(ctx context.Context, userID, spinID string, win int64, meta model.SpinMeta) error {
	if win <= 0 {
		return fmt.Errorf("payout must be positive, got %d", win)
	}
	meta.WinCredits = win
	return s.insert(ctx, userID, model.EntryPayout, win, model.RefSpin, spinID, meta, s.now())
}

// RecordBonusPayout - итог бонусного раунда. Пишется и при нулевом выигрыше, так поле разыгрывается один раз
func (s *serv) RecordBonusPayout(ctx context.Context, userID, spinID string, win int64, meta model.BonusMeta) error {
	if win < 0 {
		return fmt.Errorf("bonus payout must not be negative, got %d", win)
	}
	meta.SpinID = spinID
	meta.BonusWin = win

	err := s.insert(ctx, userID, model.EntryBonusPayout, win, model.RefBonusPick, spinID+bonusRefSuffix, meta, s.now())
	if errors.Is(err, repository.ErrDuplicateEntry) {
		return model.ErrBonusAlreadyResolved
	}
	return err
}

// FindBonusBoard - бонусное поле из метаданных спина.
// Блокировка пользователя держится до конца транзакции вызывающего
func (s *serv) FindBonusBoard(ctx context.Context, userID, spinID string) (model.BonusBoard, error) {
	var board model.BonusBoard
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.ledgerRepo.LockUser(txCtx, userID); err != nil {
			return err
		}

		var err error
		board, err = s.findBonusBoard(txCtx, userID, spinID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

func (s *serv) findBonusBoard(ctx context.Context, userID, spinID string) (model.BonusBoard, error) {
	entries, err := s.ledgerRepo.FindByRef(ctx, userID, model.RefSpin, spinID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, model.ErrSpinNotFound
	}

	var board model.BonusBoard
	for _, e := range entries {
		if e.Type != model.EntryBet && e.Type != model.EntryPayout {
			continue
		}
		var meta model.SpinMeta
		if err := json.Unmarshal(e.Metadata, &meta); err != nil {
			log.Warn().Err(err).Str("entry_id", e.ID).Msg("ledger: bad spin metadata")
			continue
		}
		if len(meta.BonusBoard) > 0 {
			board = meta.BonusBoard
			break
		}
	}
	if board == nil {
		return nil, model.ErrNoBonusBoard
	}

	resolved, err := s.ledgerRepo.FindByRef(ctx, userID, model.RefBonusPick, spinID+bonusRefSuffix)
	if err != nil {
		return nil, err
	}
	if len(resolved) > 0 {
		return nil, model.ErrBonusAlreadyResolved
	}

	return board, nil
}

// CreditExternalDeposit - идемпотентное зачисление депозита. Причины отказа - значения, не ошибки
func (s *serv) CreditExternalDeposit(ctx context.Context, userID, paymentID string, amount int64, meta model.DepositMeta) (*model.CreditResult, error) {
	if amount <= 0 {
		return &model.CreditResult{Reason: model.CreditNonPositiveAmt}, nil
	}

	var res *model.CreditResult
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.ledgerRepo.LockUser(txCtx, userID); err != nil {
			return err
		}

		existing, err := s.ledgerRepo.FindByRef(txCtx, userID, model.RefPiPayment, paymentID)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if e.Type == model.EntryDepositCredit {
				res = &model.CreditResult{Reason: model.CreditAlreadyDone, AmountCredits: e.AmountCredits, EntryID: e.ID}
				return nil
			}
		}

		now := s.now()
		entryID := newID(now)
		meta.PiPaymentID = paymentID
		err = s.insertWithID(txCtx, entryID, userID, model.EntryDepositCredit, amount, model.RefPiPayment, paymentID, meta, now)
		if errors.Is(err, repository.ErrDuplicateEntry) {
			res = &model.CreditResult{Reason: model.CreditAlreadyDone}
			return nil
		}
		if err != nil {
			return err
		}

		res = &model.CreditResult{Credited: true, Reason: model.CreditOK, AmountCredits: amount, EntryID: entryID}
		return nil
	})
	// конфликт уникальной ссылки на commit
	if errors.Is(err, repository.ErrDuplicateEntry) {
		return &model.CreditResult{Reason: model.CreditAlreadyDone}, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetLedgerHistory - записи от новых к старым с разобранными метаданными
func (s *serv) GetLedgerHistory(ctx context.Context, userID string, limit, offset int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if maxLimit := s.gameConfig.HistoryMaxLimit(); limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := s.ledgerRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	history := make([]model.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		h := model.HistoryEntry{
			ID:            e.ID,
			Type:          e.Type,
			AmountCredits: e.AmountCredits,
			RefType:       e.RefType,
			RefID:         e.RefID,
			CreatedAt:     e.CreatedAt,
		}
		if len(e.Metadata) > 0 {
			if err := json.Unmarshal(e.Metadata, &h.Metadata); err != nil {
				log.Warn().Err(err).Str("entry_id", e.ID).Msg("ledger: bad metadata in history")
			}
		}
		history = append(history, h)
	}
	return history, nil
}

func (s *serv) insert(ctx context.Context, userID string, typ model.EntryType, amount int64, refType, refID string, meta any, at time.Time) error {
	return s.insertWithID(ctx, newID(at), userID, typ, amount, refType, refID, meta, at)
}

func (s *serv) insertWithID(ctx context.Context, id, userID string, typ model.EntryType, amount int64, refType, refID string, meta any, at time.Time) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal %s metadata: %w", typ, err)
	}

	return s.ledgerRepo.Insert(ctx, &model.LedgerEntry{
		ID:            id,
		UserID:        userID,
		Type:          typ,
		AmountCredits: amount,
		RefType:       refType,
		RefID:         refID,
		Metadata:      raw,
		CreatedAt:     at,
	})
}
