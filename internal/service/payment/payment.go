package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/develophasan/SlotyPi/internal/client/pi"
	"github.com/develophasan/SlotyPi/internal/metrics"
	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/repository"
)

// Approve - подтверждает платеж в Pi и сохраняет его за пользователем
func (s *serv) Approve(ctx context.Context, userID, paymentID string) error {
	user, err := s.user(ctx, userID)
	if err != nil {
		return err
	}

	dto, err := s.pi.ApprovePayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if err := checkOwner(dto, user); err != nil {
		return err
	}

	if _, err := s.paymentRepo.Upsert(ctx, paymentFromPi(dto, paymentID, userID)); err != nil {
		return err
	}

	log.Info().Str("user_id", userID).Str("payment_id", paymentID).Msg("payment approved")
	return nil
}

// Complete - передает txid в Pi и зачисляет депозит, если Pi подтверждает завершение
func (s *serv) Complete(ctx context.Context, userID, paymentID, txID string) (*model.CreditResult, error) {
	if _, err := s.pi.CompletePayment(ctx, paymentID, txID); err != nil {
		return nil, err
	}
	return s.CreditDepositIfComplete(ctx, userID, paymentID)
}

// CreditDepositIfComplete - зачисляет кредиты по состоянию платежа из Pi API.
// Проверки по порядку: направление, отмена, верификация транзакции, завершение, сумма
func (s *serv) CreditDepositIfComplete(ctx context.Context, userID, paymentID string) (*model.CreditResult, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto, err := s.pi.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(dto, user); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.Upsert(ctx, paymentFromPi(dto, paymentID, userID))
	if err != nil {
		return nil, err
	}

	res, err := s.credit(ctx, userID, payment)
	if err != nil {
		return nil, err
	}

	metrics.DepositsTotal.WithLabelValues(string(res.Reason)).Inc()
	log.Info().
		Str("user_id", userID).
		Str("payment_id", paymentID).
		Str("reason", string(res.Reason)).
		Int64("credits", res.AmountCredits).
		Msg("deposit")

	return res, nil
}

func (s *serv) credit(ctx context.Context, userID string, p *model.Payment) (*model.CreditResult, error) {
	switch {
	case p.Direction != model.DirectionU2A:
		return &model.CreditResult{Reason: model.CreditNotU2A}, nil
	case p.Cancelled || p.UserCancelled:
		return &model.CreditResult{Reason: model.CreditCancelled}, nil
	case !p.TransactionVerified:
		return &model.CreditResult{Reason: model.CreditTxNotVerified}, nil
	case !p.DeveloperCompleted:
		return &model.CreditResult{Reason: model.CreditNotCompleted}, nil
	}

	credits := CreditsForPi(p.AmountPi, s.piConfig.CreditsPerPi())
	if credits <= 0 {
		return &model.CreditResult{Reason: model.CreditNonPositiveAmt}, nil
	}

	var res *model.CreditResult
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.ledger.CreditExternalDeposit(txCtx, userID, p.PiPaymentID, credits, model.DepositMeta{
			AmountPi:     p.AmountPi.String(),
			TxID:         p.TxID,
			CreditsPerPi: s.piConfig.CreditsPerPi(),
		})
		if err != nil {
			return err
		}
		if !res.Credited {
			return nil
		}
		return s.paymentRepo.LinkLedgerEntry(txCtx, p.PiPaymentID, res.EntryID)
	})
	// параллельное зачисление успело закоммитить ту же ссылку
	if errors.Is(err, repository.ErrDuplicateEntry) {
		return &model.CreditResult{Reason: model.CreditAlreadyDone}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("credit payment %s: %w", p.PiPaymentID, err)
	}
	return res, nil
}

// CreditsForPi - floor(amountPi * creditsPerPi) без потерь на float
func CreditsForPi(amountPi decimal.Decimal, creditsPerPi int64) int64 {
	return amountPi.Mul(decimal.NewFromInt(creditsPerPi)).Floor().IntPart()
}

// user - владелец JWT должен существовать
func (s *serv) user(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.ErrUnauthorized
	}
	return user, err
}

func checkOwner(dto *pi.Payment, user *model.User) error {
	if dto.UserUID != "" && dto.UserUID != user.PiUID {
		log.Warn().Str("payment_id", dto.Identifier).Str("user_id", user.ID).Msg("payment belongs to another pi user")
		return model.ErrInvalidPayment
	}
	return nil
}

func paymentFromPi(dto *pi.Payment, paymentID, userID string) *model.Payment {
	if dto.Identifier != "" {
		paymentID = dto.Identifier
	}
	return &model.Payment{
		PiPaymentID:         paymentID,
		UserID:              userID,
		Direction:           dto.Direction,
		Network:             dto.Network,
		AmountPi:            dto.Amount,
		Memo:                dto.Memo,
		Metadata:            dto.Metadata,
		TxID:                dto.TxID(),
		DeveloperApproved:   dto.Status.DeveloperApproved,
		TransactionVerified: dto.Status.TransactionVerified,
		DeveloperCompleted:  dto.Status.DeveloperCompleted,
		Cancelled:           dto.Status.Cancelled,
		UserCancelled:       dto.Status.UserCancelled,
	}
}
