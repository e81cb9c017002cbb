package service

import (
	"context"

	"github.com/develophasan/SlotyPi/internal/model"
)

// LedgerService журнал и баланс. Все изменения баланса пользователя сериализуются его блокировкой
type LedgerService interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	ValidateBet(bet int64) error
	RecordSpin(ctx context.Context, userID string, bet int64, meta model.SpinMeta) (spinID string, err error)
	RecordPayout(ctx context.Context, userID, spinID string, win int64, meta model.SpinMeta) error
	RecordBonusPayout(ctx context.Context, userID, spinID string, win int64, meta model.BonusMeta) error
	FindBonusBoard(ctx context.Context, userID, spinID string) (model.BonusBoard, error)
	CreditExternalDeposit(ctx context.Context, userID, paymentID string, amount int64, meta model.DepositMeta) (*model.CreditResult, error)
	GetLedgerHistory(ctx context.Context, userID string, limit, offset int) ([]model.HistoryEntry, error)
}

type CascadeService interface {
	Spin(ctx context.Context, req model.CascadeSpin) (*model.CascadeSpinResult, error)
	BonusPick(ctx context.Context, req model.BonusPick) (*model.BonusPickResult, error)
}

type PaymentService interface {
	Approve(ctx context.Context, userID, paymentID string) error
	Complete(ctx context.Context, userID, paymentID, txID string) (*model.CreditResult, error)
	CreditDepositIfComplete(ctx context.Context, userID, paymentID string) (*model.CreditResult, error)
}

type AuthService interface {
	Verify(ctx context.Context, piAccessToken string) (*model.AuthData, error)
}
