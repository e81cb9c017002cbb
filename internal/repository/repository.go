package repository

import (
	"context"
	"errors"

	"github.com/develophasan/SlotyPi/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEntry нарушение уникальности (ref_type, ref_id, type) или pi_payment_id
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// LedgerRepository журнал операций. Записи только добавляются
type LedgerRepository interface {
	// LockUser сериализует изменения баланса пользователя до конца текущей транзакции
	LockUser(ctx context.Context, userID string) error
	Insert(ctx context.Context, entry *model.LedgerEntry) error
	SumByUser(ctx context.Context, userID string) (int64, error)
	FindByRef(ctx context.Context, userID, refType, refID string) ([]model.LedgerEntry, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.LedgerEntry, error)
}

type PaymentRepository interface {
	// Upsert создает или обновляет платеж по pi_payment_id. Владелец и связь с журналом не меняются
	Upsert(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	GetByPiPaymentID(ctx context.Context, piPaymentID string) (*model.Payment, error)
	LinkLedgerEntry(ctx context.Context, piPaymentID, entryID string) error
}

type UserRepository interface {
	UpsertByPiUID(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
