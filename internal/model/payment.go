package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DirectionU2A платеж от пользователя приложению
const DirectionU2A = "user_to_app"

// Payment запись о платеже Pi. Связана с записью леджера, которая его зачислила
type Payment struct {
	PiPaymentID string
	UserID      string
	Direction   string
	Network     string
	AmountPi    decimal.Decimal
	Memo        string
	Metadata    json.RawMessage
	TxID        string

	DeveloperApproved   bool
	TransactionVerified bool
	DeveloperCompleted  bool
	Cancelled           bool
	UserCancelled       bool

	LedgerEntryID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
