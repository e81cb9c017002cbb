package pi

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Me ответ GET /me
type Me struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
}

type PaymentStatus struct {
	DeveloperApproved   bool `json:"developer_approved"`
	TransactionVerified bool `json:"transaction_verified"`
	DeveloperCompleted  bool `json:"developer_completed"`
	Cancelled           bool `json:"cancelled"`
	UserCancelled       bool `json:"user_cancelled"`
}

type PaymentTransaction struct {
	TxID     string `json:"txid"`
	Verified bool   `json:"verified"`
	Link     string `json:"_link"`
}

// Payment PaymentDTO Pi Platform API
type Payment struct {
	Identifier  string              `json:"identifier"`
	UserUID     string              `json:"user_uid"`
	Amount      decimal.Decimal     `json:"amount"`
	Memo        string              `json:"memo"`
	Metadata    json.RawMessage     `json:"metadata"`
	FromAddress string              `json:"from_address"`
	ToAddress   string              `json:"to_address"`
	Direction   string              `json:"direction"`
	Network     string              `json:"network"`
	CreatedAt   string              `json:"created_at"`
	Status      PaymentStatus       `json:"status"`
	Transaction *PaymentTransaction `json:"transaction"`
}

// TxID txid транзакции, если она уже есть
func (p *Payment) TxID() string {
	if p.Transaction == nil {
		return ""
	}
	return p.Transaction.TxID
}
