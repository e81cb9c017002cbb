package model

import (
	"encoding/json"
	"time"
)

// EntryType тип записи в леджере
type EntryType string

const (
	EntryBet           EntryType = "BET"
	EntryPayout        EntryType = "PAYOUT"
	EntryBonusPayout   EntryType = "BONUS_PAYOUT"
	EntryDepositCredit EntryType = "DEPOSIT_CREDIT"
)

// Типы ссылок записей леджера
const (
	RefSpin      = "spin"
	RefBonusPick = "bonus_pick"
	RefPiPayment = "pi_payment"
)

// LedgerEntry неизменяемая запись леджера. Баланс пользователя - сумма AmountCredits всех его записей
type LedgerEntry struct {
	ID            string
	UserID        string
	Type          EntryType
	AmountCredits int64
	RefType       string
	RefID         string
	Metadata      json.RawMessage
	CreatedAt     time.Time
}

// HistoryEntry запись истории с разобранными метаданными
type HistoryEntry struct {
	ID            string
	Type          EntryType
	AmountCredits int64
	RefType       string
	RefID         string
	Metadata      map[string]any
	CreatedAt     time.Time
}

// CreditReason итог попытки зачислить внешний депозит
type CreditReason string

const (
	CreditOK             CreditReason = "CREDITED"
	CreditNotU2A         CreditReason = "NOT_U2A"
	CreditTxNotVerified  CreditReason = "TX_NOT_VERIFIED"
	CreditNotCompleted   CreditReason = "NOT_COMPLETED"
	CreditCancelled      CreditReason = "CANCELLED"
	CreditAlreadyDone    CreditReason = "ALREADY_CREDITED"
	CreditNonPositiveAmt CreditReason = "NON_POSITIVE_AMOUNT"
)

// CreditResult не ошибка, а обычный вариант результата: вызывающий ветвится по Reason
type CreditResult struct {
	Credited      bool
	Reason        CreditReason
	AmountCredits int64
	EntryID       string
}
