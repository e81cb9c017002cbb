package account

import "time"

type BalanceResponse struct {
	BalanceCredits int64 `json:"balanceCredits"`
	CreditsPerPi   int64 `json:"creditsPerPi"`
}

type LedgerQuery struct {
	Limit  int `validate:"gte=0"`
	Offset int `validate:"gte=0"`
}

type LedgerEntry struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	AmountCredits int64          `json:"amountCredits"`
	RefType       string         `json:"refType"`
	RefID         string         `json:"refId"`
	Meta          map[string]any `json:"meta"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type LedgerResponse struct {
	Entries []LedgerEntry `json:"entries"`
}
