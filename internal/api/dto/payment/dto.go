package payment

type CompleteRequest struct {
	TxID string `json:"txid" validate:"required,min=5"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type CreditResult struct {
	Credited      bool   `json:"credited"`
	Reason        string `json:"reason"`
	AmountCredits int64  `json:"amountCredits,omitempty"`
	EntryID       string `json:"entryId,omitempty"`
}

type CompleteResponse struct {
	OK             bool         `json:"ok"`
	Result         CreditResult `json:"result"`
	BalanceCredits int64        `json:"balanceCredits"`
	CreditsPerPi   int64        `json:"creditsPerPi"`
}
