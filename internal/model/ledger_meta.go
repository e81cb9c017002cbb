package model

// SpinMeta метаданные BET и PAYOUT. Бонусное поле хранится здесь, отдельного хранилища нет
type SpinMeta struct {
	BetCredits        int64      `json:"betCredits"`
	WinCredits        int64      `json:"winCredits"`
	Clusters          int        `json:"clusters"`
	CascadeSteps      int        `json:"cascadeSteps"`
	Multipliers       []int      `json:"multipliers,omitempty"`
	BonusTriggered    bool       `json:"bonusTriggered"`
	BonusBoard        BonusBoard `json:"bonusBoard,omitempty"`
	CascadeCapReached bool       `json:"cascadeCapReached,omitempty"`
}

type BonusMeta struct {
	SpinID   string   `json:"spinId"`
	Picks    [3]int   `json:"picks"`
	Matched  []string `json:"matched"`
	BonusWin int64    `json:"bonusWin"`
}

type DepositMeta struct {
	PiPaymentID  string `json:"piPaymentId"`
	AmountPi     string `json:"amountPi"`
	TxID         string `json:"txid,omitempty"`
	CreditsPerPi int64  `json:"creditsPerPi"`
}
