package model

type CascadeSpin struct {
	UserID     string
	BetCredits int64
}

type CascadeSpinResult struct {
	SpinID         string
	BetCredits     int64
	WinCredits     int64
	BalanceCredits int64
	Game           GameResult
}

type BonusPick struct {
	UserID string
	SpinID string
	Picks  [3]int
}

type BonusPickResult struct {
	BonusWin       int64
	Matched        []string
	BalanceCredits int64
}
