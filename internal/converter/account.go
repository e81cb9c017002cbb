package converter

import (
	"github.com/develophasan/SlotyPi/internal/api/dto/account"
	"github.com/develophasan/SlotyPi/internal/api/dto/auth"
	"github.com/develophasan/SlotyPi/internal/api/dto/payment"
	"github.com/develophasan/SlotyPi/internal/model"
)

func ToVerifyResponse(data model.AuthData) auth.VerifyResponse {
	return auth.VerifyResponse{
		User: auth.User{
			ID:       data.User.ID,
			PiUID:    data.User.PiUID,
			Username: data.User.Username,
		},
		BalanceCredits: data.BalanceCredits,
		CreditsPerPi:   data.CreditsPerPi,
		Token:          data.AccessToken,
	}
}

func ToLedgerResponse(entries []model.HistoryEntry) account.LedgerResponse {
	out := make([]account.LedgerEntry, len(entries))
	for i, e := range entries {
		out[i] = account.LedgerEntry{
			ID:            e.ID,
			Type:          string(e.Type),
			AmountCredits: e.AmountCredits,
			RefType:       e.RefType,
			RefID:         e.RefID,
			Meta:          e.Metadata,
			CreatedAt:     e.CreatedAt,
		}
	}
	return account.LedgerResponse{Entries: out}
}

func ToCompleteResponse(res model.CreditResult, balance, creditsPerPi int64) payment.CompleteResponse {
	return payment.CompleteResponse{
		OK: true,
		Result: payment.CreditResult{
			Credited:      res.Credited,
			Reason:        string(res.Reason),
			AmountCredits: res.AmountCredits,
			EntryID:       res.EntryID,
		},
		BalanceCredits: balance,
		CreditsPerPi:   creditsPerPi,
	}
}
