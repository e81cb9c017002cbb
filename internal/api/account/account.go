package account

import (
	"net/http"
	"strconv"

	"github.com/develophasan/SlotyPi/internal/api"
	dto "github.com/develophasan/SlotyPi/internal/api/dto/account"
	"github.com/develophasan/SlotyPi/internal/converter"
	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/service"
	"github.com/develophasan/SlotyPi/pkg/req"
	"github.com/develophasan/SlotyPi/pkg/resp"
)

type HandlerDeps struct {
	Ledger       service.LedgerService
	CreditsPerPi int64
}

type Handler struct {
	ledger       service.LedgerService
	creditsPerPi int64
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{ledger: deps.Ledger, creditsPerPi: deps.CreditsPerPi}
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserID(w, r)
	if !ok {
		return
	}

	balance, err := h.ledger.GetBalance(r.Context(), userID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.BalanceResponse{
		BalanceCredits: balance,
		CreditsPerPi:   h.creditsPerPi,
	})
}

// Ledger история записей, новые первыми. ?limit=&offset=
func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserID(w, r)
	if !ok {
		return
	}

	query, err := parseLedgerQuery(r)
	if err != nil {
		api.WriteError(w, r, model.ErrInvalidRequest)
		return
	}

	entries, err := h.ledger.GetLedgerHistory(r.Context(), userID, query.Limit, query.Offset)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLedgerResponse(entries))
}

func parseLedgerQuery(r *http.Request) (dto.LedgerQuery, error) {
	var q dto.LedgerQuery
	var err error

	values := r.URL.Query()
	if v := values.Get("limit"); v != "" {
		if q.Limit, err = strconv.Atoi(v); err != nil {
			return q, err
		}
	}
	if v := values.Get("offset"); v != "" {
		if q.Offset, err = strconv.Atoi(v); err != nil {
			return q, err
		}
	}

	return q, req.Validator().Struct(q)
}
