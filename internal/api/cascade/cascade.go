package cascade

import (
	"encoding/json"
	"net/http"

	"github.com/develophasan/SlotyPi/internal/api"
	dto "github.com/develophasan/SlotyPi/internal/api/dto/cascade"
	"github.com/develophasan/SlotyPi/internal/converter"
	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/service"
	"github.com/develophasan/SlotyPi/pkg/req"
	"github.com/develophasan/SlotyPi/pkg/resp"
)

type HandlerDeps struct {
	Serv service.CascadeService
}

type Handler struct {
	serv service.CascadeService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserID(w, r)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		api.WriteError(w, r, model.ErrInvalidBet)
		return
	}
	bet, err := parseBet(payload.BetCredits)
	if err != nil {
		api.WriteError(w, r, model.ErrInvalidBet)
		return
	}

	result, err := h.serv.Spin(r.Context(), converter.ToCascadeSpin(userID, bet))
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

// parseBet ставка только целым числом JSON: 1.5, "100" и null - INVALID_BET
func parseBet(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, model.ErrInvalidBet
	}
	bet, err := json.Number(raw).Int64()
	if err != nil {
		return 0, model.ErrInvalidBet
	}
	return bet, nil
}

func (h *Handler) BonusPick(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserID(w, r)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.BonusPickRequest](r.Body)
	if err != nil {
		api.WriteError(w, r, model.ErrInvalidRequest)
		return
	}
	if len(payload.Picks) != 3 {
		api.WriteError(w, r, model.ErrInvalidPicks)
		return
	}

	result, err := h.serv.BonusPick(r.Context(), converter.ToBonusPick(userID, payload))
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBonusPickResponse(*result))
}
