package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/develophasan/SlotyPi/internal/api"
	dto "github.com/develophasan/SlotyPi/internal/api/dto/payment"
	"github.com/develophasan/SlotyPi/internal/converter"
	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/service"
	"github.com/develophasan/SlotyPi/pkg/req"
	"github.com/develophasan/SlotyPi/pkg/resp"
)

const minPaymentIDLen = 5

type HandlerDeps struct {
	Serv         service.PaymentService
	Ledger       service.LedgerService
	CreditsPerPi int64
}

type Handler struct {
	serv         service.PaymentService
	ledger       service.LedgerService
	creditsPerPi int64
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, ledger: deps.Ledger, creditsPerPi: deps.CreditsPerPi}
}

// Approve серверное подтверждение U2A платежа (onReadyForServerApproval)
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserID(w, r)
	if !ok {
		return
	}
	paymentID, ok := pathPaymentID(w, r)
	if !ok {
		return
	}

	if err := h.serv.Approve(r.Context(), userID, paymentID); err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.OKResponse{OK: true})
}

// Complete завершение платежа и зачисление кредитов (onReadyForServerCompletion)
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.UserID(w, r)
	if !ok {
		return
	}
	paymentID, ok := pathPaymentID(w, r)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.CompleteRequest](r.Body)
	if err != nil {
		api.WriteError(w, r, model.ErrInvalidRequest)
		return
	}

	result, err := h.serv.Complete(r.Context(), userID, paymentID, payload.TxID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	balance, err := h.ledger.GetBalance(r.Context(), userID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCompleteResponse(*result, balance, h.creditsPerPi))
}

func pathPaymentID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "paymentId")
	if len(id) < minPaymentIDLen {
		api.WriteError(w, r, model.ErrInvalidRequest)
		return "", false
	}
	return id, true
}
