package auth

import (
	"net/http"

	"github.com/develophasan/SlotyPi/internal/api"
	dto "github.com/develophasan/SlotyPi/internal/api/dto/auth"
	"github.com/develophasan/SlotyPi/internal/converter"
	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/service"
	"github.com/develophasan/SlotyPi/pkg/req"
	"github.com/develophasan/SlotyPi/pkg/resp"
)

type HandlerDeps struct {
	Serv service.AuthService
}

type Handler struct {
	serv service.AuthService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Verify проверяет токен Pi и возвращает пользователя, баланс и JWT
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.VerifyRequest](r.Body)
	if err != nil {
		api.WriteError(w, r, model.ErrInvalidRequest)
		return
	}

	data, err := h.serv.Verify(r.Context(), requestBody.AccessToken)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToVerifyResponse(*data))
}
