package api

import (
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/develophasan/SlotyPi/internal/middleware"
	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/pkg/resp"
)

var statusByCode = map[string]int{
	model.ErrInvalidBet.Code:           http.StatusBadRequest,
	model.ErrBetTooLarge.Code:          http.StatusBadRequest,
	model.ErrInvalidPicks.Code:         http.StatusBadRequest,
	model.ErrInvalidRequest.Code:       http.StatusBadRequest,
	model.ErrInvalidPayment.Code:       http.StatusBadRequest,
	model.ErrUnauthorized.Code:         http.StatusUnauthorized,
	model.ErrPiUnavailable.Code:        http.StatusBadGateway,
	model.ErrInsufficientBalance.Code:  http.StatusConflict,
	model.ErrBonusAlreadyResolved.Code: http.StatusConflict,
	model.ErrSpinNotFound.Code:         http.StatusNotFound,
	model.ErrNoBonusBoard.Code:         http.StatusNotFound,
}

// WriteError бизнес-ошибки отдаем кодом, остальное - 500 с записью в лог
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var bizErr *model.Error
	if errors.As(err, &bizErr) {
		status, ok := statusByCode[bizErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		if status == http.StatusBadGateway {
			log.Warn().Err(err).Str("request_id", chimw.GetReqID(r.Context())).Msg("pi platform error")
		}
		resp.WriteError(w, status, bizErr.Code)
		return
	}

	log.Error().
		Err(err).
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("path", r.URL.Path).
		Msg("request failed")
	resp.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
}

// UserID id пользователя из JWT. Без него хендлер уже ответил 401
func UserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, model.ErrUnauthorized.Code)
	}
	return userID, ok
}
