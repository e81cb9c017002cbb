package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/develophasan/SlotyPi/internal/config"
	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/pkg/resp"
	"github.com/develophasan/SlotyPi/pkg/token"
)

type ctxKey struct{}

// Auth пропускает запрос только с валидным Bearer JWT и кладет id пользователя в контекст
func Auth(cfg config.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				resp.WriteError(w, http.StatusUnauthorized, model.ErrUnauthorized.Code)
				return
			}

			claims, err := token.VerifyToken(raw, cfg.AccessTokenSecretKey())
			if err != nil {
				log.Debug().Err(err).Msg("rejected access token")
				resp.WriteError(w, http.StatusUnauthorized, model.ErrUnauthorized.Code)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.Subject)))
		})
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

func bearer(header string) (string, bool) {
	scheme, value, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
