package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/pkg/token"
)

// Verify - проверяет токен Pi, заводит пользователя и выдает свой JWT
func (s *serv) Verify(ctx context.Context, piAccessToken string) (*model.AuthData, error) {
	piAccessToken = strings.TrimSpace(piAccessToken)
	if piAccessToken == "" {
		return nil, model.ErrInvalidRequest
	}

	me, err := s.pi.Me(ctx, piAccessToken)
	if err != nil {
		return nil, err
	}
	if me.UID == "" {
		return nil, model.ErrUnauthorized
	}

	user, err := s.userRepo.UpsertByPiUID(ctx, &model.User{
		PiUID:    me.UID,
		Username: me.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	accessToken, err := token.GenerateAccessToken(user.ID, s.jwtConfig.AccessTokenSecretKey(), s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	balance, err := s.ledger.GetBalance(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user verified")

	return &model.AuthData{
		User:           *user,
		BalanceCredits: balance,
		CreditsPerPi:   s.piConfig.CreditsPerPi(),
		AccessToken:    accessToken,
	}, nil
}
