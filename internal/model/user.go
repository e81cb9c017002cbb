package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID        string
	PiUID     string
	Username  string
	CreatedAt time.Time
}

type UserClaims struct {
	jwt.RegisteredClaims
}

// AuthData результат верификации токена Pi
type AuthData struct {
	User           User
	BalanceCredits int64
	CreditsPerPi   int64
	AccessToken    string
}
