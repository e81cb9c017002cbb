package auth

type VerifyRequest struct {
	AccessToken string `json:"accessToken" validate:"required,min=10"` // Токен Pi из Pi.authenticate
}

type User struct {
	ID       string `json:"id"`
	PiUID    string `json:"piUid"`
	Username string `json:"username"`
}

type VerifyResponse struct {
	User           User   `json:"user"`
	BalanceCredits int64  `json:"balanceCredits"`
	CreditsPerPi   int64  `json:"creditsPerPi"`
	Token          string `json:"token"` // JWT для Authorization: Bearer
}
