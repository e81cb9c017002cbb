package model

// Error бизнес-ошибка с кодом, который отдается наружу
type Error struct {
	Code string
}

func (e *Error) Error() string {
	return e.Code
}

var (
	// Ошибки валидации входа, до любых изменений леджера
	ErrInvalidBet     = &Error{Code: "INVALID_BET"}
	ErrBetTooLarge    = &Error{Code: "BET_TOO_LARGE"}
	ErrInvalidPicks   = &Error{Code: "INVALID_PICKS"}
	ErrInvalidRequest = &Error{Code: "INVALID_REQUEST"}
	ErrInvalidPayment = &Error{Code: "INVALID_PAYMENT"}
	ErrUnauthorized   = &Error{Code: "UNAUTHORIZED"}
	ErrPiUnavailable  = &Error{Code: "PI_API_ERROR"}

	// Бизнес-правила, проверяются внутри транзакции
	ErrInsufficientBalance  = &Error{Code: "INSUFFICIENT_BALANCE"}
	ErrSpinNotFound         = &Error{Code: "SPIN_NOT_FOUND"}
	ErrNoBonusBoard         = &Error{Code: "NO_BONUS_BOARD"}
	ErrBonusAlreadyResolved = &Error{Code: "BONUS_ALREADY_RESOLVED"}
)
