package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 256 << 10

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator общий экземпляр, кэширует разбор тегов
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Decode читает JSON тело и проверяет validate теги
func Decode[T any](body io.Reader) (T, error) {
	var payload T

	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, errors.New("empty body")
		}
		return payload, fmt.Errorf("decode body: %w", err)
	}

	if err := Validator().Struct(payload); err != nil {
		return payload, err
	}
	return payload, nil
}
