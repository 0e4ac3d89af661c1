package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")

	// Одноразовые токены бота
	ErrTokenNotFound = errors.New("auth token not found")
	ErrTokenUsed     = errors.New("auth token already used")
	ErrTokenExpired  = errors.New("auth token expired")

	// initData Telegram Web App
	ErrInitDataInvalid = errors.New("telegram init data is invalid")
	ErrInitDataExpired = errors.New("telegram init data is expired")
)

// Validationf оборачивает ErrValidation сообщением для клиента
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsAuthError - ошибки, после которых клиент должен авторизоваться заново
func IsAuthError(err error) bool {
	return errors.Is(err, ErrTokenNotFound) ||
		errors.Is(err, ErrTokenUsed) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrInitDataInvalid) ||
		errors.Is(err, ErrInitDataExpired)
}
