// apperr — таксономия ошибок newsadmin и её отображение в HTTP.
//
// Сервисы и репозиторий оборачивают эти значения через fmt.Errorf("%s: %w", op, err),
// поэтому сравнивать нужно только через errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation — пустые обязательные поля или некорректные параметры запроса.
	ErrValidation = errors.New("validation error")
	// ErrNotFound — записи с таким id нет.
	ErrNotFound = errors.New("not found")
	// ErrAuth — credential отсутствует, битый или просрочен.
	ErrAuth = errors.New("unauthorized")
	// ErrForbidden — credential валиден, но роли не хватает. Это частный случай ErrAuth.
	ErrForbidden = fmt.Errorf("forbidden: %w", ErrAuth)
)

// HTTPStatus — код ответа для ошибки доменного слоя.
// Неизвестные ошибки превращаются в 500, детали наружу не уходят.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus — обратное отображение для HTTP-клиента.
// msg — текст ошибки из конверта ответа, может быть пустым.
func FromStatus(code int, msg string) error {
	var kind error
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		kind = ErrValidation
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusUnauthorized:
		kind = ErrAuth
	case http.StatusForbidden:
		kind = ErrForbidden
	default:
		if msg == "" {
			return fmt.Errorf("unexpected status %d", code)
		}
		return fmt.Errorf("unexpected status %d: %s", code, msg)
	}
	if msg == "" {
		return kind
	}
	return fmt.Errorf("%w: %s", kind, msg)
}
