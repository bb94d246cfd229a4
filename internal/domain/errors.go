package domain

import (
	"errors"
	"fmt"
)

// Таксономия ошибок сервиса цен. Каждая ошибка один к одному отображается в HTTP-статус на границе API.
var (
	// ErrRateLimitExceeded — апстрим ограничил нас (429).
	ErrRateLimitExceeded = errors.New("upstream rate limit exceeded")
	// ErrUpstreamUnavailable — сеть, таймаут или не-2xx от апстрима.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrInvalidUpstreamResponse — тело ответа не разобрать.
	ErrInvalidUpstreamResponse = errors.New("invalid upstream response")
	// ErrUnknownAsset — в ответе нет запрошенного актива.
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrStorage — ошибка чтения или записи в хранилище.
	ErrStorage = errors.New("storage error")
	// ErrStorageUnavailable — хранилище недоступно (соединение), можно повторить.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrValidation — некорректный ввод клиента.
	ErrValidation = errors.New("validation error")
)

// DefaultRetryAfter — подсказка Retry-After, если апстрим её не прислал.
const DefaultRetryAfter = "60"

// RateLimitError — 429 от апстрима с необязательной подсказкой Retry-After.
type RateLimitError struct {
	RetryAfter string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter == "" {
		return ErrRateLimitExceeded.Error()
	}
	return fmt.Sprintf("%s (retry after %s)", ErrRateLimitExceeded, e.RetryAfter)
}

// Is позволяет errors.Is(err, ErrRateLimitExceeded).
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimitExceeded
}

// RetryAfterHint возвращает подсказку Retry-After из цепочки ошибок или DefaultRetryAfter.
func RetryAfterHint(err error) string {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter != "" {
		return rl.RetryAfter
	}
	return DefaultRetryAfter
}

// IsRetryable — относится ли ошибка к повторяемому классу.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable) ||
		errors.Is(err, ErrUpstreamUnavailable) ||
		errors.Is(err, ErrRateLimitExceeded)
}
