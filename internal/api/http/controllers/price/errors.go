package price

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"finch/internal/domain"
)

// StatusFor отображает ошибку сервиса в HTTP-статус. Неизвестные ошибки — 500.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidUpstreamResponse):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrUnknownAsset):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrStorage):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage — текст ошибки для клиента. Детали драйверов и апстрима наружу не отдаются.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return "price provider rate limit exceeded"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "price provider unavailable"
	case errors.Is(err, domain.ErrInvalidUpstreamResponse):
		return "invalid response from price provider"
	case errors.Is(err, domain.ErrUnknownAsset):
		return "asset not found"
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "storage unavailable"
	case errors.Is(err, domain.ErrStorage):
		return "storage error"
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	default:
		return "internal server error"
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTime разбирает ISO8601. Без смещения время считается UTC.
// "+" в query без экранирования приходит пробелом, такой вариант тоже принимается.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	candidates := []string{s}
	if i := strings.LastIndex(s, " "); i > 0 && strings.Contains(s, "T") {
		candidates = append(candidates, s[:i]+"+"+s[i+1:])
	}
	for _, c := range candidates {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, errors.New("invalid ISO8601 datetime: " + s)
}
