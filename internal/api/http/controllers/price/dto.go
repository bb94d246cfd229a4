package price

import "time"

// CurrentPriceResponse — ответ GET /bitcoin/current-price.
type CurrentPriceResponse struct {
	Price float64 `json:"price"`
}

// PriceItem — одно наблюдение в истории.
type PriceItem struct {
	PriceUSD  float64   `json:"price_usd"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// HistoryResponse — ответ GET /bitcoin/price-history.
type HistoryResponse struct {
	Prices []PriceItem `json:"prices"`
}

// HistoryQuery — параметры запроса истории (ISO8601, со смещением или без; без смещения — UTC).
type HistoryQuery struct {
	StartTime string `form:"start_time" binding:"required"`
	EndTime   string `form:"end_time" binding:"required"`
}

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}
