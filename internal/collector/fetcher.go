package collector

import (
	"context"
	"time"

	"StockScope/internal/model"
)

// Fetcher defines the interface for fetching market data.
// The end bound is exclusive for daily requests.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time, interval model.Interval) ([]model.OHLCV, error)
	Name() string
}
