package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	"StockScope/internal/model"
)

// FinanceGoFetcher implements Fetcher on top of the finance-go chart client.
// The client only accepts whole dates, so bars are requested for the covering
// days and trimmed to the requested window afterwards.
type FinanceGoFetcher struct{}

// NewFinanceGoFetcher creates a finance-go backed fetcher.
func NewFinanceGoFetcher() *FinanceGoFetcher { return &FinanceGoFetcher{} }

func (f *FinanceGoFetcher) Name() string { return "financego" }

func (f *FinanceGoFetcher) Fetch(ctx context.Context, symbol string, start, end time.Time, interval model.Interval) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &chart.Params{
		Symbol:   symbol,
		Interval: toFinanceInterval(interval),
		Start:    toDatetime(start.AddDate(0, 0, -1)),
		End:      toDatetime(end.AddDate(0, 0, 1)),
	}

	iter := chart.Get(params)
	var bars []model.OHLCV
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   decimalToFloat(b.Open),
			High:   decimalToFloat(b.High),
			Low:    decimalToFloat(b.Low),
			Close:  decimalToFloat(b.Close),
			Volume: float64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("finance-go chart %s: %w", symbol, err)
	}

	bars = trimToWindow(bars, start, end, interval)
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// trimToWindow keeps minute bars inside [start, end) by timestamp and daily
// bars whose trading date falls inside the window.
func trimToWindow(bars []model.OHLCV, start, end time.Time, interval model.Interval) []model.OHLCV {
	out := make([]model.OHLCV, 0, len(bars))
	if interval == model.IntervalMinute {
		for _, b := range bars {
			if !b.Time.Before(start) && b.Time.Before(end) {
				out = append(out, b)
			}
		}
		return out
	}

	loc := start.Location()
	first := model.DateOf(start)
	last := model.DateOf(end.In(loc))
	if !end.Equal(time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())) {
		// end falls inside a day (e.g. a closing window), so that day counts.
		last = last.AddDate(0, 0, 1)
	}
	for _, b := range bars {
		day := model.DateOf(b.Time.In(loc))
		if !day.Before(first) && day.Before(last) {
			out = append(out, b)
		}
	}
	return out
}

func toFinanceInterval(i model.Interval) datetime.Interval {
	if i == model.IntervalMinute {
		return datetime.OneMin
	}
	return datetime.OneDay
}

func toDatetime(t time.Time) *datetime.Datetime {
	return &datetime.Datetime{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
	}
}

func decimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
