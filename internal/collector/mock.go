package collector

import (
	"context"
	"sync"
	"time"

	"StockScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Responses are keyed by interval; Err, when set, is returned for every call.
type MockFetcher struct {
	Responses map[model.Interval][]model.OHLCV
	Err       error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records one Fetch invocation.
type MockCall struct {
	Symbol   string
	Start    time.Time
	End      time.Time
	Interval model.Interval
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(_ context.Context, symbol string, start, end time.Time, interval model.Interval) ([]model.OHLCV, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Symbol: symbol, Start: start, End: end, Interval: interval})
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Responses == nil {
		return generateMockBars(100, start, end, interval), nil
	}
	return m.Responses[interval], nil
}

// Calls returns a copy of the recorded invocations.
func (m *MockFetcher) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

func generateMockBars(basePrice float64, start, end time.Time, interval model.Interval) []model.OHLCV {
	step := 24 * time.Hour
	if interval == model.IntervalMinute {
		step = time.Minute
	}
	var bars []model.OHLCV
	i := 0
	for ts := start; ts.Before(end) && i < 2000; ts = ts.Add(step) {
		if interval == model.IntervalDaily {
			if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
		}
		p := basePrice * (1 + float64(i%40-20)*0.001)
		bars = append(bars, model.OHLCV{
			Time:   ts.UTC(),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
		i++
	}
	if len(bars) == 0 && interval == model.IntervalDaily {
		// Single-day closing windows are shorter than a daily step.
		bars = append(bars, model.OHLCV{Time: start.UTC(), Open: basePrice, High: basePrice, Low: basePrice, Close: basePrice, Volume: 1000000})
	}
	return bars
}
