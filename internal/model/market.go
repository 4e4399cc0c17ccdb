package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Interval is the bar size requested from a provider.
type Interval string

const (
	IntervalMinute Interval = "1m"
	IntervalDaily  Interval = "1d"
)

// PriceSeries holds the bars returned for one symbol.
type PriceSeries struct {
	Symbol    string
	Interval  Interval
	Bars      []OHLCV
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (p *PriceSeries) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Bars)
}

// Closes extracts closing prices in bar order.
func (p *PriceSeries) Closes() []float64 {
	if p == nil {
		return nil
	}
	closes := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		closes[i] = b.Close
	}
	return closes
}
