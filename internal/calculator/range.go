package calculator

import (
	"errors"
	"math"

	"StockScope/internal/model"
)

// Summary describes a fetched series at a glance.
type Summary struct {
	FirstClose float64
	LastClose  float64
	High       float64
	Low        float64
	Change     float64
	ChangePct  float64
	Rows       int
}

// PeriodRange scans every bar and returns the highest high and lowest low.
func PeriodRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// Summarize computes the period range and close-to-close change.
func Summarize(bars []model.OHLCV) (Summary, error) {
	high, low, err := PeriodRange(bars)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{
		FirstClose: bars[0].Close,
		LastClose:  bars[len(bars)-1].Close,
		High:       high,
		Low:        low,
		Rows:       len(bars),
	}
	s.Change = s.LastClose - s.FirstClose
	if s.FirstClose != 0 {
		s.ChangePct = s.Change / s.FirstClose * 100
	}
	return s, nil
}

// Position returns where the last close sits within the period range (0.0~1.0).
func Position(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
