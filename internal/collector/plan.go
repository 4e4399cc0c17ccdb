package collector

import (
	"errors"
	"fmt"
	"time"

	"StockScope/internal/model"
)

// ErrIntradayMultiDay rejects minute-level requests spanning more than one date.
var ErrIntradayMultiDay = errors.New("intraday data requires a single date")

// Request is one provider call.
type Request struct {
	Start    time.Time
	End      time.Time
	Interval model.Interval
}

func (r Request) String() string {
	return fmt.Sprintf("%s [%s, %s)", r.Interval, r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}

// FetchPlan is the primary request plus an optional fallback tried when the primary returns no rows.
type FetchPlan struct {
	Primary  Request
	Fallback *Request
}

// Plan chooses provider requests for a resolved range.
func Plan(r model.ResolvedRange, s Session) (FetchPlan, error) {
	day := r.Start
	switch {
	case r.Granularity == model.GranularityMinute && r.SingleDay():
		return FetchPlan{
			Primary: Request{Start: s.At(day, s.Open), End: s.At(day, s.Close), Interval: model.IntervalMinute},
			Fallback: &Request{
				Start:    s.Midnight(day),
				End:      s.Midnight(day.AddDate(0, 0, 1)),
				Interval: model.IntervalDaily,
			},
		}, nil
	case r.Granularity == model.GranularityMinute:
		return FetchPlan{}, ErrIntradayMultiDay
	case r.SingleDay():
		// Narrow end-of-day window so the provider returns a closing quote.
		return FetchPlan{
			Primary: Request{Start: s.At(day, s.PreClose), End: s.At(day, s.Close), Interval: model.IntervalDaily},
		}, nil
	default:
		return FetchPlan{
			Primary: Request{Start: s.Midnight(r.Start), End: s.Midnight(r.End), Interval: model.IntervalDaily},
		}, nil
	}
}
