package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"StockScope/internal/daterange"
	"StockScope/internal/model"
	"StockScope/internal/recorder"
)

// User-facing messages attached to results.
const (
	MsgIntradayMultiDay = "Intraday data can only be downloaded for a single date. Please select the same start and end date."
	MsgIntradayFallback = "Unable to retrieve intraday data for the selected date. Defaulting to daily closing price."
	MsgNoData           = "No data available for the selected time period. Please try adjusting the start and end dates."
)

// Result is the outcome of one resolve → fetch pass.
type Result struct {
	Symbol    string // provider ticker, suffix included
	Selection model.Selection
	Range     model.ResolvedRange
	Series    *model.PriceSeries
	Notices   []model.Notice
	Location  *time.Location
	FellBack  bool
}

// Empty reports whether no rows were obtained.
func (r *Result) Empty() bool { return r.Series.Len() == 0 }

// Chartable reports whether there are enough rows to draw a line.
func (r *Result) Chartable() bool { return r.Series.Len() > 1 }

func (r *Result) notify(level model.NoticeLevel, text string) {
	r.Notices = append(r.Notices, model.Notice{Level: level, Text: text})
}

// Collector orchestrates range resolution, request planning and fetching.
type Collector struct {
	Fetcher  Fetcher
	Session  Session
	Suffix   string
	Recorder recorder.Recorder
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, session Session, suffix string, rec recorder.Recorder, logger *zap.Logger) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		Fetcher:  fetcher,
		Session:  session,
		Suffix:   suffix,
		Recorder: rec,
		Logger:   logger,
		Now:      time.Now,
	}
}

// Ticker appends the exchange suffix to a bare symbol.
func (c *Collector) Ticker(symbol string) string {
	return symbol + c.Suffix
}

// Today is the current exchange date, used as the default for both date inputs.
func (c *Collector) Today() time.Time {
	return c.Session.Today(c.Now())
}

// Collect resolves the selection and fetches its price series. Policy
// rejections and empty results are reported as notices; only provider
// failures are returned as errors.
func (c *Collector) Collect(ctx context.Context, sel model.Selection) (*Result, error) {
	ticker := c.Ticker(sel.Symbol)
	log := c.Logger.With(zap.String("symbol", ticker), zap.String("preset", sel.Preset.String()), zap.Bool("intraday", sel.Intraday))

	rng := daterange.Resolve(sel.Start, sel.End, sel.Preset, sel.Intraday)
	res := &Result{
		Symbol:    ticker,
		Selection: sel,
		Range:     rng,
		Series:    &model.PriceSeries{Symbol: ticker},
		Location:  c.Session.loc(),
	}

	plan, err := Plan(rng, c.Session)
	if errors.Is(err, ErrIntradayMultiDay) {
		log.Info("intraday request rejected",
			zap.String("start", rng.Start.Format(model.DateLayout)),
			zap.String("end", rng.End.Format(model.DateLayout)))
		if rerr := c.Recorder.RecordRejection(&recorder.RejectionEvent{Symbol: ticker, Reason: err.Error()}); rerr != nil {
			log.Warn("record rejection", zap.Error(rerr))
		}
		res.notify(model.NoticeError, MsgIntradayMultiDay)
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("plan request: %w", err)
	}

	bars, err := c.fetch(ctx, log, ticker, plan.Primary)
	if err != nil {
		return nil, err
	}
	res.Series.Interval = plan.Primary.Interval

	if len(bars) == 0 && plan.Fallback != nil {
		log.Warn("no intraday rows, falling back to daily", zap.Stringer("request", plan.Fallback))
		res.notify(model.NoticeWarning, MsgIntradayFallback)
		res.FellBack = true
		bars, err = c.fetch(ctx, log, ticker, *plan.Fallback)
		if err != nil {
			return nil, err
		}
		res.Series.Interval = plan.Fallback.Interval
	}

	res.Series.Bars = bars
	res.Series.FetchedAt = c.Now()
	if len(bars) == 0 {
		res.notify(model.NoticeError, MsgNoData)
	}
	return res, nil
}

func (c *Collector) fetch(ctx context.Context, log *zap.Logger, ticker string, req Request) ([]model.OHLCV, error) {
	log.Debug("fetching", zap.String("provider", c.Fetcher.Name()), zap.Stringer("request", req))
	started := time.Now()
	bars, err := c.Fetcher.Fetch(ctx, ticker, req.Start, req.End, req.Interval)
	evt := &recorder.FetchEvent{
		Symbol:   ticker,
		Provider: c.Fetcher.Name(),
		Interval: req.Interval,
		Rows:     len(bars),
		Duration: time.Since(started),
	}
	switch {
	case err != nil:
		evt.Outcome = recorder.OutcomeError
	case len(bars) == 0:
		evt.Outcome = recorder.OutcomeEmpty
	default:
		evt.Outcome = recorder.OutcomeOK
	}
	if rerr := c.Recorder.RecordFetch(evt); rerr != nil {
		log.Warn("record fetch", zap.Error(rerr))
	}
	if err != nil {
		log.Error("fetch failed", zap.Error(err))
		return nil, fmt.Errorf("fetch %s %s: %w", ticker, req.Interval, err)
	}
	log.Info("fetched", zap.Int("rows", len(bars)), zap.Duration("took", evt.Duration))
	return bars, nil
}
