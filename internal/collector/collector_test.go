package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/model"
	"StockScope/internal/recorder"
)

type captureRecorder struct {
	fetches    []recorder.FetchEvent
	rejections []recorder.RejectionEvent
}

func (c *captureRecorder) RecordFetch(evt *recorder.FetchEvent) error {
	c.fetches = append(c.fetches, *evt)
	return nil
}

func (c *captureRecorder) RecordRejection(evt *recorder.RejectionEvent) error {
	c.rejections = append(c.rejections, *evt)
	return nil
}

func bar(ts time.Time, c float64) model.OHLCV {
	return model.OHLCV{Time: ts, Open: c, High: c, Low: c, Close: c, Volume: 10}
}

func newTestCollector(t *testing.T, f Fetcher) (*Collector, *captureRecorder) {
	rec := &captureRecorder{}
	return NewCollector(f, testSession(t), ".NS", rec, nil), rec
}

func TestCollect_IntradayMultiDayRejected(t *testing.T) {
	f := &MockFetcher{Responses: map[model.Interval][]model.OHLCV{}}
	c, rec := newTestCollector(t, f)

	res, err := c.Collect(context.Background(), model.Selection{
		Symbol:   "INFY",
		Start:    model.Date(2024, time.February, 1),
		End:      model.Date(2024, time.February, 5),
		Intraday: true,
	})
	require.NoError(t, err)
	assert.Empty(t, f.Calls(), "no request may be made")
	assert.True(t, res.Empty())
	require.Len(t, res.Notices, 1)
	assert.Equal(t, model.NoticeError, res.Notices[0].Level)
	assert.Equal(t, MsgIntradayMultiDay, res.Notices[0].Text)
	assert.Len(t, rec.rejections, 1)
}

func TestCollect_IntradayFallsBackToDaily(t *testing.T) {
	day := model.Date(2024, time.February, 1)
	f := &MockFetcher{Responses: map[model.Interval][]model.OHLCV{
		model.IntervalMinute: nil,
		model.IntervalDaily:  {bar(day, 1500)},
	}}
	c, rec := newTestCollector(t, f)

	res, err := c.Collect(context.Background(), model.Selection{Symbol: "INFY", Start: day, End: day, Intraday: true})
	require.NoError(t, err)

	calls := f.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "INFY.NS", calls[0].Symbol)
	assert.Equal(t, model.IntervalMinute, calls[0].Interval)
	assert.Equal(t, model.IntervalDaily, calls[1].Interval)
	assert.Equal(t, 2024, calls[1].Start.Year())
	assert.Equal(t, time.February, calls[1].Start.Month())
	assert.Equal(t, 1, calls[1].Start.Day())

	assert.True(t, res.FellBack)
	assert.Equal(t, model.IntervalDaily, res.Series.Interval)
	assert.Equal(t, 1, res.Series.Len())
	require.Len(t, res.Notices, 1)
	assert.Equal(t, model.NoticeWarning, res.Notices[0].Level)
	assert.Equal(t, MsgIntradayFallback, res.Notices[0].Text)
	assert.False(t, res.Chartable())

	require.Len(t, rec.fetches, 2)
	assert.Equal(t, recorder.OutcomeEmpty, rec.fetches[0].Outcome)
	assert.Equal(t, recorder.OutcomeOK, rec.fetches[1].Outcome)
}

func TestCollect_IntradayFallbackAlsoEmpty(t *testing.T) {
	day := model.Date(2024, time.February, 1)
	f := &MockFetcher{Responses: map[model.Interval][]model.OHLCV{}}
	c, _ := newTestCollector(t, f)

	res, err := c.Collect(context.Background(), model.Selection{Symbol: "INFY", Start: day, End: day, Intraday: true})
	require.NoError(t, err)
	assert.Len(t, f.Calls(), 2)
	assert.True(t, res.Empty())
	require.Len(t, res.Notices, 2)
	assert.Equal(t, MsgIntradayFallback, res.Notices[0].Text)
	assert.Equal(t, MsgNoData, res.Notices[1].Text)
}

func TestCollect_DailySingleDayNoFallback(t *testing.T) {
	day := model.Date(2024, time.January, 1)
	f := &MockFetcher{Responses: map[model.Interval][]model.OHLCV{}}
	c, _ := newTestCollector(t, f)

	res, err := c.Collect(context.Background(), model.Selection{Symbol: "TCS", Start: day, End: day})
	require.NoError(t, err)

	calls := f.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 15, calls[0].Start.Hour())
	assert.Equal(t, 15, calls[0].Start.Minute())
	assert.Equal(t, 30, calls[0].End.Minute())
	assert.False(t, res.FellBack)
	require.Len(t, res.Notices, 1)
	assert.Equal(t, MsgNoData, res.Notices[0].Text)
}

func TestCollect_PresetRange(t *testing.T) {
	end := model.Date(2024, time.March, 10)
	bars := []model.OHLCV{bar(end.AddDate(0, 0, -2), 10), bar(end.AddDate(0, 0, -1), 11)}
	f := &MockFetcher{Responses: map[model.Interval][]model.OHLCV{model.IntervalDaily: bars}}
	c, _ := newTestCollector(t, f)

	res, err := c.Collect(context.Background(), model.Selection{Symbol: "TCS", Start: end, End: end, Preset: model.Preset5D})
	require.NoError(t, err)

	assert.Equal(t, model.Date(2024, time.March, 6), res.Range.Start)
	assert.Equal(t, end, res.Range.End)
	assert.Empty(t, res.Notices)
	assert.True(t, res.Chartable())
	assert.Equal(t, "TCS.NS", res.Symbol)
}

func TestCollect_ProviderErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	f := &MockFetcher{Err: boom}
	c, rec := newTestCollector(t, f)

	day := model.Date(2024, time.January, 2)
	_, err := c.Collect(context.Background(), model.Selection{Symbol: "TCS", Start: day, End: day.AddDate(0, 0, 3)})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, f.Calls(), 1, "provider failures are not retried")
	require.Len(t, rec.fetches, 1)
	assert.Equal(t, recorder.OutcomeError, rec.fetches[0].Outcome)
}

func TestCollector_Today(t *testing.T) {
	c, _ := newTestCollector(t, &MockFetcher{})
	c.Now = func() time.Time { return time.Date(2024, 6, 30, 21, 0, 0, 0, time.UTC) }
	assert.Equal(t, model.Date(2024, time.July, 1), c.Today())
}
