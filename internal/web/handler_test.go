package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/collector"
	"StockScope/internal/model"
	"StockScope/internal/recorder"
	"StockScope/internal/render"
	"StockScope/internal/symbols"
)

func dailyBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := 1500 + float64(i)
		bars[i] = model.OHLCV{Time: model.Date(2024, time.January, 2+i), Open: c, High: c + 5, Low: c - 5, Close: c, Volume: 1000}
	}
	return bars
}

func newTestServer(t *testing.T, f collector.Fetcher) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c := collector.NewCollector(f, collector.DefaultSession(), ".NS", recorder.NewPrometheusRecorder(reg), nil)
	c.Now = func() time.Time { return time.Date(2024, time.January, 10, 6, 0, 0, 0, time.UTC) }

	h := NewHandler(c, symbols.List{"INFY", "TCS"}, "", nil)
	srv, err := NewServer(h, reg, nil)
	require.NoError(t, err)
	return srv, reg
}

func get(srv *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

func TestIndex_EmptyForm(t *testing.T) {
	srv, _ := newTestServer(t, &collector.MockFetcher{})

	rec := get(srv, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, render.BannerText)
	assert.Contains(t, body, `<option value="INFY">`)
	assert.Contains(t, body, `value="2024-01-10"`, "dates default to today")
	assert.NotContains(t, body, "Download CSV")
}

func TestIndex_ShowsResult(t *testing.T) {
	f := &collector.MockFetcher{Responses: map[model.Interval][]model.OHLCV{model.IntervalDaily: dailyBars(3)}}
	srv, _ := newTestServer(t, f)

	rec := get(srv, "/?symbol=INFY&start=2024-01-01&end=2024-01-05")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "INFY.NS | 3 rows")
	assert.Contains(t, body, "Download CSV")
	assert.Contains(t, body, `<iframe src="/chart?`)
	assert.Contains(t, body, "<td>1501.00</td>")
}

func TestIndex_IntradayMultiDay(t *testing.T) {
	f := &collector.MockFetcher{}
	srv, _ := newTestServer(t, f)

	rec := get(srv, "/?symbol=INFY&start=2024-01-01&end=2024-01-05&intraday=true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), collector.MsgIntradayMultiDay)
	assert.NotContains(t, rec.Body.String(), "Download CSV")
	assert.Empty(t, f.Calls())
}

func TestIndex_InvalidForm(t *testing.T) {
	srv, _ := newTestServer(t, &collector.MockFetcher{})

	rec := get(srv, "/?symbol=INFY&start=01-01-2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start must be a date")
}

func TestIndex_InvalidFormKeepsSelection(t *testing.T) {
	srv, _ := newTestServer(t, &collector.MockFetcher{})

	rec := get(srv, "/?symbol=TCS&start=2024-01-01&end=2024/01/05&preset=6M&intraday=true")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "end must be a date")
	assert.Contains(t, body, `<option value="TCS" selected>`)
	assert.Contains(t, body, `<option value="6M" selected>`)
	assert.Contains(t, body, `value="2024-01-01"`)
	assert.Contains(t, body, `value="true" checked`)
}

func TestDownload(t *testing.T) {
	f := &collector.MockFetcher{Responses: map[model.Interval][]model.OHLCV{model.IntervalDaily: dailyBars(2)}}
	srv, _ := newTestServer(t, f)

	rec := get(srv, "/download?symbol=TCS&start=2024-01-01&end=2024-01-05&preset=none")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="data.csv"`, rec.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Open,High,Low,Close,Volume", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-02,"))
}

func TestDownload_Empty(t *testing.T) {
	srv, _ := newTestServer(t, &collector.MockFetcher{Responses: map[model.Interval][]model.OHLCV{}})

	rec := get(srv, "/download?symbol=TCS&start=2024-01-01&end=2024-01-05")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), collector.MsgNoData)
}

func TestDownload_BadInput(t *testing.T) {
	srv, _ := newTestServer(t, &collector.MockFetcher{})

	cases := map[string]string{
		"missing symbol": "/download",
		"unknown symbol": "/download?symbol=ACME",
		"bad preset":     "/download?symbol=TCS&preset=2W",
	}
	for name, target := range cases {
		rec := get(srv, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestProviderFailure(t *testing.T) {
	srv, _ := newTestServer(t, &collector.MockFetcher{Err: errors.New("connection reset")})

	for _, target := range []string{"/?symbol=INFY", "/download?symbol=INFY", "/chart?symbol=INFY"} {
		rec := get(srv, target)
		assert.Equal(t, http.StatusBadGateway, rec.Code, target)
		assert.NotContains(t, rec.Body.String(), "connection reset", target)
	}
}

func TestChart(t *testing.T) {
	f := &collector.MockFetcher{Responses: map[model.Interval][]model.OHLCV{model.IntervalDaily: dailyBars(4)}}
	srv, _ := newTestServer(t, f)

	rec := get(srv, "/chart?symbol=INFY&preset=5D")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "INFY.NS Stock Price")
}

func TestChart_SingleRow(t *testing.T) {
	f := &collector.MockFetcher{Responses: map[model.Interval][]model.OHLCV{model.IntervalDaily: dailyBars(1)}}
	srv, _ := newTestServer(t, f)

	rec := get(srv, "/chart?symbol=INFY")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	f := &collector.MockFetcher{Responses: map[model.Interval][]model.OHLCV{model.IntervalDaily: dailyBars(2)}}
	srv, _ := newTestServer(t, f)

	rec := get(srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	get(srv, "/download?symbol=INFY&start=2024-01-01&end=2024-01-05")
	rec = get(srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `stockscope_fetches_total{interval="1d",outcome="ok",provider="mock"} 1`)
}
