package web

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"StockScope/internal/calculator"
	"StockScope/internal/collector"
	"StockScope/internal/model"
	"StockScope/internal/render"
	"StockScope/internal/symbols"
)

// Handler serves the dashboard pages.
type Handler struct {
	collector *collector.Collector
	symbols   symbols.List
	filename  string
	logger    *zap.Logger
}

// NewHandler creates a Handler. filename names the CSV download.
func NewHandler(c *collector.Collector, list symbols.List, filename string, logger *zap.Logger) *Handler {
	if filename == "" {
		filename = render.ExportFilename
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{collector: c, symbols: list, filename: filename, logger: logger}
}

// RegisterRoutes mounts the dashboard routes on e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/download", h.Download)
	e.GET("/chart", h.Chart)
}

type indexView struct {
	Symbols   []string
	Presets   []model.Preset
	Symbol    string
	Start     string
	End       string
	Preset    model.Preset
	Intraday  bool
	Banner    model.Notice
	Notices   []model.Notice
	Submitted bool
	Summary   string
	Header    []string
	Rows      [][]string
	Chartable bool
	Query     template.URL
}

// Index renders the selection form and, once a symbol is submitted, its result.
func (h *Handler) Index(c echo.Context) error {
	today := h.collector.Today().Format(model.DateLayout)
	view := &indexView{
		Symbols: h.symbols,
		Presets: model.Presets,
		Start:   today,
		End:     today,
		Banner:  render.Banner(),
	}
	if c.QueryParam("symbol") == "" {
		return c.Render(http.StatusOK, "index.html", view)
	}
	view.Submitted = true

	form, sel, err := h.selection(c)
	if form != nil {
		view.Symbol = form.Symbol
		view.Intraday = form.Intraday
		if p, perr := model.ParsePreset(form.Preset); perr == nil {
			view.Preset = p
		}
		if form.Start != "" {
			view.Start = form.Start
		}
		if form.End != "" {
			view.End = form.End
		}
	}
	if err != nil {
		view.Notices = []model.Notice{{Level: model.NoticeError, Text: err.Error()}}
		return c.Render(http.StatusBadRequest, "index.html", view)
	}
	view.Preset = sel.Preset

	res, err := h.collect(c, sel)
	if err != nil {
		return err
	}
	view.Notices = res.Notices
	if !res.Empty() {
		if s, err := calculator.Summarize(res.Series.Bars); err == nil {
			view.Summary = render.FormatSummary(res.Symbol, s)
		}
		view.Header = render.TableHeader
		view.Rows = make([][]string, 0, res.Series.Len())
		for _, b := range res.Series.Bars {
			view.Rows = append(view.Rows, render.Row(b, res.Series.Interval, res.Location))
		}
		view.Chartable = res.Chartable()
		view.Query = template.URL(encodeQuery(sel))
	}
	return c.Render(http.StatusOK, "index.html", view)
}

// Download responds with the series as a CSV attachment.
func (h *Handler) Download(c echo.Context) error {
	_, sel, err := h.selection(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.collect(c, sel)
	if err != nil {
		return err
	}
	if res.Empty() {
		return echo.NewHTTPError(http.StatusNotFound, noticeText(res.Notices, collector.MsgNoData))
	}

	data, err := render.CSV(res.Series, res.Location)
	if err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", h.filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

// Chart renders a line chart of closing prices.
func (h *Handler) Chart(c echo.Context) error {
	_, sel, err := h.selection(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.collect(c, sel)
	if err != nil {
		return err
	}
	if !res.Chartable() {
		return echo.NewHTTPError(http.StatusNotFound, noticeText(res.Notices, "Not enough rows to draw a chart."))
	}

	title := render.ChartTitle(res.Symbol)
	xs := make([]string, 0, res.Series.Len())
	ys := make([]opts.LineData, 0, res.Series.Len())
	for _, b := range res.Series.Bars {
		xs = append(xs, render.FormatTime(b.Time, res.Series.Interval, res.Location))
		ys = append(ys, opts.LineData{Value: b.Close})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Close"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(xs).AddSeries("Close", ys)

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return line.Render(c.Response())
}

// selection binds the query and checks the symbol against the loaded list.
func (h *Handler) selection(c echo.Context) (*queryForm, model.Selection, error) {
	form, err := bindForm(c)
	if err != nil {
		return form, model.Selection{}, err
	}
	if !h.symbols.Contains(form.Symbol) {
		return form, model.Selection{}, fmt.Errorf("unknown symbol %q", form.Symbol)
	}
	sel, err := form.selection(h.collector.Today())
	return form, sel, err
}

func (h *Handler) collect(c echo.Context, sel model.Selection) (*collector.Result, error) {
	res, err := h.collector.Collect(c.Request().Context(), sel)
	if err != nil {
		h.logger.Error("collect failed", zap.String("symbol", sel.Symbol), zap.Error(err))
		return nil, echo.NewHTTPError(http.StatusBadGateway, "Unable to retrieve data from the provider.").SetInternal(err)
	}
	return res, nil
}

func encodeQuery(sel model.Selection) string {
	q := url.Values{}
	q.Set("symbol", sel.Symbol)
	q.Set("start", sel.Start.Format(model.DateLayout))
	q.Set("end", sel.End.Format(model.DateLayout))
	q.Set("preset", sel.Preset.String())
	q.Set("intraday", strconv.FormatBool(sel.Intraday))
	return q.Encode()
}

// noticeText returns the last error notice, or fallback.
func noticeText(notices []model.Notice, fallback string) string {
	for i := len(notices) - 1; i >= 0; i-- {
		if notices[i].Level == model.NoticeError {
			return notices[i].Text
		}
	}
	return fallback
}
