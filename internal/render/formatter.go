// Package render turns fetch results into terminal and file output.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"StockScope/internal/calculator"
	"StockScope/internal/model"
)

// BannerText describes the granularity limits of the data provider.
const BannerText = "Dive deeper with this data! It provides minute-by-minute details for the past 30 days, giving you high-resolution insights."

// Banner returns the informational notice shown before any result.
func Banner() model.Notice {
	return model.Notice{Level: model.NoticeInfo, Text: BannerText}
}

// FormatNotice renders a notice as a single prefixed line.
func FormatNotice(n model.Notice) string {
	var prefix string
	switch n.Level {
	case model.NoticeWarning:
		prefix = "[WARN]"
	case model.NoticeError:
		prefix = "[ERROR]"
	default:
		prefix = "[INFO]"
	}
	return prefix + " " + n.Text
}

// Notices writes each notice on its own line.
func Notices(w io.Writer, notices []model.Notice) error {
	for _, n := range notices {
		if _, err := fmt.Fprintln(w, FormatNotice(n)); err != nil {
			return err
		}
	}
	return nil
}

// FormatSummary formats the period statistics of a series.
func FormatSummary(symbol string, s calculator.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s | %d rows | close %.2f → %.2f (%+.2f, %+.2f%%)",
		symbol, s.Rows, s.FirstClose, s.LastClose, s.Change, s.ChangePct))
	b.WriteString(fmt.Sprintf(" | range %.2f – %.2f", s.Low, s.High))
	if pos, err := calculator.Position(s.LastClose, s.High, s.Low); err == nil {
		b.WriteString(fmt.Sprintf(" (last at %.0f%%)", pos*100))
	}
	return b.String()
}

// Summary writes the summary line for bars; nothing is written for an empty series.
func Summary(w io.Writer, symbol string, bars []model.OHLCV) error {
	s, err := calculator.Summarize(bars)
	if err != nil {
		return nil
	}
	_, err = fmt.Fprintln(w, FormatSummary(symbol, s))
	return err
}

// ChartTitle is the heading used for price charts.
func ChartTitle(symbol string) string {
	return symbol + " Stock Price"
}

// timeLayout picks a timestamp layout matching the bar size.
func timeLayout(interval model.Interval) string {
	if interval == model.IntervalMinute {
		return "2006-01-02 15:04"
	}
	return model.DateLayout
}

// FormatTime renders a bar timestamp in the exchange location.
func FormatTime(t time.Time, interval model.Interval, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(timeLayout(interval))
}
