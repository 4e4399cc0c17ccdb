package render

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"StockScope/internal/model"
)

// ExportFilename is the default name of the CSV download.
const ExportFilename = "data.csv"

// CSV encodes the series as UTF-8 CSV with a header row. Daily series are
// keyed by Date, minute series by Datetime with the exchange offset.
func CSV(series *model.PriceSeries, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	key, layout := "Date", model.DateLayout
	if series != nil && series.Interval == model.IntervalMinute {
		key, layout = "Datetime", "2006-01-02 15:04:05-07:00"
	}
	if err := w.Write([]string{key, "Open", "High", "Low", "Close", "Volume"}); err != nil {
		return nil, err
	}
	if series != nil {
		for _, b := range series.Bars {
			t := b.Time
			if loc != nil {
				t = t.In(loc)
			}
			rec := []string{
				t.Format(layout),
				strconv.FormatFloat(b.Open, 'f', -1, 64),
				strconv.FormatFloat(b.High, 'f', -1, 64),
				strconv.FormatFloat(b.Low, 'f', -1, 64),
				strconv.FormatFloat(b.Close, 'f', -1, 64),
				strconv.FormatFloat(b.Volume, 'f', -1, 64),
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSVFile writes the encoded series to path.
func WriteCSVFile(path string, series *model.PriceSeries, loc *time.Location) error {
	data, err := CSV(series, loc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
