package render

import (
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"StockScope/internal/model"
)

// TableHeader lists the columns shown for every series.
var TableHeader = []string{"Time", "Open", "High", "Low", "Close", "Volume"}

// Row formats one bar as table cells.
func Row(b model.OHLCV, interval model.Interval, loc *time.Location) []string {
	return []string{
		FormatTime(b.Time, interval, loc),
		strconv.FormatFloat(b.Open, 'f', 2, 64),
		strconv.FormatFloat(b.High, 'f', 2, 64),
		strconv.FormatFloat(b.Low, 'f', 2, 64),
		strconv.FormatFloat(b.Close, 'f', 2, 64),
		strconv.FormatFloat(b.Volume, 'f', 0, 64),
	}
}

// Table writes the series as an aligned text table.
func Table(w io.Writer, series *model.PriceSeries, loc *time.Location) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(TableHeader)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)
	if series != nil {
		for _, b := range series.Bars {
			table.Append(Row(b, series.Interval, loc))
		}
	}
	table.Render()
}
