package render

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"StockScope/internal/model"
)

// Chart draws closing prices as a terminal line chart. Series with fewer than
// two rows are skipped and false is returned.
func Chart(w io.Writer, title string, series *model.PriceSeries) (bool, error) {
	if series.Len() < 2 {
		return false, nil
	}
	graph := asciigraph.Plot(series.Closes(),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Precision(2),
		asciigraph.Caption(title),
	)
	if _, err := fmt.Fprintln(w, graph); err != nil {
		return false, err
	}
	return true, nil
}
