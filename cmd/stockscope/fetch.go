package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"StockScope/internal/model"
	"StockScope/internal/recorder"
	"StockScope/internal/render"
)

type fetchOptions struct {
	symbol   string
	start    string
	end      string
	preset   string
	intraday bool
	out      string
}

func newFetchCmd(a *app) *cobra.Command {
	o := &fetchOptions{}
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch prices for one symbol, print them and export CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, a, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.symbol, "symbol", "", "symbol from the symbols file")
	f.StringVar(&o.start, "start", "", "start date (YYYY-MM-DD), default today")
	f.StringVar(&o.end, "end", "", "end date (YYYY-MM-DD), default today")
	f.StringVar(&o.preset, "preset", "none", "lookback preset: none, 1D, 5D, 1M, 6M, 1Y, 5Y, MAX")
	f.BoolVar(&o.intraday, "intraday", false, "request minute bars (single date only)")
	f.StringVar(&o.out, "out", "", "CSV output path, default from config")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func runFetch(cmd *cobra.Command, a *app, o *fetchOptions) error {
	list, err := a.symbols()
	if err != nil {
		return err
	}
	if !list.Contains(o.symbol) {
		return fmt.Errorf("unknown symbol %q", o.symbol)
	}

	col, err := a.collector(recorder.NewNoopRecorder())
	if err != nil {
		return err
	}

	sel := model.Selection{Symbol: o.symbol, Start: col.Today(), End: col.Today(), Intraday: o.intraday}
	if o.start != "" {
		if sel.Start, err = model.ParseDate(o.start); err != nil {
			return err
		}
	}
	if o.end != "" {
		if sel.End, err = model.ParseDate(o.end); err != nil {
			return err
		}
	}
	if sel.Preset, err = model.ParsePreset(o.preset); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if err := render.Notices(w, []model.Notice{render.Banner()}); err != nil {
		return err
	}

	res, err := col.Collect(cmd.Context(), sel)
	if err != nil {
		return err
	}
	if err := render.Notices(w, res.Notices); err != nil {
		return err
	}
	if res.Empty() {
		return nil
	}

	render.Table(w, res.Series, res.Location)
	if err := render.Summary(w, res.Symbol, res.Series.Bars); err != nil {
		return err
	}
	if _, err := render.Chart(w, render.ChartTitle(res.Symbol), res.Series); err != nil {
		return err
	}

	out := o.out
	if out == "" {
		out = a.cfg.Export.Filename
	}
	if err := render.WriteCSVFile(out, res.Series, res.Location); err != nil {
		return err
	}
	a.logger.Info("csv written", zap.String("path", out), zap.Int("rows", res.Series.Len()))
	fmt.Fprintf(os.Stderr, "saved %d rows to %s\n", res.Series.Len(), out)
	return nil
}
