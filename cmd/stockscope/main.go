package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"StockScope/internal/collector"
	"StockScope/internal/config"
	"StockScope/internal/logging"
	"StockScope/internal/recorder"
	"StockScope/internal/symbols"
)

// app carries what every subcommand needs once flags and config are loaded.
type app struct {
	configPath string
	provider   string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	a := &app{}
	root := newRootCmd(a)
	err := root.ExecuteContext(context.Background())
	if a.logger == nil {
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}
	if err != nil {
		a.logger.Error("command failed", zap.Error(err))
	}
	_ = a.logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}

	root := &cobra.Command{
		Use:           "stockscope",
		Short:         "Fetch, tabulate and chart historical stock prices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfig, "path to the YAML config file")
	root.PersistentFlags().StringVar(&a.provider, "provider", "", "data provider: yahoo, financego or mock")

	root.AddCommand(newFetchCmd(a), newServeCmd(a), newSymbolsCmd(a))
	return root
}

func (a *app) setup() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.provider != "" {
		cfg.Provider.Name = a.provider
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) fetcher() collector.Fetcher {
	p := a.cfg.Provider
	switch p.Name {
	case "financego":
		return collector.NewFinanceGoFetcher()
	case "mock":
		return &collector.MockFetcher{}
	default:
		return collector.NewYahooFetcher(p.BaseURL, a.cfg.Proxy, p.Timeout)
	}
}

func (a *app) collector(rec recorder.Recorder) (*collector.Collector, error) {
	s := a.cfg.Session
	session, err := collector.NewSession(s.Timezone, s.Open, s.Close, s.PreClose)
	if err != nil {
		return nil, err
	}
	f := a.fetcher()
	a.logger.Info("data source", zap.String("provider", f.Name()), zap.String("timezone", s.Timezone))
	return collector.NewCollector(f, session, a.cfg.Provider.Suffix, rec, a.logger.Named("collector")), nil
}

func (a *app) symbols() (symbols.List, error) {
	list, err := symbols.Load(a.cfg.Symbols.File, a.cfg.Symbols.Column)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("symbols loaded", zap.Int("count", len(list)), zap.String("file", a.cfg.Symbols.File))
	return list, nil
}
