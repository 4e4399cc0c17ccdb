package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"StockScope/internal/recorder"
	"StockScope/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return runServe(cmd.Context(), a)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8501, "listen port")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	list, err := a.symbols()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	col, err := a.collector(recorder.NewPrometheusRecorder(reg))
	if err != nil {
		return err
	}

	h := web.NewHandler(col, list, a.cfg.Export.Filename, a.logger.Named("web"))
	srv, err := web.NewServer(h, reg, a.logger.Named("http"),
		web.WithHost(a.cfg.Server.Host),
		web.WithPort(a.cfg.Server.Port),
		web.WithShutdownTimeout(a.cfg.Server.ShutdownTimeout),
	)
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	a.logger.Info("shutting down", zap.Int("port", a.cfg.Server.Port))
	return srv.Stop(context.Background())
}
