package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/discord-autochat/internal/adapters/config"
	statusadapter "github.com/bnema/discord-autochat/internal/adapters/render/status"
	"github.com/bnema/discord-autochat/internal/adapters/telemetry"
	"github.com/bnema/discord-autochat/internal/application"
	"github.com/bnema/discord-autochat/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *rootOptions, deps dependencies) *cobra.Command {
	var (
		metricsAddr string
		once        bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Post and reply in the configured channels until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := wireApp(ctx, opts, deps, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			messages, err := config.LoadMessages(app.cfg.MessagesFile)
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), statusadapter.Banner(version.Name, version.Version)); err != nil {
				return err
			}

			if metricsAddr == "" {
				metricsAddr = app.cfg.MetricsAddr
			}
			var observer application.Observer
			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				observer = telemetry.NewMetrics(reg)

				serveErrs, err := telemetry.Serve(ctx, metricsAddr, reg, app.logger)
				if err != nil {
					return fmt.Errorf("start metrics server: %w", err)
				}
				go logServeErrors(serveErrs, app.logger)
			}

			scheduler, err := app.scheduler(ctx, messages, observer)
			if err != nil {
				return err
			}

			app.logger.Info("autochat started",
				"accounts", len(app.credentials),
				"channels", len(app.channels),
				"messages", len(messages),
				"provider", app.cfg.AI.Provider,
			)

			if once {
				err = scheduler.RunCycle(ctx)
			} else {
				err = scheduler.Run(ctx)
			}
			if errors.Is(err, context.Canceled) {
				app.logger.Info("shutting down")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (overrides metricsAddr)")
	cmd.Flags().BoolVar(&once, "once", false, "Run a single cycle and exit")

	return cmd
}

// logServeErrors reports a metrics server that stops on its own. The
// scheduler keeps running without metrics.
func logServeErrors(errs <-chan error, logger *slog.Logger) {
	for err := range errs {
		if err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	}
}
