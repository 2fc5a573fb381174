package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atcovolan/pricewatch/internal/config"
	"github.com/atcovolan/pricewatch/internal/fetch"
	"github.com/atcovolan/pricewatch/internal/monitor"
	"github.com/atcovolan/pricewatch/internal/notify"
	"github.com/atcovolan/pricewatch/pkg/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the monitoring loop until interrupted",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := newLogger(cfg)

	mon, err := buildMonitor(cfg, log, false)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *echo.Echo
	if cfg.Server.Enabled {
		srv = startServer(cfg, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("server shutdown failed", "error", err)
			}
		}()
	}

	err = mon.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("monitor stopped")
		return nil
	}
	return err
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if override := viper.GetString("log-level"); override != "" {
		level = override
	}
	return logger.New(level, cfg.Logging.Format)
}

func buildMonitor(cfg *config.Config, log *slog.Logger, dryRun bool) (*monitor.Monitor, error) {
	fetcher := fetch.NewHTTPFetcher(
		cfg.RequestHeaders(),
		fetch.WithTimeout(cfg.FetchTimeout()),
		fetch.WithRateLimit(cfg.Fetch.RateLimit.PerSecond, cfg.Fetch.RateLimit.Burst),
	)

	parsers, err := monitor.Parsers(cfg.Products)
	if err != nil {
		return nil, fmt.Errorf("resolving parsers: %w", err)
	}

	notifier := buildNotifier(cfg, log, dryRun)

	return monitor.New(cfg, fetcher, parsers, notifier, monitor.WithLogger(log)), nil
}

func buildNotifier(cfg *config.Config, log *slog.Logger, dryRun bool) notify.Notifier {
	if dryRun {
		return notify.NewNoOpNotifier(log)
	}

	var channels []notify.Notifier
	if cfg.Notifications.Discord.Enabled {
		channels = append(channels, notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL))
	}
	if cfg.Notifications.Webhook.Enabled {
		channels = append(channels, notify.NewWebhookNotifier(
			cfg.Notifications.Webhook.URL,
			cfg.Notifications.Webhook.Headers,
		))
	}

	switch len(channels) {
	case 0:
		return notify.NewNoOpNotifier(log)
	case 1:
		return channels[0]
	default:
		return notify.NewMultiNotifier(channels...)
	}
}

// startServer exposes health and Prometheus metrics endpoints. It is opt-in:
// by default the daemon listens on nothing.
func startServer(cfg *config.Config, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting metrics server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server error", "error", err)
		}
	}()

	return e
}
