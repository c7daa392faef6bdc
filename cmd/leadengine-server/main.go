// leadengine-server hosts the submission pipeline: the contact
// endpoint, the in-process email relay, the country directory, the API
// contract, and Prometheus metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/vucehq/go-leadengine/components/countries"
	"github.com/vucehq/go-leadengine/internal/api"
	"github.com/vucehq/go-leadengine/internal/config"
	"github.com/vucehq/go-leadengine/internal/relay"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional; env vars still apply)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	router, err := buildRouter(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func buildRouter(cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	metrics := api.NewMetrics(prometheus.DefaultRegisterer)

	relayOpts, err := relay.NewOptions(
		relayMailer(cfg, logger),
		relay.WithTemplates(mustTemplates(cfg)),
		relay.WithContactEmail(cfg.Relay.ContactEmail),
		relay.WithFromEmail(cfg.Relay.FromEmail),
		relay.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	relayHandler := relay.Handler(relayOpts)

	contactOpts := []api.ContactOptionFn{
		api.WithLogger(logger),
		api.WithMetrics(metrics),
		api.WithDevFallback(cfg.Relay.DevFallback),
	}
	if cfg.Relay.APIKey != "" {
		contactOpts = append(contactOpts, api.WithForwarder(api.NewLocalForwarder(relayHandler)))
	}

	router.Handle(api.ContactRoutePath, api.ContactHandler(contactOpts...))
	router.Handle(relay.RoutePath, relayHandler)
	router.Handle("/api/openapi.json", api.ContractHandler())
	router.Handle("/metrics", promhttp.Handler())

	if _, err := countries.RegisterRoutes(router, "/"); err != nil {
		return nil, err
	}

	return router, nil
}

func relayMailer(cfg config.Config, logger *zap.Logger) relay.OptionFn {
	if cfg.Relay.APIKey == "" {
		if cfg.Relay.DevFallback {
			logger.Warn("no relay api key; using dry-run mailer")
			return relay.WithMailer(relay.NewDryRunMailer(logger))
		}
		return relay.WithMailer(nil)
	}
	mailer, err := relay.NewResendMailer(cfg.Relay.APIKey)
	if err != nil {
		logger.Warn("resend mailer unavailable", zap.Error(err))
		return relay.WithMailer(nil)
	}
	return relay.WithMailer(mailer)
}

func mustTemplates(cfg config.Config) *relay.Templates {
	templates, err := relay.NewTemplates(relay.WithSiteURL(cfg.Server.SiteURL))
	if err != nil {
		// Embedded templates failing to load is a build defect.
		panic(err)
	}
	return templates
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(parsed)
	return zcfg.Build()
}
