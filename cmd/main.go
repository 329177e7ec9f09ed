package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/kaizolist/internal/adapters/http/api"
	"github.com/okian/kaizolist/internal/adapters/http/swagger"
	"github.com/okian/kaizolist/internal/adapters/mq/notify"
	"github.com/okian/kaizolist/internal/adapters/source"
	app "github.com/okian/kaizolist/internal/app"
	"github.com/okian/kaizolist/internal/config"
	"github.com/okian/kaizolist/internal/domain/scoring"
	"github.com/okian/kaizolist/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := buildService(ctx, cfg, log)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		os.Exit(1)
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, cfg, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}
	log.Info(shutdownCtx, "server stopped")
}

// buildService wires the loader, scorer and notifier described by cfg.
func buildService(ctx context.Context, cfg *config.Config, log logger.Logger) *app.Service {
	var notifier notify.Notifier = notify.Noop{}
	if cfg.NATSURL != "" {
		n, err := notify.NewNATSNotifier(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			log.Warn(ctx, "board notifications disabled", logger.String("nats_url", cfg.NATSURL), logger.Error(err))
		} else {
			notifier = n
		}
	}

	loader := source.NewFileLoader(
		source.WithDataDir(cfg.DataDir),
		source.WithLevelsFile(cfg.LevelsFile),
		source.WithChallengesFile(cfg.ChallengesFile),
		source.WithVictorsFile(cfg.VictorsFile),
		source.WithLogger(log.Named("source")),
	)

	return app.New(
		app.WithLogger(log),
		app.WithLoader(loader),
		app.WithScorer(scoring.NewScorer(scoring.WithParams(cfg.ScoringParams()))),
		app.WithDuplicateCredit(cfg.DuplicateCredit),
		app.WithNotifier(notifier),
		app.WithReloadInterval(cfg.ReloadInterval()),
	)
}

// newMux registers the API and the OpenAPI document.
func newMux(ctx context.Context, svc *app.Service, cfg *config.Config, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, cfg.MaxLeaderboardLimit, log.Named("api")).Register(ctx, mux)
	return mux
}
