// Package app wires configuration, storage, collaborators and the HTTP
// server into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/deck-authoring/internal/adapter/postgres"
	"github.com/heartmarshall/deck-authoring/internal/adapter/postgres/card"
	"github.com/heartmarshall/deck-authoring/internal/adapter/postgres/deck"
	"github.com/heartmarshall/deck-authoring/internal/adapter/provider/media"
	"github.com/heartmarshall/deck-authoring/internal/adapter/provider/translate"
	"github.com/heartmarshall/deck-authoring/internal/auth"
	"github.com/heartmarshall/deck-authoring/internal/config"
	"github.com/heartmarshall/deck-authoring/internal/service/authoring"
	"github.com/heartmarshall/deck-authoring/internal/transport/middleware"
)

const limiterCleanupInterval = time.Minute

// Run loads configuration, connects to the database and serves HTTP until
// ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, os.Stderr)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("translate_provider", cfg.Translate.ProviderName()),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories.
	txm := postgres.NewTxManager(pool)
	deckRepo := deck.New(pool)
	cardRepo := card.New(pool, txm, deckRepo)

	// External collaborators.
	uploader := media.NewUploader(cfg.Media.ImageUploadURL, cfg.Media.AudioUploadURL, cfg.Media.Timeout, logger)

	tr, err := newTranslator(cfg.Translate, logger)
	if err != nil {
		return err
	}
	if c, ok := tr.(interface{ Close() }); ok {
		defer c.Close()
	}

	svc := authoring.NewService(
		logger,
		tr,
		uploader,
		uploader,
		cardRepo,
		authoring.Config{
			SessionTTL:        cfg.Authoring.SessionTTL,
			UploadConcurrency: cfg.Authoring.UploadConcurrency,
		},
	)

	limiter := middleware.NewRateLimiter(limiterCleanupInterval)
	defer limiter.Stop()

	handler := newRouter(routerDeps{
		logger:  logger,
		cfg:     cfg,
		db:      pool,
		decks:   deckRepo,
		tokens:  auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		svc:     svc,
		limiter: limiter,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		runSweeper(gctx, cfg.Authoring.SweepInterval, svc)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}

type sweeper interface {
	Sweep(now time.Time) int
}

// runSweeper expires idle authoring sessions every interval until ctx ends.
func runSweeper(ctx context.Context, interval time.Duration, s sweeper) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

type translator interface {
	Translate(ctx context.Context, token, text, targetLanguage string) (string, error)
}

// newTranslator picks the translation backend named in cfg. Remote backends
// are wrapped in a cache unless cfg.CacheSize is zero.
func newTranslator(cfg config.TranslateConfig, logger *slog.Logger) (translator, error) {
	var backend translator
	switch cfg.ProviderName() {
	case config.TranslateProviderHTTP:
		backend = translate.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, logger)
	case config.TranslateProviderLLM:
		backend = translate.NewLLM(cfg.APIKey, cfg.BaseURL, cfg.LLMModel, cfg.Timeout, logger)
	default:
		return translate.NewStub(), nil
	}

	if cfg.CacheSize == 0 {
		return backend, nil
	}
	return translate.NewCached(backend, cfg.CacheSize)
}
