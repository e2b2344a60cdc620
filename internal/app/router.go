package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/deck-authoring/internal/config"
	"github.com/heartmarshall/deck-authoring/internal/domain"
	"github.com/heartmarshall/deck-authoring/internal/service/authoring"
	"github.com/heartmarshall/deck-authoring/internal/transport/dataloader"
	"github.com/heartmarshall/deck-authoring/internal/transport/middleware"
	"github.com/heartmarshall/deck-authoring/internal/transport/rest"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type deckLister interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Deck, error)
}

type tokenValidator interface {
	ValidateAccessToken(token string) (domain.Identity, error)
}

// routerDeps are the collaborators the HTTP surface is built from.
type routerDeps struct {
	logger  *slog.Logger
	cfg     *config.Config
	db      pinger
	decks   deckLister
	tokens  tokenValidator
	svc     *authoring.Service
	limiter *middleware.RateLimiter
}

// newRouter assembles the HTTP handler. Health checks are public; every other route
// requires a bearer token and gets per-request loaders.
func newRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()

	health := rest.NewHealthHandler(d.db, d.svc, BuildVersion())
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	api := http.NewServeMux()
	rest.NewSessionHandler(d.svc, d.logger, d.cfg.Authoring.MaxUploadBytes).
		Mount(api, d.limiter.Limit("enrich", d.cfg.Authoring.EnrichmentRatePerMinute))

	mux.Handle("/", middleware.Chain(
		middleware.RequireAuth,
		middleware.Middleware(dataloader.Middleware(&dataloader.Repos{Deck: d.decks})),
	)(api))

	return middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(d.logger),
		middleware.CORS(d.cfg.CORS),
		middleware.Auth(d.tokens),
		middleware.Logger(d.logger),
	)(mux)
}
