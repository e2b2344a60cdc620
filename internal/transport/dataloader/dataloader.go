// Package dataloader provides per-request DataLoaders that batch the deck
// lookups REST handlers make into single SQL calls. Loaders call
// repositories directly; ownership is checked by the authoring service.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/deck-authoring/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type deckRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Deck, error)
}

// Repos holds the repositories required by DataLoaders.
type Repos struct {
	Deck deckRepo
}

// Loaders holds the per-request DataLoader instances.
type Loaders struct {
	DeckByID *dataloader.Loader[uuid.UUID, domain.Deck]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		DeckByID: newLoader(newDeckBatchFn(repos.Deck)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// LoadDeck resolves one deck through the request's loader.
func (l *Loaders) LoadDeck(ctx context.Context, id uuid.UUID) (domain.Deck, error) {
	return l.DeckByID.Load(ctx, id)()
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is the middleware configured?")
	}
	return l
}
