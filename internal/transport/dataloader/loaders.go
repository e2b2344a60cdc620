package dataloader

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/deck-authoring/internal/domain"
)

func newDeckBatchFn(repo deckRepo) dataloader.BatchFunc[uuid.UUID, domain.Deck] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[domain.Deck] {
		decks, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[domain.Deck](len(keys), err)
		}

		byID := make(map[uuid.UUID]domain.Deck, len(decks))
		for _, d := range decks {
			byID[d.ID] = d
		}

		results := make([]*dataloader.Result[domain.Deck], len(keys))
		for i, key := range keys {
			if d, ok := byID[key]; ok {
				results[i] = &dataloader.Result[domain.Deck]{Data: d}
			} else {
				results[i] = &dataloader.Result[domain.Deck]{
					Error: fmt.Errorf("deck %s: %w", key, domain.ErrNotFound),
				}
			}
		}
		return results
	}
}

func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}
