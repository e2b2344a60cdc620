package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// SeedDeck inserts a deck owned by a fresh user with French/English
// languages and returns it.
func SeedDeck(t *testing.T, pool *pgxpool.Pool) domain.Deck {
	t.Helper()

	front, back := "fr", "en"
	deck := domain.Deck{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		Name:          "Deck " + uuid.New().String()[:8],
		FrontLanguage: &front,
		BackLanguage:  &back,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO decks (id, owner_id, name, front_language, back_language, card_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		deck.ID, deck.OwnerID, deck.Name, deck.FrontLanguage, deck.BackLanguage, deck.CardCount, deck.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDeck: %v", err)
	}

	return deck
}

// CountCards returns the number of card rows stored for a deck.
func CountCards(t *testing.T, pool *pgxpool.Pool, deckID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM cards WHERE deck_id = $1`, deckID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountCards: %v", err)
	}
	return n
}
