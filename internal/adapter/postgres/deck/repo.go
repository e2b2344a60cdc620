// Package deck implements the deck repository using PostgreSQL.
package deck

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/deck-authoring/internal/adapter/postgres"
	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// Repo provides deck persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new deck repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const deckColumns = `id, owner_id, name, front_language, back_language, card_count, created_at`

const getByIDSQL = `SELECT ` + deckColumns + ` FROM decks WHERE id = $1`

const getByIDsSQL = `SELECT ` + deckColumns + ` FROM decks WHERE id = ANY($1::uuid[])`

const incrementCardCountSQL = `
UPDATE decks SET card_count = card_count + $2
WHERE id = $1
RETURNING card_count`

type deckRow struct {
	ID            uuid.UUID `db:"id"`
	OwnerID       uuid.UUID `db:"owner_id"`
	Name          string    `db:"name"`
	FrontLanguage *string   `db:"front_language"`
	BackLanguage  *string   `db:"back_language"`
	CardCount     int       `db:"card_count"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r deckRow) toDomain() domain.Deck {
	return domain.Deck{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		Name:          r.Name,
		FrontLanguage: r.FrontLanguage,
		BackLanguage:  r.BackLanguage,
		CardCount:     r.CardCount,
		CreatedAt:     r.CreatedAt,
	}
}

// GetByID returns a deck by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Deck, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row deckRow
	if err := pgxscan.Get(ctx, q, &row, getByIDSQL, id); err != nil {
		if pgxscan.NotFound(err) {
			return domain.Deck{}, fmt.Errorf("deck %s: %w", id, domain.ErrNotFound)
		}
		return domain.Deck{}, postgres.MapError(err, "deck", id)
	}
	return row.toDomain(), nil
}

// GetByIDs returns the decks with the given ids in no particular order.
// Missing ids are simply absent from the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Deck, error) {
	if len(ids) == 0 {
		return []domain.Deck{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []deckRow
	if err := pgxscan.Select(ctx, q, &rows, getByIDsSQL, ids); err != nil {
		return nil, fmt.Errorf("get decks by ids: %w", err)
	}

	decks := make([]domain.Deck, len(rows))
	for i, row := range rows {
		decks[i] = row.toDomain()
	}
	return decks, nil
}

// IncrementCardCount adds delta to the deck's card count and returns the new
// value. It joins the transaction in ctx when there is one.
func (r *Repo) IncrementCardCount(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, incrementCardCountSQL, id, delta).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "deck", id)
	}
	return count, nil
}
