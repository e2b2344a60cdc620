// Package card implements the card repository using PostgreSQL.
// Batch inserts are built with squirrel; the deck counter update runs in the
// same transaction.
package card

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/deck-authoring/internal/adapter/postgres"
	"github.com/heartmarshall/deck-authoring/internal/domain"
)

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type deckCounter interface {
	IncrementCardCount(ctx context.Context, deckID uuid.UUID, delta int) (int, error)
}

// Repo provides card persistence backed by PostgreSQL.
type Repo struct {
	db    postgres.Querier
	tx    txRunner
	decks deckCounter
}

// New creates a new card repository.
func New(db postgres.Querier, tx txRunner, decks deckCounter) *Repo {
	return &Repo{db: db, tx: tx, decks: decks}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var insertColumns = []string{
	"id", "deck_id", "card_type", "front", "back",
	"front_image_url", "back_image_url", "front_audio", "back_audio",
	"correct_answers", "incorrect_answers", "accepted_answers",
}

const listByDeckSQL = `
SELECT id, deck_id, card_type, front, back, front_image_url, back_image_url,
       front_audio, back_audio, correct_answers, incorrect_answers, accepted_answers, created_at
FROM cards
WHERE deck_id = $1
ORDER BY created_at, id`

// CreateBatch inserts all records for a deck in one statement and bumps the
// deck's card count, atomically. Either every card is created or none is.
// The result preserves the order of records.
func (r *Repo) CreateBatch(ctx context.Context, deckID uuid.UUID, records []domain.CardRecord) ([]domain.CreatedCard, error) {
	if len(records) == 0 {
		return []domain.CreatedCard{}, nil
	}

	created := make([]domain.CreatedCard, len(records))
	index := make(map[uuid.UUID]int, len(records))

	insert := psql.Insert("cards").Columns(insertColumns...).Suffix("RETURNING id, created_at")
	for i, rec := range records {
		id := uuid.New()
		index[id] = i
		created[i] = domain.CreatedCard{ID: id, DeckID: deckID, CardRecord: rec}
		insert = insert.Values(
			id, deckID, string(rec.CardType), rec.Front, rec.Back,
			rec.FrontImageURL, rec.BackImageURL, rec.FrontAudio, rec.BackAudio,
			textArray(rec.CorrectAnswers), textArray(rec.IncorrectAnswers), textArray(rec.AcceptedAnswers),
		)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cards insert: %w", err)
	}

	err = r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return postgres.MapError(err, "cards for deck", deckID)
		}
		defer rows.Close()

		n := 0
		for rows.Next() {
			var (
				id        uuid.UUID
				createdAt time.Time
			)
			if err := rows.Scan(&id, &createdAt); err != nil {
				return fmt.Errorf("scan created card: %w", err)
			}
			if i, ok := index[id]; ok {
				created[i].CreatedAt = createdAt
				n++
			}
		}
		if err := rows.Err(); err != nil {
			return postgres.MapError(err, "cards for deck", deckID)
		}
		if n != len(records) {
			return fmt.Errorf("insert cards: %d of %d rows returned", n, len(records))
		}

		if _, err := r.decks.IncrementCardCount(ctx, deckID, n); err != nil {
			return fmt.Errorf("increment card count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ListByDeck returns all cards of a deck in creation order.
func (r *Repo) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]domain.CreatedCard, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []cardRow
	if err := pgxscan.Select(ctx, q, &rows, listByDeckSQL, deckID); err != nil {
		return nil, fmt.Errorf("list cards by deck: %w", err)
	}

	cards := make([]domain.CreatedCard, len(rows))
	for i, row := range rows {
		cards[i] = row.toDomain()
	}
	return cards, nil
}

type cardRow struct {
	ID               uuid.UUID `db:"id"`
	DeckID           uuid.UUID `db:"deck_id"`
	CardType         string    `db:"card_type"`
	Front            string    `db:"front"`
	Back             *string   `db:"back"`
	FrontImageURL    *string   `db:"front_image_url"`
	BackImageURL     *string   `db:"back_image_url"`
	FrontAudio       *string   `db:"front_audio"`
	BackAudio        *string   `db:"back_audio"`
	CorrectAnswers   []string  `db:"correct_answers"`
	IncorrectAnswers []string  `db:"incorrect_answers"`
	AcceptedAnswers  []string  `db:"accepted_answers"`
	CreatedAt        time.Time `db:"created_at"`
}

func (r cardRow) toDomain() domain.CreatedCard {
	return domain.CreatedCard{
		ID:        r.ID,
		DeckID:    r.DeckID,
		CreatedAt: r.CreatedAt,
		CardRecord: domain.CardRecord{
			CardType:         domain.CardType(r.CardType),
			Front:            r.Front,
			Back:             r.Back,
			FrontImageURL:    r.FrontImageURL,
			BackImageURL:     r.BackImageURL,
			FrontAudio:       r.FrontAudio,
			BackAudio:        r.BackAudio,
			CorrectAnswers:   r.CorrectAnswers,
			IncorrectAnswers: r.IncorrectAnswers,
			AcceptedAnswers:  r.AcceptedAnswers,
		},
	}
}

// textArray keeps NOT NULL text[] columns non-null.
func textArray(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
