package deck_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/deck-authoring/internal/adapter/postgres/deck"
	"github.com/heartmarshall/deck-authoring/internal/domain"
)

var deckCols = []string{"id", "owner_id", "name", "front_language", "back_language", "card_count", "created_at"}

func newMockRepo(t *testing.T) (*deck.Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		mock.Close()
	})
	return deck.New(mock), mock
}

func TestRepo_GetByID_Mock(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()
	ownerID := uuid.New()
	now := time.Now()
	front := "de"

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
		check   func(t *testing.T, d domain.Deck)
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(deckCols).
					AddRow(deckID, ownerID, "German", &front, (*string)(nil), 7, now)
				mock.ExpectQuery(`SELECT (.+) FROM decks WHERE id = \$1`).
					WithArgs(deckID).
					WillReturnRows(rows)
			},
			check: func(t *testing.T, d domain.Deck) {
				if d.ID != deckID || d.OwnerID != ownerID {
					t.Errorf("ids = %s/%s, want %s/%s", d.ID, d.OwnerID, deckID, ownerID)
				}
				if d.Language(domain.SideFront) != "de" || d.Language(domain.SideBack) != "" {
					t.Errorf("languages = %q/%q, want de/empty", d.Language(domain.SideFront), d.Language(domain.SideBack))
				}
				if d.CardCount != 7 {
					t.Errorf("CardCount = %d, want 7", d.CardCount)
				}
			},
		},
		{
			name: "no rows",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT`).
					WithArgs(pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows(deckCols))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "query error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT`).
					WithArgs(pgxmock.AnyArg()).
					WillReturnError(context.DeadlineExceeded)
			},
			wantErr: context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			got, err := repo.GetByID(context.Background(), deckID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetByID() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetByID() unexpected error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestRepo_GetByIDs_Mock(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	a, b := uuid.New(), uuid.New()
	now := time.Now()
	rows := pgxmock.NewRows(deckCols).
		AddRow(a, uuid.New(), "A", (*string)(nil), (*string)(nil), 0, now).
		AddRow(b, uuid.New(), "B", (*string)(nil), (*string)(nil), 3, now)
	mock.ExpectQuery(`FROM decks WHERE id = ANY`).
		WithArgs([]uuid.UUID{a, b, uuid.Nil}).
		WillReturnRows(rows)

	got, err := repo.GetByIDs(context.Background(), []uuid.UUID{a, b, uuid.Nil})
	if err != nil {
		t.Fatalf("GetByIDs() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "A" || got[1].CardCount != 3 {
		t.Errorf("unexpected decks: %+v", got)
	}
}

func TestRepo_GetByIDs_EmptySkipsQuery(t *testing.T) {
	t.Parallel()
	repo, _ := newMockRepo(t)

	got, err := repo.GetByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetByIDs() unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestRepo_IncrementCardCount_Mock(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()

	tests := []struct {
		name      string
		setup     func(mock pgxmock.PgxPoolIface)
		wantCount int
		wantErr   error
	}{
		{
			name: "returns new count",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`UPDATE decks SET card_count`).
					WithArgs(deckID, 4).
					WillReturnRows(pgxmock.NewRows([]string{"card_count"}).AddRow(9))
			},
			wantCount: 9,
		},
		{
			name: "check violation maps to validation",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`UPDATE decks SET card_count`).
					WithArgs(deckID, 4).
					WillReturnError(&pgconn.PgError{Code: "23514"})
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			got, err := repo.IncrementCardCount(context.Background(), deckID, 4)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("IncrementCardCount() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("IncrementCardCount() unexpected error: %v", err)
			}
			if got != tt.wantCount {
				t.Errorf("count = %d, want %d", got, tt.wantCount)
			}
		})
	}
}
