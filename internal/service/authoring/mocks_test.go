package authoring

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockTranslator struct {
	translateFunc func(ctx context.Context, token, text, lang string) (string, error)
}

func (m *mockTranslator) Translate(ctx context.Context, token, text, lang string) (string, error) {
	if m.translateFunc != nil {
		return m.translateFunc(ctx, token, text, lang)
	}
	return "translated:" + text, nil
}

type mockImageUploader struct {
	uploadFunc func(ctx context.Context, token string, file domain.File) (string, error)
}

func (m *mockImageUploader) UploadImage(ctx context.Context, token string, file domain.File) (string, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, token, file)
	}
	return "https://img.example.com/" + file.Name, nil
}

type mockAudioUploader struct {
	uploadFunc func(ctx context.Context, file domain.File) (string, error)
}

func (m *mockAudioUploader) UploadAudio(ctx context.Context, file domain.File) (string, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, file)
	}
	return "https://audio.example.com/" + file.Name, nil
}

type mockCardRepo struct {
	createBatchFunc func(ctx context.Context, deckID uuid.UUID, records []domain.CardRecord) ([]domain.CreatedCard, error)
	calls           [][]domain.CardRecord
}

func (m *mockCardRepo) CreateBatch(ctx context.Context, deckID uuid.UUID, records []domain.CardRecord) ([]domain.CreatedCard, error) {
	m.calls = append(m.calls, records)
	if m.createBatchFunc != nil {
		return m.createBatchFunc(ctx, deckID, records)
	}
	out := make([]domain.CreatedCard, len(records))
	for i, r := range records {
		out[i] = domain.CreatedCard{ID: uuid.New(), DeckID: deckID, CardRecord: r}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type fixture struct {
	svc        *Service
	translator *mockTranslator
	images     *mockImageUploader
	audio      *mockAudioUploader
	cards      *mockCardRepo
	identity   domain.Identity
	deck       domain.Deck
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userID := uuid.New()
	front, back := "fr", "en"
	f := &fixture{
		translator: &mockTranslator{},
		images:     &mockImageUploader{},
		audio:      &mockAudioUploader{},
		cards:      &mockCardRepo{},
		identity:   domain.Identity{UserID: userID, Token: "token", Premium: true},
		deck: domain.Deck{
			ID:            uuid.New(),
			OwnerID:       userID,
			Name:          "Geography",
			FrontLanguage: &front,
			BackLanguage:  &back,
			CardCount:     10,
		},
	}
	f.svc = NewService(testLogger(), f.translator, f.images, f.audio, f.cards, Config{UploadConcurrency: 2})
	return f
}

// open returns a session in the authoring step with n drafts.
func (f *fixture) open(t *testing.T, n int) *Session {
	t.Helper()
	sess, err := f.svc.NewSession(f.identity, f.deck)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := sess.Open(n); err != nil {
		t.Fatalf("Open(%d): %v", n, err)
	}
	return sess
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fillClassic makes a draft complete as a classic-flip card.
func fillClassic(t *testing.T, s *Session, id uuid.UUID, front, back string) {
	t.Helper()
	mustPatch(t, s, id, SetText{Side: domain.SideFront, Value: front})
	mustPatch(t, s, id, SetText{Side: domain.SideBack, Value: back})
}

func mustPatch(t *testing.T, s *Session, id uuid.UUID, m Mutation) {
	t.Helper()
	ok, err := s.Patch(id, m)
	if err != nil {
		t.Fatalf("Patch(%T): %v", m, err)
	}
	if !ok {
		t.Fatalf("Patch(%T) declined", m)
	}
}
