// Package authoring implements batch flashcard authoring: staging drafts,
// enriching their fields through external services, validating them per card
// type and committing the complete ones to a deck in one batch.
package authoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type translator interface {
	Translate(ctx context.Context, token, text, targetLanguage string) (string, error)
}

type imageUploader interface {
	UploadImage(ctx context.Context, token string, file domain.File) (string, error)
}

type audioUploader interface {
	UploadAudio(ctx context.Context, file domain.File) (string, error)
}

// cardBatchCreator persists one batch of cards atomically: either every
// record is created or none is.
type cardBatchCreator interface {
	CreateBatch(ctx context.Context, deckID uuid.UUID, records []domain.CardRecord) ([]domain.CreatedCard, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds authoring tunables.
type Config struct {
	// SessionTTL is how long an idle session is kept in the registry.
	SessionTTL time.Duration
	// UploadConcurrency bounds parallel image uploads in SubmitEach.
	UploadConcurrency int
}

// Service creates authoring sessions and owns the collaborators they share.
type Service struct {
	log        *slog.Logger
	translator translator
	images     imageUploader
	audio      audioUploader
	cards      cardBatchCreator
	cfg        Config
	sessions   *Registry
}

// NewService creates a new authoring service.
func NewService(
	logger *slog.Logger,
	translator translator,
	images imageUploader,
	audio audioUploader,
	cards cardBatchCreator,
	cfg Config,
) *Service {
	if cfg.UploadConcurrency <= 0 {
		cfg.UploadConcurrency = 4
	}
	return &Service{
		log:        logger.With("service", "authoring"),
		translator: translator,
		images:     images,
		audio:      audio,
		cards:      cards,
		cfg:        cfg,
		sessions:   NewRegistry(cfg.SessionTTL),
	}
}

// NewSession creates a session in the count-selection step for the given
// caller and deck. The caller must own the deck.
func (s *Service) NewSession(identity domain.Identity, deck domain.Deck) (*Session, error) {
	if identity.UserID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if deck.OwnerID != identity.UserID {
		return nil, domain.ErrForbidden
	}
	return newSession(s, identity, deck), nil
}

// StartSession creates a session, opens it with count empty drafts and
// registers it so later requests can find it by id.
func (s *Service) StartSession(ctx context.Context, identity domain.Identity, deck domain.Deck, count int) (*Session, error) {
	sess, err := s.NewSession(identity, deck)
	if err != nil {
		return nil, err
	}
	if err := sess.Open(count); err != nil {
		return nil, err
	}

	s.sessions.Put(sess)

	s.log.InfoContext(ctx, "authoring session started",
		slog.String("session_id", sess.ID().String()),
		slog.String("user_id", identity.UserID.String()),
		slog.String("deck_id", deck.ID.String()),
		slog.Int("count", count),
	)

	return sess, nil
}

// Session returns the registered session with the id if it belongs to userID.
func (s *Service) Session(userID, sessionID uuid.UUID) (*Session, error) {
	return s.sessions.Get(userID, sessionID)
}

// EndSession cancels and unregisters a session.
func (s *Service) EndSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	sess, err := s.sessions.Get(userID, sessionID)
	if err != nil {
		return err
	}
	sess.Cancel()
	s.sessions.Delete(sessionID)

	s.log.InfoContext(ctx, "authoring session ended",
		slog.String("session_id", sessionID.String()),
		slog.String("user_id", userID.String()),
	)
	return nil
}

// ActiveSessions returns the number of registered sessions.
func (s *Service) ActiveSessions() int {
	return s.sessions.Len()
}

// Sweep drops sessions idle for longer than the configured TTL and returns
// how many were dropped.
func (s *Service) Sweep(now time.Time) int {
	n := s.sessions.Sweep(now)
	if n > 0 {
		s.log.Info("expired authoring sessions", slog.Int("count", n))
	}
	return n
}
