package authoring

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// Step is the stage an authoring session is in.
type Step string

const (
	StepCount     Step = "count"
	StepAuthoring Step = "authoring"
)

// Session is the state of one authoring dialog: the selected step, the draft
// collection and the enrichment tasks in flight. It is safe for concurrent
// use. The lock is never held across a collaborator call.
type Session struct {
	svc      *Service
	log      *slog.Logger
	id       uuid.UUID
	identity domain.Identity

	mu         sync.Mutex
	deck       domain.Deck
	step       Step
	drafts     *Collection
	inflight   map[taskKey]struct{}
	submitting bool
	touchedAt  time.Time
}

func newSession(svc *Service, identity domain.Identity, deck domain.Deck) *Session {
	id := uuid.New()
	return &Session{
		svc:       svc,
		log:       svc.log.With("session_id", id.String()),
		id:        id,
		identity:  identity,
		deck:      deck,
		step:      StepCount,
		drafts:    NewCollection(nil),
		inflight:  make(map[taskKey]struct{}),
		touchedAt: time.Now(),
	}
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID { return s.id }

// OwnerID returns the id of the user the session belongs to.
func (s *Session) OwnerID() uuid.UUID { return s.identity.UserID }

// Open moves the session from the count step to the authoring step with
// count empty drafts.
func (s *Session) Open(count int) error {
	drafts, err := MakeDrafts(count)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepCount {
		return domain.ErrConflict
	}
	s.drafts = NewCollection(drafts)
	s.step = StepAuthoring
	s.touchLocked()
	return nil
}

// Cancel discards all drafts and returns to the count step. Enrichments still
// in flight complete against a collection that no longer holds their draft
// and are discarded.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Deck returns a copy of the deck the session commits into.
func (s *Session) Deck() domain.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck
}

// Drafts returns a snapshot of the drafts in order.
func (s *Session) Drafts() []domain.CardDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts.List()
}

// Draft returns a snapshot of one draft.
func (s *Session) Draft(id uuid.UUID) (domain.CardDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts.Get(id)
}

// FilledCount returns the number of complete drafts.
func (s *Session) FilledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CountComplete(s.drafts.List())
}

// ---------------------------------------------------------------------------
// Collection operations
// ---------------------------------------------------------------------------

// AddDraft appends an empty draft. It declines outside the authoring step
// and once the collection is full.
func (s *Session) AddDraft() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepAuthoring {
		return uuid.Nil, false
	}
	s.touchLocked()
	return s.drafts.Add()
}

// RemoveDraft removes a draft by id. Like AddDraft it declines outside the
// authoring step.
func (s *Session) RemoveDraft(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepAuthoring {
		return false
	}
	s.touchLocked()
	return s.drafts.Remove(id)
}

// Patch applies a typed mutation to a draft. A malformed mutation is
// reported as a validation error; a missing draft or a bound that was
// reached is a silent decline (false, nil).
func (s *Session) Patch(id uuid.UUID, m Mutation) (bool, error) {
	if m == nil {
		return false, domain.NewValidationError("mutation", "required")
	}
	if err := m.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	return s.drafts.Apply(id, m), nil
}

// SetCardType changes the card type of a draft.
func (s *Session) SetCardType(id uuid.UUID, t domain.CardType) (bool, error) {
	return s.Patch(id, SetCardType{CardType: t})
}

// SetArrayItem replaces one entry of an answer list.
func (s *Session) SetArrayItem(id uuid.UUID, key domain.ArrayKey, index int, value string) (bool, error) {
	return s.Patch(id, SetArrayItem{Key: key, Index: index, Value: value})
}

// AddArrayItem appends an empty entry to an answer list.
func (s *Session) AddArrayItem(id uuid.UUID, key domain.ArrayKey) (bool, error) {
	return s.Patch(id, AddArrayItem{Key: key})
}

// RemoveArrayItem drops one entry of an answer list.
func (s *Session) RemoveArrayItem(id uuid.UUID, key domain.ArrayKey, index int) (bool, error) {
	return s.Patch(id, RemoveArrayItem{Key: key, Index: index})
}

// ---------------------------------------------------------------------------
// Helpers (caller holds s.mu)
// ---------------------------------------------------------------------------

func (s *Session) resetLocked() {
	s.drafts = NewCollection(nil)
	s.step = StepCount
	s.touchLocked()
}

func (s *Session) touchLocked() {
	s.touchedAt = time.Now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}
