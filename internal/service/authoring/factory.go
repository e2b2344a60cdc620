package authoring

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// NewEmptyDraft returns a classic-flip draft with empty text and the default
// answer slots: one correct, three incorrect, one accepted.
func NewEmptyDraft(id uuid.UUID) domain.CardDraft {
	return domain.CardDraft{
		ID:               id,
		CardType:         domain.CardTypeClassicFlip,
		CorrectAnswers:   []string{""},
		IncorrectAnswers: []string{"", "", ""},
		AcceptedAnswers:  []string{""},
	}
}

// MakeDrafts produces n empty drafts with distinct ids.
// n must be within [domain.MinDrafts, domain.MaxDrafts].
func MakeDrafts(n int) ([]domain.CardDraft, error) {
	if n < domain.MinDrafts || n > domain.MaxDrafts {
		return nil, domain.NewValidationError("count",
			fmt.Sprintf("must be between %d and %d", domain.MinDrafts, domain.MaxDrafts))
	}

	drafts := make([]domain.CardDraft, n)
	for i := range drafts {
		drafts[i] = NewEmptyDraft(uuid.New())
	}
	return drafts, nil
}
