package authoring

import (
	"strings"

	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// IsComplete reports whether the draft carries the minimum content its card
// type requires. Only fields of the current type are considered.
func IsComplete(d domain.CardDraft) bool {
	hasFront := hasText(d.Front) || d.FrontImage.Present()
	if !hasFront {
		return false
	}

	if d.CardType == domain.CardTypeMultipleChoice {
		return anyNonEmpty(d.CorrectAnswers) && anyNonEmpty(d.IncorrectAnswers)
	}

	// Accepted answers of type-answer cards are optional alternates.
	return hasText(d.Back) || d.BackImage.Present()
}

// CountComplete returns how many drafts are complete.
func CountComplete(drafts []domain.CardDraft) int {
	n := 0
	for _, d := range drafts {
		if IsComplete(d) {
			n++
		}
	}
	return n
}

// CompleteDrafts returns the complete drafts in their original order.
func CompleteDrafts(drafts []domain.CardDraft) []domain.CardDraft {
	out := make([]domain.CardDraft, 0, len(drafts))
	for _, d := range drafts {
		if IsComplete(d) {
			out = append(out, d)
		}
	}
	return out
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

func anyNonEmpty(items []string) bool {
	for _, it := range items {
		if hasText(it) {
			return true
		}
	}
	return false
}

// nonEmpty returns the trimmed, non-empty items. The result is never nil.
func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if t := strings.TrimSpace(it); t != "" {
			out = append(out, t)
		}
	}
	return out
}
