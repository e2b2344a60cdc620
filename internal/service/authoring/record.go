package authoring

import (
	"strings"

	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// ToRecord maps a complete draft to its creation record. Only the fields
// relevant to the draft's card type are populated; text is trimmed and
// empty list entries are dropped.
func ToRecord(d domain.CardDraft) domain.CardRecord {
	rec := domain.CardRecord{
		CardType:      d.CardType,
		Front:         strings.TrimSpace(d.Front),
		FrontImageURL: optional(d.FrontImage.URL),
	}

	switch d.CardType {
	case domain.CardTypeMultipleChoice:
		rec.CorrectAnswers = nonEmpty(d.CorrectAnswers)
		rec.IncorrectAnswers = nonEmpty(d.IncorrectAnswers)
	case domain.CardTypeTypeAnswer:
		rec.Back = stringPtr(strings.TrimSpace(d.Back))
		rec.BackImageURL = optional(d.BackImage.URL)
		rec.AcceptedAnswers = nonEmpty(d.AcceptedAnswers)
	default:
		rec.Back = stringPtr(strings.TrimSpace(d.Back))
		rec.BackImageURL = optional(d.BackImage.URL)
		rec.FrontAudio = optional(d.FrontAudio)
		rec.BackAudio = optional(d.BackAudio)
	}

	return rec
}

// ToRecords maps drafts to creation records, preserving order.
func ToRecords(drafts []domain.CardDraft) []domain.CardRecord {
	records := make([]domain.CardRecord, len(drafts))
	for i, d := range drafts {
		records[i] = ToRecord(d)
	}
	return records
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringPtr(s string) *string { return &s }
