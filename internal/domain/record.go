package domain

import (
	"time"

	"github.com/google/uuid"
)

// CardRecord is the creation payload for one card in a batch create.
// Only the fields relevant to CardType are populated.
type CardRecord struct {
	CardType         CardType `json:"cardType"`
	Front            string   `json:"front"`
	Back             *string  `json:"back,omitempty"`
	FrontImageURL    *string  `json:"frontImageUrl,omitempty"`
	BackImageURL     *string  `json:"backImageUrl,omitempty"`
	FrontAudio       *string  `json:"frontAudio,omitempty"`
	BackAudio        *string  `json:"backAudio,omitempty"`
	CorrectAnswers   []string `json:"correctAnswers,omitempty"`
	IncorrectAnswers []string `json:"incorrectAnswers,omitempty"`
	AcceptedAnswers  []string `json:"acceptedAnswers,omitempty"`
}

// CreatedCard is a card as persisted by the backend.
type CreatedCard struct {
	ID     uuid.UUID
	DeckID uuid.UUID
	CardRecord
	CreatedAt time.Time
}
