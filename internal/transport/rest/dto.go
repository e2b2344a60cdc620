package rest

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/deck-authoring/internal/domain"
	"github.com/heartmarshall/deck-authoring/internal/service/authoring"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type startSessionRequest struct {
	Count int `json:"count"`
}

type translateRequest struct {
	Side domain.Side `json:"side"`
}

// patchRequest is one typed draft mutation. Which fields are read depends
// on Op.
type patchRequest struct {
	Op       string          `json:"op"`
	Side     domain.Side     `json:"side"`
	Key      domain.ArrayKey `json:"key"`
	Index    *int            `json:"index"`
	Value    *string         `json:"value"`
	CardType domain.CardType `json:"cardType"`
}

// Patch operations.
const (
	opSetText         = "setText"
	opSetCardType     = "setCardType"
	opSetArrayItem    = "setArrayItem"
	opAddArrayItem    = "addArrayItem"
	opRemoveArrayItem = "removeArrayItem"
	opClearAudio      = "clearAudio"
)

func (p patchRequest) mutation() (authoring.Mutation, error) {
	switch p.Op {
	case opSetText:
		if p.Value == nil {
			return nil, domain.NewValidationError("value", "required")
		}
		return authoring.SetText{Side: p.Side, Value: *p.Value}, nil

	case opSetCardType:
		return authoring.SetCardType{CardType: p.CardType}, nil

	case opSetArrayItem:
		var errs []domain.FieldError
		if p.Index == nil {
			errs = append(errs, domain.FieldError{Field: "index", Message: "required"})
		}
		if p.Value == nil {
			errs = append(errs, domain.FieldError{Field: "value", Message: "required"})
		}
		if len(errs) > 0 {
			return nil, domain.NewValidationErrors(errs)
		}
		return authoring.SetArrayItem{Key: p.Key, Index: *p.Index, Value: *p.Value}, nil

	case opAddArrayItem:
		return authoring.AddArrayItem{Key: p.Key}, nil

	case opRemoveArrayItem:
		if p.Index == nil {
			return nil, domain.NewValidationError("index", "required")
		}
		return authoring.RemoveArrayItem{Key: p.Key, Index: *p.Index}, nil

	case opClearAudio:
		return authoring.SetAudio{Side: p.Side}, nil

	case "":
		return nil, domain.NewValidationError("op", "required")
	}
	return nil, domain.NewValidationError("op", "unknown operation "+p.Op)
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type sessionResponse struct {
	ID          string          `json:"id"`
	Step        string          `json:"step"`
	Deck        deckResponse    `json:"deck"`
	FilledCount int             `json:"filledCount"`
	Drafts      []draftResponse `json:"drafts"`
}

type deckResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	FrontLanguage *string `json:"frontLanguage,omitempty"`
	BackLanguage  *string `json:"backLanguage,omitempty"`
	CardCount     int     `json:"cardCount"`
}

type imageResponse struct {
	URL         string `json:"url,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

type draftResponse struct {
	ID               string         `json:"id"`
	CardType         string         `json:"cardType"`
	Front            string         `json:"front"`
	Back             string         `json:"back"`
	FrontImage       *imageResponse `json:"frontImage,omitempty"`
	BackImage        *imageResponse `json:"backImage,omitempty"`
	FrontAudio       string         `json:"frontAudio,omitempty"`
	BackAudio        string         `json:"backAudio,omitempty"`
	CorrectAnswers   []string       `json:"correctAnswers"`
	IncorrectAnswers []string       `json:"incorrectAnswers"`
	AcceptedAnswers  []string       `json:"acceptedAnswers"`
	Complete         bool           `json:"complete"`
	// Pending lists the enrichments running for the draft as "kind:side".
	Pending []string `json:"pending,omitempty"`
}

// mutationResponse answers every draft-level operation. Applied is false
// when the operation was declined; Draft is the draft afterwards, if it
// still exists.
type mutationResponse struct {
	Applied bool           `json:"applied"`
	Draft   *draftResponse `json:"draft,omitempty"`
}

type submitResponse struct {
	CreatedCount int `json:"createdCount"`
	FailedCount  int `json:"failedCount"`
}

var enrichmentKinds = []domain.EnrichmentKind{
	domain.EnrichmentTranslate,
	domain.EnrichmentImage,
	domain.EnrichmentAudio,
}

var sides = []domain.Side{domain.SideFront, domain.SideBack}

func toSessionResponse(sess *authoring.Session) sessionResponse {
	drafts := sess.Drafts()
	out := make([]draftResponse, 0, len(drafts))
	filled := 0
	for _, d := range drafts {
		dr := toDraftResponse(sess, d)
		if dr.Complete {
			filled++
		}
		out = append(out, dr)
	}

	return sessionResponse{
		ID:          sess.ID().String(),
		Step:        string(sess.Step()),
		Deck:        toDeckResponse(sess.Deck()),
		FilledCount: filled,
		Drafts:      out,
	}
}

func toDeckResponse(d domain.Deck) deckResponse {
	return deckResponse{
		ID:            d.ID.String(),
		Name:          d.Name,
		FrontLanguage: d.FrontLanguage,
		BackLanguage:  d.BackLanguage,
		CardCount:     d.CardCount,
	}
}

func toDraftResponse(sess *authoring.Session, d domain.CardDraft) draftResponse {
	return draftResponse{
		ID:               d.ID.String(),
		CardType:         d.CardType.String(),
		Front:            d.Front,
		Back:             d.Back,
		FrontImage:       toImageResponse(d.FrontImage),
		BackImage:        toImageResponse(d.BackImage),
		FrontAudio:       d.FrontAudio,
		BackAudio:        d.BackAudio,
		CorrectAnswers:   nonNil(d.CorrectAnswers),
		IncorrectAnswers: nonNil(d.IncorrectAnswers),
		AcceptedAnswers:  nonNil(d.AcceptedAnswers),
		Complete:         authoring.IsComplete(d),
		Pending:          pending(sess, d.ID),
	}
}

// mutationResult builds the response for an operation on draftID.
func mutationResult(sess *authoring.Session, draftID uuid.UUID, applied bool) mutationResponse {
	resp := mutationResponse{Applied: applied}
	if d, ok := sess.Draft(draftID); ok {
		dr := toDraftResponse(sess, d)
		resp.Draft = &dr
	}
	return resp
}

func toImageResponse(slot domain.ImageSlot) *imageResponse {
	if !slot.Present() {
		return nil
	}
	img := &imageResponse{URL: slot.URL}
	if slot.File != nil {
		img.FileName = slot.File.Name
		img.ContentType = slot.File.ContentType
	}
	return img
}

func pending(sess *authoring.Session, draftID uuid.UUID) []string {
	var out []string
	for _, kind := range enrichmentKinds {
		for _, side := range sides {
			if sess.InFlight(kind, draftID, side) {
				out = append(out, kind.String()+":"+side.String())
			}
		}
	}
	return out
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
