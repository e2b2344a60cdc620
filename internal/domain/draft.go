package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Collection and list bounds for draft authoring.
const (
	MinDrafts = 1
	MaxDrafts = 50

	MinArrayItems       = 1
	MaxCorrectAnswers   = 3
	MaxIncorrectAnswers = 5
	MaxAcceptedAnswers  = 10
)

// File is a local file picked by the user but not yet uploaded.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// ImageSlot holds the image attached to one side of a draft.
// File is kept after upload for local preview; URL is set once uploaded.
type ImageSlot struct {
	File *File
	URL  string
}

// Present reports whether the slot carries a file or a resolved URL.
func (s ImageSlot) Present() bool {
	return s.File != nil || s.URL != ""
}

// CardDraft is one staged, not-yet-persisted flashcard.
//
// The ID is local to the authoring session and never sent to the backend.
// Fields belonging to a card type other than CardType are kept so the user
// can switch types without losing work; only the fields of the current type
// take part in validation and submission.
type CardDraft struct {
	ID       uuid.UUID
	CardType CardType

	Front string
	Back  string

	FrontImage ImageSlot
	BackImage  ImageSlot

	FrontAudio string
	BackAudio  string

	CorrectAnswers   []string
	IncorrectAnswers []string
	AcceptedAnswers  []string
}

// Text returns the text of the given side.
func (d *CardDraft) Text(side Side) string {
	if side == SideBack {
		return d.Back
	}
	return d.Front
}

// Image returns the image slot of the given side.
func (d *CardDraft) Image(side Side) ImageSlot {
	if side == SideBack {
		return d.BackImage
	}
	return d.FrontImage
}

// Audio returns the audio URL of the given side.
func (d *CardDraft) Audio(side Side) string {
	if side == SideBack {
		return d.BackAudio
	}
	return d.FrontAudio
}

// Answers returns the list stored under key. The returned slice aliases the draft.
func (d *CardDraft) Answers(key ArrayKey) []string {
	switch key {
	case ArrayKeyCorrectAnswers:
		return d.CorrectAnswers
	case ArrayKeyIncorrectAnswers:
		return d.IncorrectAnswers
	case ArrayKeyAcceptedAnswers:
		return d.AcceptedAnswers
	}
	return nil
}

// SetAnswers replaces the list stored under key.
func (d *CardDraft) SetAnswers(key ArrayKey, items []string) {
	switch key {
	case ArrayKeyCorrectAnswers:
		d.CorrectAnswers = items
	case ArrayKeyIncorrectAnswers:
		d.IncorrectAnswers = items
	case ArrayKeyAcceptedAnswers:
		d.AcceptedAnswers = items
	}
}

// Clone returns a deep copy of the draft. File contents are shared.
func (d CardDraft) Clone() CardDraft {
	out := d
	out.CorrectAnswers = slices.Clone(d.CorrectAnswers)
	out.IncorrectAnswers = slices.Clone(d.IncorrectAnswers)
	out.AcceptedAnswers = slices.Clone(d.AcceptedAnswers)
	if d.FrontImage.File != nil {
		f := *d.FrontImage.File
		out.FrontImage.File = &f
	}
	if d.BackImage.File != nil {
		f := *d.BackImage.File
		out.BackImage.File = &f
	}
	return out
}
