package authoring

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// Mutation is one typed edit of a single draft. The set of mutations is
// closed: every field group has its own type, and malformed values are
// rejected by Validate before the draft is touched.
type Mutation interface {
	Validate() error
	// apply edits d in place and reports whether anything was applied.
	// A false result is a decline (e.g. a list bound was reached).
	apply(d *domain.CardDraft) bool
}

// SetText replaces the text of one side.
type SetText struct {
	Side  domain.Side
	Value string
}

func (m SetText) Validate() error { return validateSide(m.Side) }

func (m SetText) apply(d *domain.CardDraft) bool {
	if m.Side == domain.SideBack {
		d.Back = m.Value
	} else {
		d.Front = m.Value
	}
	return true
}

// SetCardType switches the draft's card type. Fields of other types are kept.
type SetCardType struct {
	CardType domain.CardType
}

func (m SetCardType) Validate() error {
	if !m.CardType.IsValid() {
		return domain.NewValidationError("cardType", fmt.Sprintf("unknown card type %q", m.CardType))
	}
	return nil
}

func (m SetCardType) apply(d *domain.CardDraft) bool {
	d.CardType = m.CardType
	return true
}

// SetImage replaces the image slot of one side.
type SetImage struct {
	Side domain.Side
	Slot domain.ImageSlot
}

func (m SetImage) Validate() error { return validateSide(m.Side) }

func (m SetImage) apply(d *domain.CardDraft) bool {
	if m.Side == domain.SideBack {
		d.BackImage = m.Slot
	} else {
		d.FrontImage = m.Slot
	}
	return true
}

// ClearImage drops both the file and the URL of one side's image.
type ClearImage struct {
	Side domain.Side
}

func (m ClearImage) Validate() error { return validateSide(m.Side) }

func (m ClearImage) apply(d *domain.CardDraft) bool {
	return SetImage{Side: m.Side}.apply(d)
}

// SetAudio replaces the audio URL of one side.
type SetAudio struct {
	Side domain.Side
	URL  string
}

func (m SetAudio) Validate() error { return validateSide(m.Side) }

func (m SetAudio) apply(d *domain.CardDraft) bool {
	if m.Side == domain.SideBack {
		d.BackAudio = m.URL
	} else {
		d.FrontAudio = m.URL
	}
	return true
}

// SetArrayItem replaces one entry of an answer list.
type SetArrayItem struct {
	Key   domain.ArrayKey
	Index int
	Value string
}

func (m SetArrayItem) Validate() error { return validateKey(m.Key) }

func (m SetArrayItem) apply(d *domain.CardDraft) bool {
	items := d.Answers(m.Key)
	if m.Index < 0 || m.Index >= len(items) {
		return false
	}
	next := slices.Clone(items)
	next[m.Index] = m.Value
	d.SetAnswers(m.Key, next)
	return true
}

// AddArrayItem appends an empty entry to an answer list unless the list is
// already at its maximum length.
type AddArrayItem struct {
	Key domain.ArrayKey
}

func (m AddArrayItem) Validate() error { return validateKey(m.Key) }

func (m AddArrayItem) apply(d *domain.CardDraft) bool {
	items := d.Answers(m.Key)
	if len(items) >= m.Key.MaxItems() {
		return false
	}
	d.SetAnswers(m.Key, append(slices.Clone(items), ""))
	return true
}

// RemoveArrayItem drops one entry of an answer list unless that would leave
// fewer than domain.MinArrayItems entries.
type RemoveArrayItem struct {
	Key   domain.ArrayKey
	Index int
}

func (m RemoveArrayItem) Validate() error { return validateKey(m.Key) }

func (m RemoveArrayItem) apply(d *domain.CardDraft) bool {
	items := d.Answers(m.Key)
	if len(items) <= domain.MinArrayItems || m.Index < 0 || m.Index >= len(items) {
		return false
	}
	d.SetAnswers(m.Key, slices.Delete(slices.Clone(items), m.Index, m.Index+1))
	return true
}

func validateSide(s domain.Side) error {
	if !s.IsValid() {
		return domain.NewValidationError("side", fmt.Sprintf("unknown side %q", s))
	}
	return nil
}

func validateKey(k domain.ArrayKey) error {
	if !k.IsValid() {
		return domain.NewValidationError("key", fmt.Sprintf("unknown answer list %q", k))
	}
	return nil
}
