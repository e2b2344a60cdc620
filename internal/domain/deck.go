package domain

import (
	"time"

	"github.com/google/uuid"
)

// Deck is the persisted container new cards are committed into.
type Deck struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	FrontLanguage *string
	BackLanguage  *string
	CardCount     int
	CreatedAt     time.Time
}

// Language returns the configured translation target for side, or "" if none.
func (d *Deck) Language(side Side) string {
	var lang *string
	if side == SideBack {
		lang = d.BackLanguage
	} else {
		lang = d.FrontLanguage
	}
	if lang == nil {
		return ""
	}
	return *lang
}

// Identity is the authenticated caller of an authoring session.
// Token is forwarded to collaborators that require it.
type Identity struct {
	UserID  uuid.UUID
	Token   string
	Premium bool
}
