package authoring

import (
	"github.com/google/uuid"
	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// Collection is the ordered set of drafts of one authoring session, keyed by
// draft id. It is not safe for concurrent use; Session serializes access.
//
// Every edit follows read, compute, replace: the stored draft is cloned, the
// mutation runs on the clone, and the clone replaces the original only when
// the mutation applied. Readers holding an earlier snapshot never observe a
// half-applied edit.
type Collection struct {
	order []uuid.UUID
	items map[uuid.UUID]*domain.CardDraft
}

// NewCollection creates a collection holding drafts in the given order.
func NewCollection(drafts []domain.CardDraft) *Collection {
	c := &Collection{
		order: make([]uuid.UUID, 0, len(drafts)),
		items: make(map[uuid.UUID]*domain.CardDraft, len(drafts)),
	}
	for _, d := range drafts {
		c.append(d)
	}
	return c
}

// Len returns the number of drafts.
func (c *Collection) Len() int { return len(c.order) }

// Has reports whether a draft with the id exists.
func (c *Collection) Has(id uuid.UUID) bool {
	_, ok := c.items[id]
	return ok
}

// Get returns a copy of the draft with the id.
func (c *Collection) Get(id uuid.UUID) (domain.CardDraft, bool) {
	d, ok := c.items[id]
	if !ok {
		return domain.CardDraft{}, false
	}
	return d.Clone(), true
}

// List returns copies of all drafts in order.
func (c *Collection) List() []domain.CardDraft {
	out := make([]domain.CardDraft, len(c.order))
	for i, id := range c.order {
		out[i] = c.items[id].Clone()
	}
	return out
}

// Add appends a new empty draft. It declines once the collection holds
// domain.MaxDrafts drafts.
func (c *Collection) Add() (uuid.UUID, bool) {
	if len(c.order) >= domain.MaxDrafts {
		return uuid.Nil, false
	}
	d := NewEmptyDraft(uuid.New())
	c.append(d)
	return d.ID, true
}

// Remove deletes the draft with the id. The collection may become empty.
func (c *Collection) Remove(id uuid.UUID) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Apply runs m against the draft with the id. It reports false when the
// draft does not exist, the mutation is malformed, or the mutation declined.
func (c *Collection) Apply(id uuid.UUID, m Mutation) bool {
	cur, ok := c.items[id]
	if !ok || m.Validate() != nil {
		return false
	}

	next := cur.Clone()
	if !m.apply(&next) {
		return false
	}
	c.items[id] = &next
	return true
}

func (c *Collection) append(d domain.CardDraft) {
	cp := d.Clone()
	c.order = append(c.order, cp.ID)
	c.items[cp.ID] = &cp
}
