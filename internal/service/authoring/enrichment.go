package authoring

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// taskKey identifies one enrichment task. At most one task per key is in
// flight at a time; the three kinds are tracked independently.
type taskKey struct {
	kind    domain.EnrichmentKind
	draftID uuid.UUID
	side    domain.Side
}

// InFlight reports whether an enrichment of the given kind is running for
// the draft side.
func (s *Session) InFlight(kind domain.EnrichmentKind, draftID uuid.UUID, side domain.Side) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[taskKey{kind: kind, draftID: draftID, side: side}]
	return ok
}

// Translate replaces the text of one side of a draft with its translation
// into the deck's language for that side.
//
// It declines (false, nil) when the caller is not entitled to translation,
// the deck has no language for the side, the source text is empty, the
// draft does not exist, or a translation for the same draft side is already
// running. A collaborator failure leaves the draft unchanged.
func (s *Session) Translate(ctx context.Context, draftID uuid.UUID, side domain.Side) (bool, error) {
	if err := validateSide(side); err != nil {
		return false, err
	}
	key := taskKey{kind: domain.EnrichmentTranslate, draftID: draftID, side: side}

	s.mu.Lock()
	d, ok := s.drafts.Get(draftID)
	lang := s.deck.Language(side)
	text := strings.TrimSpace(d.Text(side))
	if !ok || !s.identity.Premium || lang == "" || text == "" || !s.beginLocked(key) {
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()
	defer s.end(key)

	translated, err := s.svc.translator.Translate(ctx, s.identity.Token, text, lang)
	if err != nil {
		s.log.WarnContext(ctx, "translate failed",
			slog.String("draft_id", draftID.String()),
			slog.String("side", side.String()),
			slog.String("error", err.Error()),
		)
		return false, domain.UpstreamError("translate", err)
	}

	return s.applyResult(ctx, key, SetText{Side: side, Value: translated}), nil
}

// UploadImage uploads file as the image of one side of a draft. On success
// the slot holds both the resolved URL and the original file for preview.
func (s *Session) UploadImage(ctx context.Context, draftID uuid.UUID, side domain.Side, file domain.File) (bool, error) {
	if err := validateSide(side); err != nil {
		return false, err
	}
	if len(file.Content) == 0 {
		return false, domain.NewValidationError("file", "required")
	}
	key := taskKey{kind: domain.EnrichmentImage, draftID: draftID, side: side}

	if !s.begin(key) {
		return false, nil
	}
	defer s.end(key)

	url, err := s.svc.images.UploadImage(ctx, s.identity.Token, file)
	if err != nil {
		s.log.WarnContext(ctx, "image upload failed",
			slog.String("draft_id", draftID.String()),
			slog.String("side", side.String()),
			slog.String("error", err.Error()),
		)
		return false, domain.UpstreamError("upload image", err)
	}

	return s.applyResult(ctx, key, SetImage{Side: side, Slot: domain.ImageSlot{File: &file, URL: url}}), nil
}

// RemoveImage clears the image of one side of a draft. No network call is made.
func (s *Session) RemoveImage(draftID uuid.UUID, side domain.Side) (bool, error) {
	return s.Patch(draftID, ClearImage{Side: side})
}

// StageImage attaches file to one side of a draft without uploading it.
// The slot has no URL until SubmitEach uploads it. It declines while an
// upload for the same slot is in flight.
func (s *Session) StageImage(draftID uuid.UUID, side domain.Side, file domain.File) (bool, error) {
	if err := validateSide(side); err != nil {
		return false, err
	}
	if len(file.Content) == 0 {
		return false, domain.NewValidationError("file", "required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[taskKey{kind: domain.EnrichmentImage, draftID: draftID, side: side}]; busy {
		return false, nil
	}
	s.touchLocked()
	return s.drafts.Apply(draftID, SetImage{Side: side, Slot: domain.ImageSlot{File: &file}}), nil
}

// UploadAudio uploads file as the audio of one side of a draft and stores
// the resolved URL.
func (s *Session) UploadAudio(ctx context.Context, draftID uuid.UUID, side domain.Side, file domain.File) (bool, error) {
	if err := validateSide(side); err != nil {
		return false, err
	}
	if len(file.Content) == 0 {
		return false, domain.NewValidationError("file", "required")
	}
	key := taskKey{kind: domain.EnrichmentAudio, draftID: draftID, side: side}

	if !s.begin(key) {
		return false, nil
	}
	defer s.end(key)

	url, err := s.svc.audio.UploadAudio(ctx, file)
	if err != nil {
		s.log.WarnContext(ctx, "audio upload failed",
			slog.String("draft_id", draftID.String()),
			slog.String("side", side.String()),
			slog.String("error", err.Error()),
		)
		return false, domain.UpstreamError("upload audio", err)
	}

	return s.applyResult(ctx, key, SetAudio{Side: side, URL: url}), nil
}

// begin marks key as in flight if the draft exists and no task for key is
// running.
func (s *Session) begin(key taskKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drafts.Has(key.draftID) {
		return false
	}
	return s.beginLocked(key)
}

func (s *Session) beginLocked(key taskKey) bool {
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	s.touchLocked()
	return true
}

func (s *Session) end(key taskKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}

// applyResult applies an enrichment result if the draft still exists.
// Results for drafts removed in the meantime are dropped.
func (s *Session) applyResult(ctx context.Context, key taskKey, m Mutation) bool {
	s.mu.Lock()
	applied := s.drafts.Apply(key.draftID, m)
	s.mu.Unlock()

	if !applied {
		s.log.DebugContext(ctx, "enrichment result discarded",
			slog.String("kind", key.kind.String()),
			slog.String("draft_id", key.draftID.String()),
		)
		return false
	}

	s.log.DebugContext(ctx, "enrichment applied",
		slog.String("kind", key.kind.String()),
		slog.String("draft_id", key.draftID.String()),
		slog.String("side", key.side.String()),
	)
	return true
}
