package authoring

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"
	"github.com/heartmarshall/deck-authoring/internal/domain"
)

// SubmitResult reports the outcome of a submission.
type SubmitResult struct {
	CreatedCount int
	FailedCount  int
}

// Submit commits every complete draft to the deck in one batch create call,
// in collection order. With no complete drafts it declines and returns a
// zero result.
//
// The batch is atomic from the session's point of view. On success the
// deck's card count grows by the number created and the session returns to
// the count step with an empty collection. On failure the collection is left
// intact so the user can retry.
func (s *Session) Submit(ctx context.Context) (SubmitResult, error) {
	s.mu.Lock()
	complete := CompleteDrafts(s.drafts.List())
	if s.submitting || len(complete) == 0 {
		s.mu.Unlock()
		return SubmitResult{}, nil
	}
	s.submitting = true
	deckID := s.deck.ID
	s.mu.Unlock()

	records := ToRecords(complete)
	created, err := s.svc.cards.CreateBatch(ctx, deckID, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		s.log.ErrorContext(ctx, "batch create failed",
			slog.Int("records", len(records)),
			slog.String("error", err.Error()),
		)
		return SubmitResult{}, domain.UpstreamError("create cards batch", err)
	}

	result := SubmitResult{CreatedCount: len(created)}
	if missing := len(records) - len(created); missing > 0 {
		result.FailedCount = missing
	}
	s.deck.CardCount += result.CreatedCount
	s.resetLocked()

	s.log.InfoContext(ctx, "cards submitted",
		slog.String("deck_id", deckID.String()),
		slog.Int("created", result.CreatedCount),
		slog.Int("failed", result.FailedCount),
	)

	return result, nil
}

// prepared is one complete draft in the per-card path, with the URLs of any
// images uploaded for it.
type prepared struct {
	draft    domain.CardDraft
	frontURL string
	backURL  string
	failed   bool
}

// SubmitEach is the per-card variant of Submit. Pending image files of each
// complete draft are uploaded first; a draft whose upload fails is counted
// as failed and left out of the batch while the others proceed. The
// prepared drafts are then created in one batch call.
//
// Created drafts are removed from the collection. Failed drafts stay, with
// any image that did upload applied, so they can be retried. When nothing
// failed the session returns to the count step.
func (s *Session) SubmitEach(ctx context.Context) (SubmitResult, error) {
	s.mu.Lock()
	complete := CompleteDrafts(s.drafts.List())
	if s.submitting || len(complete) == 0 {
		s.mu.Unlock()
		return SubmitResult{}, nil
	}
	s.submitting = true
	deckID := s.deck.ID
	s.mu.Unlock()

	items := s.uploadPending(ctx, complete)

	var (
		records []domain.CardRecord
		sent    []uuid.UUID
		failed  int
	)
	for i := range items {
		it := &items[i]
		if it.failed {
			failed++
			continue
		}
		d := it.draft
		if it.frontURL != "" {
			d.FrontImage.URL = it.frontURL
		}
		if it.backURL != "" {
			d.BackImage.URL = it.backURL
		}
		records = append(records, ToRecord(d))
		sent = append(sent, d.ID)
	}

	var created []domain.CreatedCard
	var err error
	if len(records) > 0 {
		created, err = s.svc.cards.CreateBatch(ctx, deckID, records)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		s.log.ErrorContext(ctx, "batch create failed",
			slog.Int("records", len(records)),
			slog.String("error", err.Error()),
		)
		s.applyUploadsLocked(items)
		return SubmitResult{FailedCount: failed}, domain.UpstreamError("create cards batch", err)
	}

	result := SubmitResult{CreatedCount: len(created), FailedCount: failed}
	if missing := len(records) - len(created); missing > 0 {
		result.FailedCount += missing
	}
	s.deck.CardCount += result.CreatedCount

	if result.FailedCount == 0 {
		s.resetLocked()
	} else {
		for _, id := range sent {
			s.drafts.Remove(id)
		}
		s.applyUploadsLocked(items)
	}

	s.log.InfoContext(ctx, "cards submitted one by one",
		slog.String("deck_id", deckID.String()),
		slog.Int("created", result.CreatedCount),
		slog.Int("failed", result.FailedCount),
	)

	return result, nil
}

// uploadPending uploads the image files that have no URL yet, with bounded
// concurrency. Failures are recorded per draft and never cancel siblings.
// A draft stops uploading at its first failure since it will not be created.
func (s *Session) uploadPending(ctx context.Context, drafts []domain.CardDraft) []prepared {
	items := make([]prepared, len(drafts))

	var g errgroup.Group
	g.SetLimit(s.svc.cfg.UploadConcurrency)

	for i, d := range drafts {
		items[i].draft = d
		it := &items[i]
		g.Go(func() error {
			for _, side := range imageSides(d.CardType) {
				slot := d.Image(side)
				if slot.File == nil || slot.URL != "" {
					continue
				}
				url, err := s.svc.images.UploadImage(ctx, s.identity.Token, *slot.File)
				if err != nil {
					s.log.WarnContext(ctx, "image upload failed",
						slog.String("draft_id", d.ID.String()),
						slog.String("side", side.String()),
						slog.String("error", err.Error()),
					)
					it.failed = true
					break
				}
				if side == domain.SideBack {
					it.backURL = url
				} else {
					it.frontURL = url
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	return items
}

// applyUploadsLocked stores URLs uploaded during SubmitEach on drafts still
// in the collection so a retry does not upload them again.
func (s *Session) applyUploadsLocked(items []prepared) {
	for _, it := range items {
		if it.frontURL != "" {
			slot := it.draft.FrontImage
			slot.URL = it.frontURL
			s.drafts.Apply(it.draft.ID, SetImage{Side: domain.SideFront, Slot: slot})
		}
		if it.backURL != "" {
			slot := it.draft.BackImage
			slot.URL = it.backURL
			s.drafts.Apply(it.draft.ID, SetImage{Side: domain.SideBack, Slot: slot})
		}
	}
}

// imageSides returns the sides whose images a card type submits.
func imageSides(t domain.CardType) []domain.Side {
	if t == domain.CardTypeMultipleChoice {
		return []domain.Side{domain.SideFront}
	}
	return []domain.Side{domain.SideFront, domain.SideBack}
}
