package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/deck-authoring/internal/domain"
	"github.com/heartmarshall/deck-authoring/internal/service/authoring"
	"github.com/heartmarshall/deck-authoring/internal/transport/dataloader"
	"github.com/heartmarshall/deck-authoring/pkg/ctxutil"
)

type authoringService interface {
	StartSession(ctx context.Context, identity domain.Identity, deck domain.Deck, count int) (*authoring.Session, error)
	Session(userID, sessionID uuid.UUID) (*authoring.Session, error)
	EndSession(ctx context.Context, userID, sessionID uuid.UUID) error
}

// SessionHandler serves the authoring session REST endpoints.
type SessionHandler struct {
	svc            authoringService
	log            *slog.Logger
	maxUploadBytes int64
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc authoringService, logger *slog.Logger, maxUploadBytes int64) *SessionHandler {
	return &SessionHandler{
		svc:            svc,
		log:            logger.With("handler", "sessions"),
		maxUploadBytes: maxUploadBytes,
	}
}

// Mount registers the session routes on mux. enrich wraps the routes that
// call external services.
func (h *SessionHandler) Mount(mux *http.ServeMux, enrich func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /decks/{deckID}/sessions", h.Start)

	mux.HandleFunc("GET /sessions/{sessionID}", h.Get)
	mux.HandleFunc("DELETE /sessions/{sessionID}", h.End)
	mux.HandleFunc("POST /sessions/{sessionID}/open", h.Open)
	mux.HandleFunc("POST /sessions/{sessionID}/submit", h.Submit)

	mux.HandleFunc("POST /sessions/{sessionID}/drafts", h.AddDraft)
	mux.HandleFunc("PATCH /sessions/{sessionID}/drafts/{draftID}", h.PatchDraft)
	mux.HandleFunc("DELETE /sessions/{sessionID}/drafts/{draftID}", h.RemoveDraft)

	mux.Handle("POST /sessions/{sessionID}/drafts/{draftID}/translate", enrich(http.HandlerFunc(h.Translate)))
	mux.Handle("POST /sessions/{sessionID}/drafts/{draftID}/image/{side}", enrich(http.HandlerFunc(h.UploadImage)))
	mux.HandleFunc("PUT /sessions/{sessionID}/drafts/{draftID}/image/{side}", h.StageImage)
	mux.HandleFunc("DELETE /sessions/{sessionID}/drafts/{draftID}/image/{side}", h.RemoveImage)
	mux.Handle("POST /sessions/{sessionID}/drafts/{draftID}/audio/{side}", enrich(http.HandlerFunc(h.UploadAudio)))
}

// Start handles POST /decks/{deckID}/sessions.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		handleError(h.log, w, r, domain.ErrUnauthorized)
		return
	}
	deckID, err := pathUUID(r, "deckID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	deck, err := dataloader.FromContext(ctx).LoadDeck(ctx, deckID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	sess, err := h.svc.StartSession(ctx, identity, deck, req.Count)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(sess))
}

// Get handles GET /sessions/{sessionID}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

// End handles DELETE /sessions/{sessionID}: the drafts are discarded and the
// session is dropped.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	identity, ok := ctxutil.IdentityFromCtx(r.Context())
	if !ok {
		handleError(h.log, w, r, domain.ErrUnauthorized)
		return
	}
	sessionID, err := pathUUID(r, "sessionID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.EndSession(r.Context(), identity.UserID, sessionID); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Open handles POST /sessions/{sessionID}/open, starting a new round of
// drafts after a successful submit.
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := sess.Open(req.Count); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

// Submit handles POST /sessions/{sessionID}/submit. With ?mode=each drafts
// are prepared one by one and failures do not block the rest.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var (
		result authoring.SubmitResult
		err    error
	)
	switch mode := r.URL.Query().Get("mode"); mode {
	case "", "batch":
		result, err = sess.Submit(r.Context())
	case "each":
		result, err = sess.SubmitEach(r.Context())
	default:
		err = domain.NewValidationError("mode", "must be batch or each")
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		CreatedCount: result.CreatedCount,
		FailedCount:  result.FailedCount,
	})
}

// AddDraft handles POST /sessions/{sessionID}/drafts.
func (h *SessionHandler) AddDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	id, added := sess.AddDraft()
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, mutationResult(sess, id, added))
}

// RemoveDraft handles DELETE /sessions/{sessionID}/drafts/{draftID}.
func (h *SessionHandler) RemoveDraft(w http.ResponseWriter, r *http.Request) {
	sess, draftID, ok := h.draft(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Applied: sess.RemoveDraft(draftID)})
}

// PatchDraft handles PATCH /sessions/{sessionID}/drafts/{draftID}.
func (h *SessionHandler) PatchDraft(w http.ResponseWriter, r *http.Request) {
	sess, draftID, ok := h.draft(w, r)
	if !ok {
		return
	}
	var req patchRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	m, err := req.mutation()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	applied, err := sess.Patch(draftID, m)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResult(sess, draftID, applied))
}

// Translate handles POST /sessions/{sessionID}/drafts/{draftID}/translate.
func (h *SessionHandler) Translate(w http.ResponseWriter, r *http.Request) {
	sess, draftID, ok := h.draft(w, r)
	if !ok {
		return
	}
	var req translateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	applied, err := sess.Translate(r.Context(), draftID, req.Side)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResult(sess, draftID, applied))
}

// UploadImage handles POST /sessions/{sessionID}/drafts/{draftID}/image/{side}.
func (h *SessionHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	sess, draftID, ok := h.draft(w, r)
	if !ok {
		return
	}
	file, err := readUpload(w, r, h.maxUploadBytes)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	applied, err := sess.UploadImage(r.Context(), draftID, domain.Side(r.PathValue("side")), file)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResult(sess, draftID, applied))
}

// StageImage handles PUT /sessions/{sessionID}/drafts/{draftID}/image/{side}.
// The file is kept on the draft and uploaded by an each-mode submit.
func (h *SessionHandler) StageImage(w http.ResponseWriter, r *http.Request) {
	sess, draftID, ok := h.draft(w, r)
	if !ok {
		return
	}
	file, err := readUpload(w, r, h.maxUploadBytes)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	applied, err := sess.StageImage(draftID, domain.Side(r.PathValue("side")), file)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResult(sess, draftID, applied))
}

// RemoveImage handles DELETE /sessions/{sessionID}/drafts/{draftID}/image/{side}.
func (h *SessionHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	sess, draftID, ok := h.draft(w, r)
	if !ok {
		return
	}

	applied, err := sess.RemoveImage(draftID, domain.Side(r.PathValue("side")))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResult(sess, draftID, applied))
}

// UploadAudio handles POST /sessions/{sessionID}/drafts/{draftID}/audio/{side}.
func (h *SessionHandler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	sess, draftID, ok := h.draft(w, r)
	if !ok {
		return
	}
	file, err := readUpload(w, r, h.maxUploadBytes)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	applied, err := sess.UploadAudio(r.Context(), draftID, domain.Side(r.PathValue("side")), file)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResult(sess, draftID, applied))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// session resolves the caller's session from the path. On failure the error
// response has been written.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*authoring.Session, bool) {
	identity, ok := ctxutil.IdentityFromCtx(r.Context())
	if !ok {
		handleError(h.log, w, r, domain.ErrUnauthorized)
		return nil, false
	}
	sessionID, err := pathUUID(r, "sessionID")
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, false
	}
	sess, err := h.svc.Session(identity.UserID, sessionID)
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, false
	}
	return sess, true
}

func (h *SessionHandler) draft(w http.ResponseWriter, r *http.Request) (*authoring.Session, uuid.UUID, bool) {
	sess, ok := h.session(w, r)
	if !ok {
		return nil, uuid.Nil, false
	}
	draftID, err := pathUUID(r, "draftID")
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, uuid.Nil, false
	}
	return sess, draftID, true
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return nil
}
