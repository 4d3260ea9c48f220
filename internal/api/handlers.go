// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/auth"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/session"
)

// SessionService is the flow the handlers drive. *session.Service implements it.
type SessionService interface {
	Create(ctx context.Context) (*session.Snapshot, error)
	Get(ctx context.Context, id string) (*session.Snapshot, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)

	Begin(ctx context.Context, id string) (*session.Snapshot, error)
	ChooseIndustry(ctx context.Context, id string, industry models.Industry) (*session.Snapshot, error)
	ChooseContentType(ctx context.Context, id string, scope models.ContentScope) (*session.Snapshot, error)
	Popular(ctx context.Context, id string) (*session.CatalogPage, error)
	Search(ctx context.Context, id, query string) (*session.CatalogPage, error)
	SubmitSelection(ctx context.Context, id string, keys []models.Key) (*session.Snapshot, error)
	AnswerClarification(ctx context.Context, id string, answer recommend.ClarificationAnswer) (*session.Snapshot, error)
	SetPreferences(ctx context.Context, id string, prefs recommend.Preferences) (*session.Snapshot, error)
	Recommend(ctx context.Context, id string) (*session.Snapshot, error)
	Refine(ctx context.Context, id string) (*session.Snapshot, error)
	ResetPool(ctx context.Context, id string) (*session.Snapshot, error)
	SubmitFeedback(ctx context.Context, id string, key models.Key, signal recommend.Signal) (*session.Snapshot, error)
	Back(ctx context.Context, id string) (*session.Snapshot, error)
	StartOver(ctx context.Context, id string) (*session.Snapshot, error)
}

// CatalogStatus reports upstream health. *catalog.CircuitBreakerGateway implements it.
type CatalogStatus interface {
	State() string
}

// Handler serves the session API.
type Handler struct {
	sessions          SessionService
	tokens            *auth.TokenManager
	catalog           CatalogStatus
	catalogConfigured bool
	requestTimeout    time.Duration
	startTime         time.Time
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	Catalog           CatalogStatus
	CatalogConfigured bool

	// RequestTimeout bounds catalog-backed calls. Zero means no limit.
	RequestTimeout time.Duration
}

// NewHandler creates a handler.
func NewHandler(sessions SessionService, tokens *auth.TokenManager, opts HandlerOptions) *Handler {
	return &Handler{
		sessions:          sessions,
		tokens:            tokens,
		catalog:           opts.Catalog,
		catalogConfigured: opts.CatalogConfigured,
		requestTimeout:    opts.RequestTimeout,
		startTime:         time.Now(),
	}
}

// sessionID returns the {id} path parameter.
func sessionID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// bounded derives a context limited by the request timeout.
func (h *Handler) bounded(r *http.Request) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.requestTimeout)
}

// respondSnapshot writes the session view or the mapped error.
func respondSnapshot(rw *ResponseWriter, snap *session.Snapshot, err error) {
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.SuccessDegraded(newSessionView(snap), snap.Degraded)
}

// CreateSession handles POST /sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	snap, err := h.sessions.Create(r.Context())
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	token, err := h.tokens.Issue(snap.ID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Created(CreatedSession{
		SessionID: snap.ID,
		Token:     token,
		State:     snap.State,
		ExpiresAt: snap.ExpiresAt,
	})
}

// GetSession handles GET /sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Get(r.Context(), sessionID(r))
	respondSnapshot(NewResponseWriter(w, r), snap, err)
}

// DeleteSession handles DELETE /sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if err := h.sessions.Delete(r.Context(), sessionID(r)); err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.NoContent()
}

// Begin handles POST /sessions/{id}/begin.
func (h *Handler) Begin(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Begin(r.Context(), sessionID(r))
	respondSnapshot(NewResponseWriter(w, r), snap, err)
}

// ChooseIndustry handles POST /sessions/{id}/industry.
func (h *Handler) ChooseIndustry(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req IndustryRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}
	snap, err := h.sessions.ChooseIndustry(r.Context(), sessionID(r), models.Industry(req.Industry))
	respondSnapshot(rw, snap, err)
}

// ChooseContentType handles POST /sessions/{id}/content-type.
func (h *Handler) ChooseContentType(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req ContentTypeRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}
	snap, err := h.sessions.ChooseContentType(r.Context(), sessionID(r), models.ContentScope(req.ContentType))
	respondSnapshot(rw, snap, err)
}

// Popular handles GET /sessions/{id}/popular.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx, cancel := h.bounded(r)
	defer cancel()

	page, err := h.sessions.Popular(ctx, sessionID(r))
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.SuccessDegraded(page, page.Degraded)
}

// Search handles GET /sessions/{id}/search?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req := SearchRequest{Query: r.URL.Query().Get("q")}
	if !validate(rw, &req) {
		return
	}

	ctx, cancel := h.bounded(r)
	defer cancel()
	page, err := h.sessions.Search(ctx, sessionID(r), req.Query)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.SuccessDegraded(page, page.Degraded)
}

// SubmitSelection handles POST /sessions/{id}/selection.
func (h *Handler) SubmitSelection(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req SelectionRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}
	snap, err := h.sessions.SubmitSelection(r.Context(), sessionID(r), req.Keys())
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(SelectionResult{
		Clarification: snap.Clarification,
		Answers:       recommend.AnswersFor(snap.Clarification),
		State:         snap.State,
	})
}

// AnswerClarification handles POST /sessions/{id}/clarification.
func (h *Handler) AnswerClarification(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req ClarificationRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}
	snap, err := h.sessions.AnswerClarification(r.Context(), sessionID(r), recommend.ClarificationAnswer(req.Answer))
	respondSnapshot(rw, snap, err)
}

// SetPreferences handles PUT /sessions/{id}/preferences.
func (h *Handler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req PreferencesRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}
	snap, err := h.sessions.SetPreferences(r.Context(), sessionID(r), req.Preferences())
	respondSnapshot(rw, snap, err)
}

// Recommend handles POST /sessions/{id}/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	h.score(w, r, h.sessions.Recommend)
}

// Refine handles POST /sessions/{id}/refine.
func (h *Handler) Refine(w http.ResponseWriter, r *http.Request) {
	h.score(w, r, h.sessions.Refine)
}

// ResetPool handles POST /sessions/{id}/reset-pool.
func (h *Handler) ResetPool(w http.ResponseWriter, r *http.Request) {
	h.score(w, r, h.sessions.ResetPool)
}

func (h *Handler) score(w http.ResponseWriter, r *http.Request, run func(context.Context, string) (*session.Snapshot, error)) {
	ctx, cancel := h.bounded(r)
	defer cancel()
	snap, err := run(ctx, sessionID(r))
	respondSnapshot(NewResponseWriter(w, r), snap, err)
}

// SubmitFeedback handles POST /sessions/{id}/feedback.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req FeedbackRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}
	snap, err := h.sessions.SubmitFeedback(r.Context(), sessionID(r), req.Key(), recommend.Signal(req.Signal))
	respondSnapshot(rw, snap, err)
}

// Back handles POST /sessions/{id}/back.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Back(r.Context(), sessionID(r))
	respondSnapshot(NewResponseWriter(w, r), snap, err)
}

// StartOver handles POST /sessions/{id}/start-over.
func (h *Handler) StartOver(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.StartOver(r.Context(), sessionID(r))
	respondSnapshot(NewResponseWriter(w, r), snap, err)
}
