// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/wizard"
)

// Options tunes a Service.
type Options struct {
	TTL                  time.Duration
	SeedPoolPages        int
	SeedPoolLimit        int
	MaxConcurrentFetches int
	DefaultEras          []string
}

// OptionsFromConfig builds Options from the loaded configuration.
func OptionsFromConfig(sess *config.SessionConfig, rec *config.RecommendConfig) Options {
	return Options{
		TTL:                  sess.TTL,
		SeedPoolPages:        rec.SeedPoolPages,
		SeedPoolLimit:        rec.SeedPoolLimit,
		MaxConcurrentFetches: rec.MaxConcurrentFetches,
		DefaultEras:          rec.DefaultEras,
	}
}

// CatalogPage is a list of catalog items offered during seed selection.
type CatalogPage struct {
	Items []models.Item `json:"items"`

	// Degraded is set when some catalog queries failed.
	Degraded bool `json:"degraded"`
}

// Service runs the recommendation flow for many independent sessions.
type Service struct {
	store   Store
	engine  *recommend.Engine
	gateway catalog.Gateway
	opts    Options
	locks   *keyedMutex
	logger  zerolog.Logger
	now     func() time.Time
}

// NewService creates a Service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(store Store, engine *recommend.Engine, gw catalog.Gateway, opts Options, logger zerolog.Logger) *Service {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.SeedPoolPages <= 0 {
		opts.SeedPoolPages = 5
	}
	if opts.SeedPoolLimit <= 0 {
		opts.SeedPoolLimit = 200
	}
	return &Service{
		store:   store,
		engine:  engine,
		gateway: gw,
		opts:    opts,
		locks:   newKeyedMutex(),
		logger:  logger.With().Str("component", "session").Logger(),
		now:     time.Now,
	}
}

// Create starts a new session at the welcome step.
func (s *Service) Create(ctx context.Context) (*Snapshot, error) {
	now := s.now()
	snap := &Snapshot{
		ID:          uuid.New().String(),
		State:       wizard.StateWelcome,
		Preferences: recommend.DefaultPreferences(s.opts.DefaultEras),
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now.Add(s.opts.TTL),
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.logger.Debug().Str("session_id", snap.ID).Msg("Session created")
	return snap, nil
}

// Get returns a session without touching its expiry.
func (s *Service) Get(ctx context.Context, id string) (*Snapshot, error) {
	unlock := s.locks.lock(id)
	defer unlock()
	return s.load(ctx, id)
}

// Delete removes a session.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// SweepExpired removes expired sessions and returns how many went.
func (s *Service) SweepExpired(ctx context.Context) (int, error) {
	return s.store.DeleteExpired(ctx)
}

// Count returns the number of stored sessions.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Begin leaves the welcome step.
func (s *Service) Begin(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, id, func(_ context.Context, _ *Snapshot, m *wizard.Machine) error {
		_, err := m.Fire(wizard.EventBegin, wizard.Input{})
		return err
	})
}

// ChooseIndustry records the industry filter.
func (s *Service) ChooseIndustry(ctx context.Context, id string, industry models.Industry) (*Snapshot, error) {
	if !industry.Valid() {
		return nil, fmt.Errorf("%w: industry %q", ErrInvalidChoice, industry)
	}
	return s.mutate(ctx, id, func(_ context.Context, snap *Snapshot, m *wizard.Machine) error {
		if _, err := m.Fire(wizard.EventChooseIndustry, wizard.Input{}); err != nil {
			return err
		}
		if snap.Industry != industry {
			snap.Seen = nil
		}
		snap.Industry = industry
		return nil
	})
}

// ChooseContentType records the content-type scope.
func (s *Service) ChooseContentType(ctx context.Context, id string, scope models.ContentScope) (*Snapshot, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: content type %q", ErrInvalidChoice, scope)
	}
	return s.mutate(ctx, id, func(_ context.Context, snap *Snapshot, m *wizard.Machine) error {
		if _, err := m.Fire(wizard.EventChooseContentType, wizard.Input{}); err != nil {
			return err
		}
		if snap.Scope != scope {
			snap.Seen = nil
		}
		snap.Scope = scope
		return nil
	})
}

// Popular returns the popular seed pool for the session's filters.
func (s *Service) Popular(ctx context.Context, id string) (*CatalogPage, error) {
	var page CatalogPage
	_, err := s.mutate(ctx, id, func(ctx context.Context, snap *Snapshot, m *wizard.Machine) error {
		if m.State() != wizard.StateSelection {
			return ErrWrongState
		}
		pool, err := catalog.PopularPool(ctx, s.gateway, s.logger, catalog.PopularPoolOptions{
			Scope:       snap.Scope,
			Industry:    snap.Industry,
			Pages:       s.opts.SeedPoolPages,
			Limit:       s.opts.SeedPoolLimit,
			Concurrency: s.opts.MaxConcurrentFetches,
		})
		if err != nil {
			return err
		}
		snap.remember(pool.Items)
		page = CatalogPage{Items: nonNil(pool.Items), Degraded: pool.Failed > 0}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Search looks the query up for every kind in the session's scope.
func (s *Service) Search(ctx context.Context, id, query string) (*CatalogPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	var page CatalogPage
	_, err := s.mutate(ctx, id, func(ctx context.Context, snap *Snapshot, m *wizard.Machine) error {
		if m.State() != wizard.StateSelection {
			return ErrWrongState
		}
		var queries []catalog.Query
		for _, kind := range snap.Scope.Kinds() {
			industry := snap.Industry
			queries = append(queries, catalog.Query{
				Name: "search:" + string(kind),
				Fetch: func(ctx context.Context) ([]models.Item, error) {
					return s.gateway.Search(ctx, kind, query, industry)
				},
			})
		}
		res, err := catalog.FanOut(ctx, s.logger, s.opts.MaxConcurrentFetches, queries)
		if err != nil {
			return err
		}
		snap.remember(res.Items)
		page = CatalogPage{Items: nonNil(res.Items), Degraded: res.Failed > 0}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// SubmitSelection resolves keys against the items this session has been
// offered, builds the taste profile and classifies it. The session moves to
// clarification when the profile is ambiguous and to preferences otherwise.
func (s *Service) SubmitSelection(ctx context.Context, id string, keys []models.Key) (*Snapshot, error) {
	return s.mutate(ctx, id, func(_ context.Context, snap *Snapshot, m *wizard.Machine) error {
		if !m.Can(wizard.EventSubmitSelection) {
			return rejected(m, wizard.EventSubmitSelection)
		}

		seed := make([]models.Item, 0, len(keys))
		for _, k := range keys {
			it, ok := snap.lookup(k)
			if !ok {
				return fmt.Errorf("%w: %s", recommend.ErrUnknownItem, k)
			}
			seed = append(seed, it)
		}

		profile, err := recommend.BuildProfile(seed, snap.Industry, snap.Scope)
		if err != nil {
			return err
		}
		kind := recommend.DetectAmbiguity(profile, snap.Scope)

		if _, err := m.Fire(wizard.EventSubmitSelection, wizard.Input{
			NeedsClarification: kind != recommend.ClarificationNone,
		}); err != nil {
			return err
		}

		snap.Seed = seed
		snap.Profile = profile
		snap.Clarification = kind
		snap.Answer = recommend.AnswerNone
		snap.Shown = nil
		snap.Feedback.Reset()
		snap.Recommendations = nil
		snap.Degraded = false

		metrics.RecordClarification(string(kind))
		return nil
	})
}

// AnswerClarification records the answer to the pending question.
func (s *Service) AnswerClarification(ctx context.Context, id string, answer recommend.ClarificationAnswer) (*Snapshot, error) {
	return s.mutate(ctx, id, func(_ context.Context, snap *Snapshot, m *wizard.Machine) error {
		if !m.Can(wizard.EventAnswerClarification) {
			return rejected(m, wizard.EventAnswerClarification)
		}
		if !answerAllowed(snap.Clarification, answer) {
			return fmt.Errorf("%w: %q for %q", ErrInvalidAnswer, answer, snap.Clarification)
		}
		if _, err := m.Fire(wizard.EventAnswerClarification, wizard.Input{}); err != nil {
			return err
		}
		snap.Answer = answer
		return nil
	})
}

// SetPreferences replaces the session's preferences. Allowed on the
// preferences step and, ahead of a refine, on the recommendations step.
func (s *Service) SetPreferences(ctx context.Context, id string, prefs recommend.Preferences) (*Snapshot, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	for _, g := range prefs.PreferredGenres {
		if !catalog.KnownGenre(g) {
			return nil, fmt.Errorf("%w: unknown genre %q", recommend.ErrInvalidPreferences, g)
		}
	}
	if prefs.PreferredGenres == nil {
		prefs.PreferredGenres = []models.Genre{}
	}
	if prefs.Eras == nil {
		prefs.Eras = []string{}
	}

	return s.mutate(ctx, id, func(_ context.Context, snap *Snapshot, m *wizard.Machine) error {
		switch m.State() {
		case wizard.StatePreferences, wizard.StateRecommendations:
		default:
			return ErrWrongState
		}
		snap.Preferences = prefs
		return nil
	})
}

// Recommend runs the first scoring pass and moves to the recommendations step.
func (s *Service) Recommend(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, id, func(ctx context.Context, snap *Snapshot, m *wizard.Machine) error {
		if !m.Can(wizard.EventFinishPreferences) {
			return rejected(m, wizard.EventFinishPreferences)
		}
		if err := s.score(ctx, snap); err != nil {
			return err
		}
		_, err := m.Fire(wizard.EventFinishPreferences, wizard.Input{})
		return err
	})
}

// Refine rescores with the live profile and clears the feedback labels.
// Likes already folded into the profile stay.
func (s *Service) Refine(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, id, func(ctx context.Context, snap *Snapshot, m *wizard.Machine) error {
		if !m.Can(wizard.EventRefine) {
			return rejected(m, wizard.EventRefine)
		}
		if err := s.score(ctx, snap); err != nil {
			return err
		}
		if _, err := m.Fire(wizard.EventRefine, wizard.Input{}); err != nil {
			return err
		}
		snap.Feedback.Clear()
		return nil
	})
}

// ResetPool forgets every shown item and rescores.
func (s *Service) ResetPool(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, id, func(ctx context.Context, snap *Snapshot, m *wizard.Machine) error {
		if !m.Can(wizard.EventResetPool) {
			return rejected(m, wizard.EventResetPool)
		}
		snap.Shown = nil
		if err := s.score(ctx, snap); err != nil {
			return err
		}
		if _, err := m.Fire(wizard.EventResetPool, wizard.Input{}); err != nil {
			return err
		}
		snap.Feedback.Clear()
		return nil
	})
}

// SubmitFeedback labels one of the current recommendations.
func (s *Service) SubmitFeedback(ctx context.Context, id string, key models.Key, signal recommend.Signal) (*Snapshot, error) {
	if !signal.Valid() {
		return nil, fmt.Errorf("%w: signal %q", ErrInvalidChoice, signal)
	}
	return s.mutate(ctx, id, func(_ context.Context, snap *Snapshot, m *wizard.Machine) error {
		if m.State() != wizard.StateRecommendations {
			return ErrWrongState
		}
		it, ok := snap.recommended(key)
		if !ok {
			return fmt.Errorf("%w: %s is not a current recommendation", recommend.ErrUnknownItem, key)
		}
		changed, err := snap.Feedback.Apply(snap.Profile, &it, signal)
		if err != nil {
			return err
		}
		if changed {
			metrics.RecordFeedback(string(signal))
		}
		return nil
	})
}

// Back returns to the previous step.
func (s *Service) Back(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, id, func(_ context.Context, _ *Snapshot, m *wizard.Machine) error {
		_, err := m.Fire(wizard.EventBack, wizard.Input{})
		return err
	})
}

// StartOver discards everything and returns to the welcome step.
func (s *Service) StartOver(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, id, func(_ context.Context, snap *Snapshot, m *wizard.Machine) error {
		if _, err := m.Fire(wizard.EventStartOver, wizard.Input{}); err != nil {
			return err
		}
		snap.resetFlow(recommend.DefaultPreferences(s.opts.DefaultEras))
		return nil
	})
}

// score runs one pass and stores the outcome. The shown set on snap only
// changes when the pass completes.
func (s *Service) score(ctx context.Context, snap *Snapshot) error {
	shown := recommend.NewShownSet(snap.Shown...)
	res, err := s.engine.Recommend(ctx, recommend.Request{
		Profile:     snap.Profile,
		Preferences: snap.Preferences,
		Answer:      snap.Answer,
		Shown:       shown,
	})
	if err != nil {
		return err
	}
	if errors.Is(res.Err, recommend.ErrDataSourceUnavailable) {
		s.logger.Warn().
			Str("session_id", snap.ID).
			Int("queries", res.Queries).
			Msg("Catalog unavailable, returning no recommendations")
	}

	snap.Recommendations = nonNil(res.Recommendations)
	snap.Degraded = res.Degraded
	snap.Shown = shown.Keys()
	return nil
}

type mutation func(ctx context.Context, snap *Snapshot, m *wizard.Machine) error

// mutate loads a session under its lock, applies fn and saves the result.
// Nothing is saved when fn fails or ctx is cancelled.
func (s *Service) mutate(ctx context.Context, id string, fn mutation) (*Snapshot, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	snap, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := wizard.Restore(snap.State, snap.History)
	if err != nil {
		return nil, fmt.Errorf("restore wizard: %w", err)
	}

	if err := fn(ctx, snap, m); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now()
	snap.State = m.State()
	snap.History = m.History()
	snap.UpdatedAt = now
	snap.ExpiresAt = now.Add(s.opts.TTL)

	if err := s.store.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return snap, nil
}

// load fetches a snapshot and drops it if it has expired.
func (s *Service) load(ctx context.Context, id string) (*Snapshot, error) {
	snap, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrSessionExpired) {
		if derr := s.store.Delete(ctx, id); derr != nil {
			s.logger.Warn().Err(derr).Str("session_id", id).Msg("Failed to delete expired session")
		}
		return nil, err
	}
	return snap, err
}

func rejected(m *wizard.Machine, ev wizard.Event) error {
	return &wizard.TransitionError{From: m.State(), Event: ev}
}

func answerAllowed(kind recommend.ClarificationKind, answer recommend.ClarificationAnswer) bool {
	return slices.Contains(recommend.AnswersFor(kind), answer)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
