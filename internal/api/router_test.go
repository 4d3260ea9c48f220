// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/auth"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/session"
)

// stubCatalog serves a fixed popular page and synthesized discover pages.
type stubCatalog struct {
	down atomic.Bool
}

func (s *stubCatalog) Popular(_ context.Context, kind models.Kind, _ models.Industry, page int) ([]models.Item, error) {
	if s.down.Load() {
		return nil, errors.New("catalog down")
	}
	if page != 1 || kind != models.KindMovie {
		return nil, nil
	}
	return []models.Item{
		{ID: 1, Kind: models.KindMovie, Title: "Heat", Genres: []models.Genre{"Action", "Crime"}, Popularity: 50, Year: 1995},
		{ID: 2, Kind: models.KindMovie, Title: "Ronin", Genres: []models.Genre{"Action", "Thriller"}, Popularity: 40, Year: 1998},
		{ID: 3, Kind: models.KindMovie, Title: "Drive", Genres: []models.Genre{"Crime", "Drama"}, Popularity: 30, Year: 2011},
	}, nil
}

func (s *stubCatalog) Search(context.Context, models.Kind, string, models.Industry) ([]models.Item, error) {
	return nil, nil
}

func (s *stubCatalog) DiscoverByGenre(_ context.Context, q catalog.DiscoverQuery) ([]models.Item, error) {
	if s.down.Load() {
		return nil, errors.New("catalog down")
	}
	code, _ := catalog.GenreCode(q.Genre)
	return []models.Item{{
		ID:          int64(10000 + code*100 + q.Page),
		Kind:        q.Kind,
		Title:       "candidate",
		Genres:      []models.Genre{"Action"},
		Popularity:  40,
		VoteAverage: 8,
		Year:        2015,
	}}, nil
}

type testServer struct {
	srv     *httptest.Server
	catalog *stubCatalog
}

func newTestServer(t *testing.T, cfg RouterConfig) *testServer {
	t.Helper()
	gw := &stubCatalog{}
	engine, err := recommend.NewEngine(gw, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	svc := session.NewService(session.NewMemoryStore(), engine, gw, session.Options{TTL: time.Hour}, zerolog.Nop())
	tokens, err := auth.NewTokenManager("", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	h := NewHandler(svc, tokens, HandlerOptions{CatalogConfigured: true, RequestTimeout: 5 * time.Second})
	srv := httptest.NewServer(NewRouter(h, cfg))
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, catalog: gw}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode, env
}

func (ts *testServer) create(t *testing.T) (id, token string) {
	t.Helper()
	status, env := ts.do(t, http.MethodPost, "/api/v1/sessions", "", nil)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	var created CreatedSession
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.State != "welcome" || created.Token == "" {
		t.Fatalf("created = %+v", created)
	}
	return created.SessionID, created.Token
}

// toSelection walks a session to the selection step and loads the popular pool.
func (ts *testServer) toSelection(t *testing.T) (id, token string) {
	t.Helper()
	id, token = ts.create(t)
	base := "/api/v1/sessions/" + id
	steps := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/begin", nil},
		{http.MethodPost, "/industry", IndustryRequest{Industry: "hollywood"}},
		{http.MethodPost, "/content-type", ContentTypeRequest{ContentType: "movie"}},
		{http.MethodGet, "/popular", nil},
	}
	for _, s := range steps {
		if status, env := ts.do(t, s.method, base+s.path, token, s.body); status != http.StatusOK {
			t.Fatalf("%s %s = %d %+v", s.method, s.path, status, env.Error)
		}
	}
	return id, token
}

func seedBody(ids ...int64) SelectionRequest {
	req := SelectionRequest{}
	for _, id := range ids {
		req.Items = append(req.Items, ItemRef{ID: id, Kind: "movie"})
	}
	return req
}

func TestAPI_FullFlow(t *testing.T) {
	ts := newTestServer(t, RouterConfig{RateLimitDisabled: true})
	id, token := ts.toSelection(t)
	base := "/api/v1/sessions/" + id

	status, env := ts.do(t, http.MethodPost, base+"/selection", token, seedBody(1, 2, 3))
	if status != http.StatusOK {
		t.Fatalf("selection = %d %+v", status, env.Error)
	}
	var sel SelectionResult
	_ = json.Unmarshal(env.Data, &sel)
	if sel.Clarification != recommend.ClarificationNone || sel.State != "preferences" {
		t.Fatalf("selection result = %+v", sel)
	}

	prefs := PreferencesRequest{
		PreferredGenres: []string{"Action"},
		Mood:            50, Pace: 50, EpisodeLength: 50, BingePreference: 50, SeasonCommitment: 50,
		Eras:           []string{"2010s"},
		DiscoveryStyle: "mixed",
	}
	if status, env := ts.do(t, http.MethodPut, base+"/preferences", token, prefs); status != http.StatusOK {
		t.Fatalf("preferences = %d %+v", status, env.Error)
	}

	status, env = ts.do(t, http.MethodPost, base+"/recommendations", token, nil)
	if status != http.StatusOK {
		t.Fatalf("recommendations = %d %+v", status, env.Error)
	}
	var view SessionView
	_ = json.Unmarshal(env.Data, &view)
	if view.State != "recommendations" || len(view.Recommendations) != 5 || view.ShownCount != 5 {
		t.Fatalf("view = state %s, %d recs, %d shown", view.State, len(view.Recommendations), view.ShownCount)
	}
	if env.Meta.Degraded {
		t.Error("healthy catalog flagged as degraded")
	}

	liked := view.Recommendations[0].Item
	fb := FeedbackRequest{ItemRef: ItemRef{ID: liked.ID, Kind: string(liked.Kind)}, Signal: "like"}
	status, env = ts.do(t, http.MethodPost, base+"/feedback", token, fb)
	if status != http.StatusOK {
		t.Fatalf("feedback = %d %+v", status, env.Error)
	}
	_ = json.Unmarshal(env.Data, &view)
	if view.Recommendations[0].Feedback != recommend.SignalLike {
		t.Errorf("feedback label = %q", view.Recommendations[0].Feedback)
	}

	status, env = ts.do(t, http.MethodPost, base+"/refine", token, nil)
	if status != http.StatusOK {
		t.Fatalf("refine = %d %+v", status, env.Error)
	}
	_ = json.Unmarshal(env.Data, &view)
	if view.ShownCount != 10 {
		t.Errorf("shown after refine = %d, want 10", view.ShownCount)
	}
	for _, rec := range view.Recommendations {
		if rec.Item.Key() == liked.Key() {
			t.Errorf("refine repeated %s", liked.Key())
		}
	}

	status, env = ts.do(t, http.MethodPost, base+"/start-over", token, nil)
	if status != http.StatusOK {
		t.Fatalf("start-over = %d", status)
	}
	_ = json.Unmarshal(env.Data, &view)
	if view.State != "welcome" || view.ShownCount != 0 {
		t.Errorf("after start-over: %s, %d shown", view.State, view.ShownCount)
	}

	if status, _ := ts.do(t, http.MethodDelete, base, token, nil); status != http.StatusNoContent {
		t.Errorf("delete = %d", status)
	}
	if status, _ := ts.do(t, http.MethodGet, base, token, nil); status != http.StatusNotFound {
		t.Errorf("get after delete = %d", status)
	}
}

func TestAPI_Auth(t *testing.T) {
	ts := newTestServer(t, RouterConfig{RateLimitDisabled: true})
	id, token := ts.create(t)
	otherID, _ := ts.create(t)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
		code   string
	}{
		{"no token", "/api/v1/sessions/" + id, "", http.StatusUnauthorized, ErrCodeUnauthorized},
		{"garbage token", "/api/v1/sessions/" + id, "nope", http.StatusUnauthorized, ErrCodeUnauthorized},
		{"other session", "/api/v1/sessions/" + otherID, token, http.StatusForbidden, ErrCodeForbidden},
		{"own session", "/api/v1/sessions/" + id, token, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := ts.do(t, http.MethodGet, tt.path, tt.token, nil)
			if status != tt.status {
				t.Fatalf("status = %d, want %d", status, tt.status)
			}
			if tt.code != "" && (env.Error == nil || env.Error.Code != tt.code) {
				t.Errorf("error = %+v, want code %s", env.Error, tt.code)
			}
		})
	}
}

func TestAPI_Errors(t *testing.T) {
	ts := newTestServer(t, RouterConfig{RateLimitDisabled: true})
	id, token := ts.toSelection(t)
	base := "/api/v1/sessions/" + id

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"short seed", http.MethodPost, "/selection", seedBody(1, 2), http.StatusUnprocessableEntity, ErrCodeInsufficientSeed},
		{"unknown item", http.MethodPost, "/selection", seedBody(1, 2, 77), http.StatusBadRequest, ErrCodeValidation},
		{"bad kind", http.MethodPost, "/selection", SelectionRequest{Items: []ItemRef{{ID: 1, Kind: "book"}}}, http.StatusBadRequest, ErrCodeValidation},
		{"wrong step", http.MethodPost, "/recommendations", nil, http.StatusConflict, ErrCodeInvalidState},
		{"wrong step for industry", http.MethodPost, "/industry", IndustryRequest{Industry: "both"}, http.StatusConflict, ErrCodeInvalidState},
		{"invalid industry", http.MethodPost, "/industry", IndustryRequest{Industry: "nollywood"}, http.StatusBadRequest, ErrCodeValidation},
		{"unknown field", http.MethodPost, "/industry", map[string]string{"industry": "both", "extra": "x"}, http.StatusBadRequest, ErrCodeValidation},
		{"empty search", http.MethodGet, "/search?q=", nil, http.StatusBadRequest, ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := ts.do(t, tt.method, base+tt.path, token, tt.body)
			if status != tt.status {
				t.Fatalf("status = %d, want %d (%+v)", status, tt.status, env.Error)
			}
			if env.Success || env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("error = %+v, want %s", env.Error, tt.code)
			}
			if env.Error != nil && env.Error.RequestID == "" {
				t.Error("error lacks request_id")
			}
		})
	}
}

func TestAPI_DegradedCatalog(t *testing.T) {
	ts := newTestServer(t, RouterConfig{RateLimitDisabled: true})
	id, token := ts.toSelection(t)
	base := "/api/v1/sessions/" + id
	if status, _ := ts.do(t, http.MethodPost, base+"/selection", token, seedBody(1, 2, 3)); status != http.StatusOK {
		t.Fatalf("selection = %d", status)
	}

	ts.catalog.down.Store(true)
	status, env := ts.do(t, http.MethodPost, base+"/recommendations", token, nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var view SessionView
	_ = json.Unmarshal(env.Data, &view)
	if !env.Meta.Degraded || len(view.Recommendations) != 0 {
		t.Errorf("degraded = %v, recs = %d", env.Meta.Degraded, len(view.Recommendations))
	}
}

func TestAPI_RateLimit(t *testing.T) {
	ts := newTestServer(t, RouterConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute})
	for i := range 2 {
		if status, _ := ts.do(t, http.MethodPost, "/api/v1/sessions", "", nil); status != http.StatusCreated {
			t.Fatalf("request %d status = %d", i, status)
		}
	}
	status, env := ts.do(t, http.MethodPost, "/api/v1/sessions", "", nil)
	if status != http.StatusTooManyRequests || env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("third request = %d %+v", status, env.Error)
	}
}

func TestAPI_HealthAndNotFound(t *testing.T) {
	ts := newTestServer(t, RouterConfig{RateLimitDisabled: true})

	status, env := ts.do(t, http.MethodGet, "/api/v1/health", "", nil)
	if status != http.StatusOK {
		t.Fatalf("health = %d", status)
	}
	var health HealthStatus
	_ = json.Unmarshal(env.Data, &health)
	if health.Status != "healthy" || !health.CatalogConfigured {
		t.Errorf("health = %+v", health)
	}

	status, env = ts.do(t, http.MethodGet, "/api/v1/nope", "", nil)
	if status != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route = %d %+v", status, env.Error)
	}
}
