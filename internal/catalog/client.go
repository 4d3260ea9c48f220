// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// maxErrorBodySize bounds how much of a failed response body is read for the error message.
const maxErrorBodySize = 64 * 1024

// Client talks to the catalog HTTP API. It throttles itself with a token
// bucket and never retries; callers decide what a failed page means.
//
// Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	http       *http.Client
	limiter    *rate.Limiter
	normalizer *Normalizer
	logger     zerolog.Logger
}

// NewClient builds a Client from catalog configuration.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg *config.CatalogConfig, logger zerolog.Logger) *Client {
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		http:       &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		normalizer: NewNormalizer(cfg.ImageBaseURL),
		logger:     logger.With().Str("component", "catalog").Logger(),
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Popular implements Gateway.
func (c *Client) Popular(ctx context.Context, kind models.Kind, industry models.Industry, page int) ([]models.Item, error) {
	var items []models.Item

	if industry == models.IndustryHollywood || industry == models.IndustryBoth {
		params := url.Values{}
		params.Set("language", "en-US")
		params.Set("page", strconv.Itoa(page))
		got, err := c.fetch(ctx, "popular", "/"+pathSegment(kind)+"/popular", params, kind)
		if err != nil {
			return nil, err
		}
		items = append(items, got...)
	}

	if industry == models.IndustryBollywood || industry == models.IndustryBoth {
		params := url.Values{}
		params.Set("with_original_language", languageFilter(models.IndustryBollywood))
		params.Set("sort_by", string(SortPopularity))
		params.Set("page", strconv.Itoa(page))
		got, err := c.fetch(ctx, "popular_local", "/discover/"+pathSegment(kind), params, kind)
		if err != nil {
			return nil, err
		}
		items = append(items, got...)
	}

	return items, nil
}

// Search implements Gateway. Results outside the industry are dropped.
func (c *Client) Search(ctx context.Context, kind models.Kind, query string, industry models.Industry) ([]models.Item, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("language", "en-US")

	items, err := c.fetch(ctx, "search", "/search/"+pathSegment(kind), params, kind)
	if err != nil {
		return nil, err
	}

	filtered := items[:0]
	for i := range items {
		if industry.Admits(items[i].IsLocalOrigin) {
			filtered = append(filtered, items[i])
		}
	}
	return filtered, nil
}

// DiscoverByGenre implements Gateway.
func (c *Client) DiscoverByGenre(ctx context.Context, q DiscoverQuery) ([]models.Item, error) {
	params := url.Values{}
	if q.Genre != "" {
		code, ok := GenreCode(q.Genre)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGenre, q.Genre)
		}
		params.Set("with_genres", strconv.Itoa(code))
	}
	sortKey := q.Sort
	if sortKey == "" {
		sortKey = SortPopularity
	}
	params.Set("sort_by", string(sortKey))
	params.Set("vote_count.gte", strconv.Itoa(q.MinVoteCount))
	params.Set("page", strconv.Itoa(max(q.Page, 1)))
	if lang := languageFilter(q.Industry); lang != "" {
		params.Set("with_original_language", lang)
	}

	return c.fetch(ctx, "discover", "/discover/"+pathSegment(q.Kind), params, q.Kind)
}

// fetch performs one GET and normalizes the result page.
func (c *Client) fetch(ctx context.Context, endpoint, path string, params url.Values, kind models.Kind) ([]models.Item, error) {
	if c.apiKey == "" {
		metrics.RecordCatalogRequest(endpoint, "not_configured", 0)
		return nil, ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordCatalogRequest(endpoint, "throttled", 0)
		return nil, fmt.Errorf("%w: %s: %w", ErrThrottled, endpoint, err)
	}

	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: failed to create request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordCatalogRequest(endpoint, "error", time.Since(start))
		return nil, fmt.Errorf("catalog %s: request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordCatalogRequest(endpoint, "status", time.Since(start))
		body := readBodyForError(resp.Body)
		c.logger.Debug().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("Catalog returned non-success status")
		return nil, fmt.Errorf("%w: %s returned %d: %s", ErrUpstreamStatus, endpoint, resp.StatusCode, body)
	}

	var page resultPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		metrics.RecordCatalogRequest(endpoint, "error", time.Since(start))
		return nil, fmt.Errorf("catalog %s: failed to decode response: %w", endpoint, err)
	}
	metrics.RecordCatalogRequest(endpoint, "ok", time.Since(start))

	return c.normalizer.NormalizeAll(page.Results, kind), nil
}

// readBodyForError reads at most maxErrorBodySize bytes of an error response.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return strings.TrimSpace(string(body))
}
