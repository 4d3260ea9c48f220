// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/auth"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/session"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

var (
	_ api.SessionService      = (*session.Service)(nil)
	_ api.CatalogStatus       = (*catalog.CircuitBreakerGateway)(nil)
	_ services.SessionSweeper = (*session.Service)(nil)
	_ services.ExpiringCache  = (*catalog.CachedGateway)(nil)
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("CineMatch stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// catalogStack is the layered catalog gateway: client, breaker, then cache.
type catalogStack struct {
	client  *catalog.Client
	breaker *catalog.CircuitBreakerGateway
	cached  *catalog.CachedGateway
}

func initCatalog(cfg *config.CatalogConfig) catalogStack {
	logger := logging.WithComponent("catalog")

	client := catalog.NewClient(cfg, logger)
	if !client.Configured() {
		logger.Warn().Msg("TMDB_API_KEY is not set; catalog requests will fail and health reports degraded")
	}
	breaker := catalog.NewCircuitBreakerGateway(client, cfg, logger)
	cached := catalog.NewCachedGateway(breaker, cfg.PageCacheSize, cfg.PageCacheTTL)

	logger.Info().
		Str("base_url", cfg.BaseURL).
		Float64("rps", cfg.RequestsPerSecond).
		Int("cache_size", cfg.PageCacheSize).
		Dur("cache_ttl", cfg.PageCacheTTL).
		Msg("Catalog gateway initialized")

	return catalogStack{client: client, breaker: breaker, cached: cached}
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("session_backend", cfg.Session.Backend).
		Dur("session_ttl", cfg.Session.TTL).
		Int("top_n", cfg.Recommend.TopN).
		Msg("Starting CineMatch")

	gw := initCatalog(&cfg.Catalog)

	engine, err := recommend.NewEngine(gw.cached, recommend.ConfigFromSettings(&cfg.Recommend), logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("recommendation engine: %w", err)
	}

	store, err := session.NewStore(&cfg.Session)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()

	sessions := session.NewService(store, engine, gw.cached,
		session.OptionsFromConfig(&cfg.Session, &cfg.Recommend),
		logging.WithComponent("session"))

	if cfg.Session.Secret == "" {
		logging.Warn().Msg("SESSION_SECRET is not set; session tokens will not survive a restart")
	}
	tokens, err := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		return fmt.Errorf("token manager: %w", err)
	}

	handler := api.NewHandler(sessions, tokens, api.HandlerOptions{
		Catalog:           gw.breaker,
		CatalogConfigured: gw.client.Configured(),
		RequestTimeout:    cfg.Server.RequestTimeout,
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Handler:           api.NewRouter(handler, api.RouterConfigFromSecurity(&cfg.Security)),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewSessionSweeperService(sessions, cfg.Session.SweepInterval))
	tree.AddMaintenanceService(services.NewCacheJanitorService(gw.cached, cfg.Catalog.PageCacheTTL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}
