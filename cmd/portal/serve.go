package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/duckcorp/portal/internal/api"
	"github.com/duckcorp/portal/internal/api/handler"
	"github.com/duckcorp/portal/internal/core/service"
	"github.com/duckcorp/portal/internal/infrastructure/search"
	"github.com/duckcorp/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	proxies, err := cfg.ProxyRanges()
	if err != nil {
		return err
	}

	store, closeStore, err := openCollectionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore(context.Background()) }()

	sessions, closeSessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeSessions(context.Background()) }()

	services := service.NewServices(store, cfg.BcryptCost, logger.Component("store"))
	written, err := services.Seed(ctx)
	if err != nil {
		return err
	}
	if len(written) > 0 {
		log.Info().Strs("collections", written).Msg("seeded default data")
	}

	auth := service.NewAuthService(
		services.Users,
		service.NewSessionService(sessions, cfg.SessionSecret, cfg.SessionTTL),
		logger.Component("auth"),
	)

	e := api.NewRouter(api.RouterDeps{
		Auth:          auth,
		Users:         services.Users,
		Tags:          services.Tags,
		Announcements: services.Announcements,
		Chat:          services.Chat,
		Blacklist:     services.Blacklist,
		Files:         services.Files,
		Search: search.NewRelay(search.Config{
			BaseURL:   cfg.Search.URL,
			UserAgent: cfg.Search.UserAgent,
			Timeout:   cfg.Search.Timeout,
		}),
		Health: map[string]handler.Pinger{
			"collections": store,
			"sessions":    sessions,
		},
		Log:            logger.Component("http"),
		TrustProxy:     cfg.TrustProxy,
		TrustedProxies: proxies,
		BlockedURL:     cfg.BlockedURL,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Addr()).
			Str("store", cfg.Store.Driver).
			Str("sessions", cfg.Sessions.Driver).
			Msg("Duck Corp server running")
		errCh <- e.Start(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received, closing server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
