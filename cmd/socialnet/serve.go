package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/social-network/internal/api"
	"github.com/99minutos/social-network/internal/api/handler"
	mongodb "github.com/99minutos/social-network/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/social-network/internal/infrastructure/db/redis"
	"github.com/99minutos/social-network/pkg/logger"
)

func runServe(cmd *cobra.Command, _ []string) error {
	log := logger.Get()
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	readiness := map[string]handler.Pinger{"mongodb": mongodb.NewPinger(a.mongo)}
	if a.redis != nil {
		readiness["redis"] = redisdb.NewPinger(a.redis)
	}

	e := api.NewRouter(api.Deps{
		Auth:          a.auth,
		Accounts:      a.accounts,
		Posts:         a.posts,
		Relationships: a.relationships,
		JWTSecret:     cfg.Auth.JWTSecret,
		Cookie:        handler.CookieConfig{Secure: cfg.Auth.CookieSecure, TTL: cfg.Auth.TokenTTL},
		CORSOrigins:   cfg.CORSOrigins,
		Readiness:     readiness,
		Log:           log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
