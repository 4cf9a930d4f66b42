package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/graphauth/graphauth/internal/application/auth"
	"github.com/graphauth/graphauth/internal/config"
	"github.com/graphauth/graphauth/internal/domain"
	"github.com/graphauth/graphauth/internal/infrastructure/mongodb"
	"github.com/graphauth/graphauth/internal/infrastructure/security"
	"github.com/graphauth/graphauth/internal/logger"
	gqltransport "github.com/graphauth/graphauth/internal/transport/graphql"
	"github.com/graphauth/graphauth/internal/transport/http/handlers"
	"github.com/graphauth/graphauth/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()

	logger.Init()

	if err := run(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("service failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}()

	repo := mongodb.NewUserRepo(client.Database(cfg.MongoDB))
	if err := repo.EnsureIndexes(ctx); err != nil {
		return err
	}

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewTokenSigner(cfg.JWTSecret)

	svc := auth.NewService(repo, hasher, signer, auth.Config{
		TokenTTL: cfg.TokenTTL,
		Policy: domain.PasswordPolicy{
			MinLength: cfg.PasswordMinLength,
			MaxLength: cfg.PasswordMaxLength,
		},
	})

	secureCookies := cfg.Env != "dev"
	cookies := security.CookieWriter{TTL: cfg.TokenTTL, Secure: secureCookies}

	gqlHandler, err := gqltransport.NewHandler(gqltransport.NewRoot(svc, cookies), signer)
	if err != nil {
		return err
	}

	handler, err := router.New(router.Deps{
		Health:     handlers.NewHealthHandler(mongodb.Pinger{Client: client}),
		GraphQL:    gqlHandler,
		CORSOrigin: cfg.CORSOrigin,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Logger.Info().
			Str("addr", cfg.HTTPAddr).
			Str("env", cfg.Env).
			Msg("server started at /graphql")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Logger.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}

	return nil
}
