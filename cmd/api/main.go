package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petpal-api/internal/adapters/auth/jwtauth"
	"petpal-api/internal/adapters/storage/postgres"
	"petpal-api/internal/platform/config"
	"petpal-api/internal/platform/logger"
	"petpal-api/internal/router"
)

func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	opts := router.Options{
		Tokens:         jwtauth.New(cfg.JWTSecret, cfg.JWTExpires),
		SecureCookies:  cfg.SecureCookies,
		AllowedOrigins: cfg.CORSOrigins,
		Logger:         log,
	}

	if cfg.DBDSN != "" {
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("no se pudo conectar a postgres")
		}
		defer db.Close()
		opts.DB = db
		log.Info().Msg("storage: postgres")
	} else {
		log.Warn().Msg("storage: in-memory (DB_DSN vacío, los datos no persisten)")
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           router.New(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server escuchando")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("el server cayó")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("apagando")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown forzado")
		}
	}
}
