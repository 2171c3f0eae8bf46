package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .env é opcional; variáveis já exportadas têm precedência.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("load .env")
	}

	cfg, err := readConfig()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("config error")
	}
	log := newLogger(os.Stdout, cfg.logLevel, cfg.logPretty)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup")
	}
	defer a.close()
	a.startJanitors(ctx)

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	backend := "memory"
	if cfg.redisAddr != "" {
		backend = "redis"
	}
	log.Info().Str("addr", cfg.listenAddr).Msg("portfolio site listening")
	log.Info().
		Int("limit", cfg.contactLimit).
		Dur("window", cfg.contactWindow).
		Str("backend", backend).
		Int("max_entries", cfg.contactMaxEntries).
		Dur("sweep_every", cfg.contactSweepEvery).
		Str("key_header", cfg.keyHeader).
		Bool("trust_xff", cfg.trustXFF).
		Msg("contact limiter")
	log.Info().
		Bool("enabled", cfg.rateEnabled).
		Float64("rps", cfg.rateRPS).
		Int("burst", cfg.rateBurst).
		Int("concurrency_max", cfg.concurrencyMax).
		Dur("concurrency_timeout", cfg.concurrencyTimeout).
		Msg("site limiter")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server error")
		a.close()
		os.Exit(1)
	}
}
