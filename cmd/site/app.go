package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"portfolio-site/contact"
	contactapp "portfolio-site/contact/application"
	contactdomain "portfolio-site/contact/domain"
	contactinfra "portfolio-site/contact/infra"
	"portfolio-site/middleware/ratelimit"
	rlapp "portfolio-site/middleware/ratelimit/application"
	"portfolio-site/middleware/ratelimit/domain"
	"portfolio-site/middleware/ratelimit/infra"
	"portfolio-site/portfolio"
	portfolioapp "portfolio-site/portfolio/application"
	portfolioinfra "portfolio-site/portfolio/infra"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// app junta tudo que main precisa: o handler final, os janitors e o que deve
// ser fechado no shutdown.
type app struct {
	handler http.Handler

	siteStore   *infra.Store
	windowTable *infra.WindowTable // nil quando a janela está no Redis
	memStats    *infra.MemoryStatsStore
	rdb         *redis.Client
}

func buildApp(ctx context.Context, cfg config, log zerolog.Logger) (*app, error) {
	a := &app{}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	promStats, err := infra.NewPromStatsStore(reg)
	if err != nil {
		return nil, fmt.Errorf("prometheus stats: %w", err)
	}
	a.memStats = infra.NewMemoryStatsStore(infra.WithTrackKeys(cfg.statsTrackKeys))
	stats := infra.MultiStats{a.memStats, promStats}
	snapshot := func(context.Context) (infra.StatsSnapshot, error) { return a.memStats.Snapshot(), nil }

	var windows domain.WindowStore
	if cfg.redisAddr != "" {
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := a.rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			_ = a.rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}

		windows = infra.NewRedisWindowStore(a.rdb, infra.WithWindowPrefix(cfg.contactPrefix))
		redisStats := infra.NewRedisStatsStore(
			a.rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
			infra.WithStatsTrackKeys(cfg.statsTrackKeys),
		)
		stats = append(stats, redisStats)
		// com Redis, /api/stats mostra os contadores somados de todas as instâncias
		snapshot = redisStats.Snapshot
	} else {
		a.windowTable = infra.NewWindowTable(
			infra.WithMaxEntries(cfg.contactMaxEntries),
			infra.WithSweepEvery(cfg.contactSweepEvery),
		)
		windows = a.windowTable
	}

	keyFn := ratelimit.DefaultKeyFunc(cfg.keyHeader, cfg.trustXFF)

	throttle := &rlapp.WindowService{
		Store:  windows,
		Window: domain.Window{Limit: cfg.contactLimit, Length: cfg.contactWindow},
		Stats:  stats,
		Name:   domain.LimiterContact,
		Log:    log,
	}
	var sink contactdomain.Sink = contactinfra.DiscardSink{}
	if cfg.contactSinkDelay > 0 {
		sink = contactinfra.DelaySink{Delay: cfg.contactSinkDelay, Next: sink}
	}
	contactHandler := contact.NewHandler(
		contactapp.NewService(throttle, sink, log),
		contact.Options{KeyFn: keyFn, MaxBody: cfg.contactMaxBody, Logger: log},
	)

	seed, err := portfolioinfra.Seed()
	if err != nil {
		a.close()
		return nil, err
	}
	portfolioHandler := portfolio.NewHandler(portfolioapp.NewCatalog(seed, log), log)

	router := newRouter(routes{
		contact:   contactHandler,
		portfolio: portfolioHandler,
		snapshot:  snapshot,
		metrics:   reg,
		log:       log,
	})

	a.siteStore = infra.NewStore(cfg.rateRPS, cfg.rateBurst)

	h := http.Handler(router)
	h = ratelimit.ConcurrencyMiddleware(ratelimit.ConcurrencyOptions{
		Max:            cfg.concurrencyMax,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: cfg.concurrencyTimeout,
		Logger:         log,
	})(h)
	if cfg.rateEnabled {
		h = ratelimit.Middleware(ratelimit.Options{
			Store:               a.siteStore,
			Stats:               stats,
			KeyFn:               keyFn,
			RejectStatus:        http.StatusTooManyRequests,
			RetryAfter:          cfg.retryAfter,
			AddRateLimitHeaders: cfg.addHeaders,
			Logger:              log,
		})(h)
	}
	a.handler = h
	return a, nil
}

// startJanitors limpa chaves ociosas/expiradas até ctx encerrar.
func (a *app) startJanitors(ctx context.Context) {
	a.siteStore.StartJanitor(ctx)
	if a.windowTable != nil {
		a.windowTable.StartJanitor(ctx)
	}
}

func (a *app) close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}
