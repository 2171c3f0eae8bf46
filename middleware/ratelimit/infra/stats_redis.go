package infra

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"portfolio-site/middleware/ratelimit/domain"

	"github.com/redis/go-redis/v9"
)

type RedisStatsStore struct {
	rdb *redis.Client

	prefix string
	// ttl aplica apenas em chaves de série temporal / por key.
	// total é cumulativo e não expira.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"

	trackKeys bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackKeys(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackKeys = track }
}

func NewRedisStatsStore(rdb *redis.Client, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "ratelimit:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record grava, num único pipeline:
//
//	<prefix>:total                      allowed/denied
//	<prefix>:limiter                    <limiter>:allowed|denied
//	<prefix>:minute:<yyyymmddhhmm>      allowed/denied (bucket=minute)
//	<prefix>:route                      <METHOD path>:allowed|denied
//	<prefix>:key:<key>                  allowed/denied (trackKeys)
func (s *RedisStatsStore) Record(ctx context.Context, ev domain.StatsEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := "denied"
	if ev.Allowed {
		field = "allowed"
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	if lim := strings.TrimSpace(ev.Limiter); lim != "" {
		pipe.HIncrBy(ctx, s.prefix+":limiter", lim+":"+field, 1)
	}

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	routeField := strings.TrimSpace(strings.TrimSpace(ev.Method) + " " + strings.TrimSpace(ev.Path))
	if routeField != "" {
		pipe.HIncrBy(ctx, s.prefix+":route", routeField+":"+field, 1)
	}

	if s.trackKeys {
		if k := strings.TrimSpace(string(ev.Key)); k != "" {
			keyKey := s.prefix + ":key:" + k
			pipe.HIncrBy(ctx, keyKey, field, 1)
			if s.ttl > 0 {
				pipe.Expire(ctx, keyKey, s.ttl)
			}
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Snapshot lê de volta total, limiter e route. Contadores por chave ficam de
// fora: exigiriam SCAN no keyspace inteiro.
func (s *RedisStatsStore) Snapshot(ctx context.Context) (StatsSnapshot, error) {
	pipe := s.rdb.Pipeline()
	total := pipe.HGetAll(ctx, s.prefix+":total")
	limiters := pipe.HGetAll(ctx, s.prefix+":limiter")
	routes := pipe.HGetAll(ctx, s.prefix+":route")
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return StatsSnapshot{}, fmt.Errorf("redis stats snapshot: %w", err)
	}

	snap := StatsSnapshot{
		ByLimiter: map[string]Counters{},
		ByRoute:   map[string]Counters{},
	}
	for field, v := range total.Val() {
		setCounter(&snap.Total, field, v)
	}
	splitCounters(snap.ByLimiter, limiters.Val())
	splitCounters(snap.ByRoute, routes.Val())
	return snap, nil
}

// splitCounters converte campos "<nome>:allowed|denied" em Counters por nome.
func splitCounters(dst map[string]Counters, fields map[string]string) {
	for field, v := range fields {
		i := strings.LastIndexByte(field, ':')
		if i <= 0 {
			continue
		}
		c := dst[field[:i]]
		setCounter(&c, field[i+1:], v)
		dst[field[:i]] = c
	}
}

func setCounter(c *Counters, outcome, v string) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return
	}
	switch outcome {
	case "allowed":
		c.Allowed = n
	case "denied":
		c.Denied = n
	}
}
