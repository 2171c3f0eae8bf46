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

// windowScript aplica a regra de janela fixa numa única ida ao Redis.
// KEYS[1] = hash {count, reset}; ARGV = now(ms), length(ms), limit.
// Retorna {allowed(0/1), count, reset(ms)}.
var windowScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local length = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local vals = redis.call('HMGET', KEYS[1], 'count', 'reset')
local count = tonumber(vals[1] or '0') or 0
local reset = tonumber(vals[2] or '0') or 0
if count == 0 or now >= reset then
  reset = now + length
  redis.call('HSET', KEYS[1], 'count', 1, 'reset', reset)
  redis.call('PEXPIRE', KEYS[1], length)
  return {1, 1, reset}
end
if count >= limit then
  return {0, count, reset}
end
count = redis.call('HINCRBY', KEYS[1], 'count', 1)
return {1, count, reset}
`)

// RedisWindowStore guarda as janelas no Redis, para que várias instâncias do
// site compartilhem a mesma cota por cliente. Os registros expiram sozinhos
// (PEXPIRE com a duração da janela), então não há janitor.
type RedisWindowStore struct {
	rdb    *redis.Client
	prefix string
}

type RedisWindowOption func(*RedisWindowStore)

func WithWindowPrefix(prefix string) RedisWindowOption {
	return func(s *RedisWindowStore) {
		if p := strings.Trim(prefix, ":"); p != "" {
			s.prefix = p
		}
	}
}

func NewRedisWindowStore(rdb *redis.Client, opts ...RedisWindowOption) *RedisWindowStore {
	s := &RedisWindowStore{rdb: rdb, prefix: "contact:window"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisWindowStore) key(k domain.Key) string {
	return s.prefix + ":" + string(k)
}

// Hit implementa domain.WindowStore.
func (s *RedisWindowStore) Hit(ctx context.Context, key domain.Key, w domain.Window, now time.Time) (domain.WindowRecord, bool, error) {
	res, err := windowScript.Run(ctx, s.rdb, []string{s.key(key)},
		now.UnixMilli(), w.Length.Milliseconds(), w.Limit,
	).Int64Slice()
	if err != nil {
		return domain.WindowRecord{}, false, fmt.Errorf("redis window hit: %w", err)
	}
	if len(res) != 3 {
		return domain.WindowRecord{}, false, fmt.Errorf("redis window hit: unexpected reply %v", res)
	}

	rec := domain.WindowRecord{Count: int(res[1]), ResetAt: time.UnixMilli(res[2])}
	return rec, res[0] == 1, nil
}

// Peek lê o registro sem consumir cota. Registro expirado conta como ausente.
func (s *RedisWindowStore) Peek(ctx context.Context, key domain.Key, now time.Time) (domain.WindowRecord, bool, error) {
	vals, err := s.rdb.HMGet(ctx, s.key(key), "count", "reset").Result()
	if err != nil {
		return domain.WindowRecord{}, false, fmt.Errorf("redis window peek: %w", err)
	}
	if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return domain.WindowRecord{}, false, nil
	}

	count, err := strconv.ParseInt(fmt.Sprint(vals[0]), 10, 64)
	if err != nil {
		return domain.WindowRecord{}, false, fmt.Errorf("redis window peek count: %w", err)
	}
	reset, err := strconv.ParseInt(fmt.Sprint(vals[1]), 10, 64)
	if err != nil {
		return domain.WindowRecord{}, false, fmt.Errorf("redis window peek reset: %w", err)
	}

	rec := domain.WindowRecord{Count: int(count), ResetAt: time.UnixMilli(reset)}
	if !rec.Active(now) {
		return domain.WindowRecord{}, false, nil
	}
	return rec, true, nil
}
