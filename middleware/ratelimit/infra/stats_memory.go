package infra

import (
	"context"
	"strings"
	"sync"

	"portfolio-site/middleware/ratelimit/domain"
)

type Counters struct {
	Allowed int64 `json:"allowed"`
	Denied  int64 `json:"denied"`
}

func (c *Counters) add(allowed bool) {
	if allowed {
		c.Allowed++
		return
	}
	c.Denied++
}

// StatsSnapshot é a foto dos contadores exposta em /api/stats.
type StatsSnapshot struct {
	Total     Counters            `json:"total"`
	ByLimiter map[string]Counters `json:"by_limiter"`
	ByRoute   map[string]Counters `json:"by_route"`
	ByKey     map[string]Counters `json:"by_key,omitempty"`
}

// MemoryStatsStore guarda os contadores de decisão em memória.
//
// Não faz expiração. Com trackKeys ligado, a cardinalidade cresce com o número
// de clientes distintos.
type MemoryStatsStore struct {
	mu        sync.Mutex
	total     Counters
	byLimiter map[string]Counters
	byRoute   map[string]Counters
	byKey     map[string]Counters

	trackKeys bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackKeys(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackKeys = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		byLimiter: make(map[string]Counters),
		byRoute:   make(map[string]Counters),
		byKey:     make(map[string]Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func bump(m map[string]Counters, k string, allowed bool) {
	c := m[k]
	c.add(allowed)
	m[k] = c
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Allowed)
	bump(s.byLimiter, ev.Limiter, ev.Allowed)
	if route := strings.TrimSpace(ev.Method + " " + ev.Path); route != "" {
		bump(s.byRoute, route, ev.Allowed)
	}
	if s.trackKeys {
		bump(s.byKey, string(ev.Key), ev.Allowed)
	}
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{
		Total:     s.total,
		ByLimiter: cloneCounters(s.byLimiter),
		ByRoute:   cloneCounters(s.byRoute),
	}
	if s.trackKeys {
		snap.ByKey = cloneCounters(s.byKey)
	}
	return snap
}

func cloneCounters(m map[string]Counters) map[string]Counters {
	out := make(map[string]Counters, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
