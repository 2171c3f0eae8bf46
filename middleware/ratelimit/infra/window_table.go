package infra

import (
	"context"
	"sync"
	"time"

	"portfolio-site/middleware/ratelimit/domain"

	"github.com/tidwall/tinylru"
)

// WindowTable é a tabela em memória de janelas fixas por chave.
//
// A memória é limitada de duas formas: registros expirados são removidos pelo
// janitor (Sweep) e a tabela inteira é um LRU de tamanho máximo fixo. Quando o
// LRU enche, a chave usada há mais tempo sai primeiro, mesmo com janela ativa;
// ela volta com contador zerado. Com maxEntries bem acima do número de clientes
// ativos por janela isso não acontece na prática.
type WindowTable struct {
	mu         sync.Mutex
	lru        tinylru.LRU
	maxEntries int
	sweepEvery time.Duration
	now        func() time.Time
}

type WindowTableOption func(*WindowTable)

func WithMaxEntries(n int) WindowTableOption {
	return func(t *WindowTable) { t.maxEntries = n }
}

func WithSweepEvery(d time.Duration) WindowTableOption {
	return func(t *WindowTable) { t.sweepEvery = d }
}

// WithTableClock troca o relógio usado por Peek e Sweep.
func WithTableClock(now func() time.Time) WindowTableOption {
	return func(t *WindowTable) { t.now = now }
}

func NewWindowTable(opts ...WindowTableOption) *WindowTable {
	t := &WindowTable{
		maxEntries: 10000,
		sweepEvery: 5 * time.Minute,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.maxEntries <= 0 {
		t.maxEntries = 10000
	}
	t.lru.Resize(t.maxEntries)
	return t
}

func (t *WindowTable) MaxEntries() int            { return t.maxEntries }
func (t *WindowTable) SweepEvery() time.Duration { return t.sweepEvery }

// Hit implementa domain.WindowStore. O ctx não é usado: a operação é local.
func (t *WindowTable) Hit(_ context.Context, key domain.Key, w domain.Window, now time.Time) (domain.WindowRecord, bool, error) {
	k := string(key)

	t.mu.Lock()
	defer t.mu.Unlock()

	rec, found := t.get(k)
	if !found || !rec.Active(now) {
		rec = domain.WindowRecord{Count: 1, ResetAt: now.Add(w.Length)}
		t.lru.Set(k, rec)
		return rec, true, nil
	}

	if rec.Count >= w.Limit {
		return rec, false, nil
	}

	rec.Count++
	t.lru.Set(k, rec)
	return rec, true, nil
}

func (t *WindowTable) get(k string) (domain.WindowRecord, bool) {
	v, ok := t.lru.Get(k)
	if !ok {
		return domain.WindowRecord{}, false
	}
	rec, ok := v.(domain.WindowRecord)
	return rec, ok
}

// Peek devolve o registro ativo da chave. Registro expirado conta como ausente.
func (t *WindowTable) Peek(key domain.Key) (domain.WindowRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.get(string(key))
	if !ok || !rec.Active(t.now()) {
		return domain.WindowRecord{}, false
	}
	return rec, true
}

func (t *WindowTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lru.Len()
}

// Sweep remove os registros cuja janela já expirou e devolve quantos saíram.
func (t *WindowTable) Sweep() int {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	// Range segura o lock interno do LRU; apaga depois de iterar.
	var expired []string
	t.lru.Range(func(k, v interface{}) bool {
		if rec, ok := v.(domain.WindowRecord); !ok || !rec.Active(now) {
			expired = append(expired, k.(string))
		}
		return true
	})
	for _, k := range expired {
		t.lru.Delete(k)
	}
	return len(expired)
}

// StartJanitor roda Sweep a cada sweepEvery até o contexto encerrar.
func (t *WindowTable) StartJanitor(ctx DoneContext) {
	startJanitor(ctx, t.sweepEvery, func() { t.Sweep() })
}
