package application

import (
	"context"
	"errors"
	"time"

	"portfolio-site/middleware/ratelimit/domain"

	"github.com/rs/zerolog"
)

// Valores padrão da janela do formulário de contato.
const (
	DefaultWindowLimit  = 5
	DefaultWindowLength = time.Hour
)

var ErrNoWindowStore = errors.New("ratelimit: window store not configured")

// WindowService decide allow/deny por janela fixa.
//
// Dentro de uma janela de Window.Length ancorada na primeira requisição de uma
// chave, no máximo Window.Limit requisições são permitidas. A (Limit+1)-ésima
// em diante é negada até a janela virar.
type WindowService struct {
	Store  domain.WindowStore
	Window domain.Window
	// Now permite controlar o relógio em testes. Se nil, usa time.Now.
	Now func() time.Time

	// Stats recebe cada decisão (best-effort) sob o nome Name. Falha ao
	// gravar vira warning em Log e não muda a decisão.
	Stats domain.StatsStore
	Name  string
	Log   zerolog.Logger
}

func NewWindowService(store domain.WindowStore, w domain.Window) *WindowService {
	return &WindowService{Store: store, Window: w}
}

func (s *WindowService) window() domain.Window {
	w := s.Window
	if w.Limit <= 0 {
		w.Limit = DefaultWindowLimit
	}
	if w.Length <= 0 {
		w.Length = DefaultWindowLength
	}
	return w
}

func (s *WindowService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Allow consome uma unidade da cota da chave, quando houver.
func (s *WindowService) Allow(ctx context.Context, key domain.Key) (domain.Decision, error) {
	if s.Store == nil {
		return domain.Decision{}, ErrNoWindowStore
	}
	w := s.window()
	now := s.now()

	rec, ok, err := s.Store.Hit(ctx, key, w, now)
	if err != nil {
		return domain.Decision{}, err
	}

	remaining := w.Limit - rec.Count
	if remaining < 0 {
		remaining = 0
	}
	dec := domain.Decision{Allowed: ok, Remaining: remaining, ResetAt: rec.ResetAt}
	if !ok {
		dec.RetryAfter = rec.ResetAt.Sub(now)
		if dec.RetryAfter < 0 {
			dec.RetryAfter = 0
		}
	}

	if s.Stats != nil {
		err := s.Stats.Record(ctx, domain.StatsEvent{
			Limiter: s.Name,
			Key:     key,
			Allowed: ok,
			At:      now,
		})
		if err != nil {
			s.Log.Warn().Err(err).Str("limiter", s.Name).Msg("rate limit stats record failed")
		}
	}
	return dec, nil
}
