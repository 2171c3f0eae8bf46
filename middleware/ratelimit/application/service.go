package application

import (
	"time"

	"portfolio-site/middleware/ratelimit/domain"
)

// Service é a regra do limite global do site (token bucket por cliente).
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna uma decisão.
// Sem Store, ou sem limiter para a chave, tudo é permitido.
type Service struct {
	Store      domain.LimiterStore
	RetryAfter time.Duration
}

func (s Service) Decide(key domain.Key) domain.Decision {
	if s.Store == nil {
		return domain.Decision{Allowed: true}
	}
	lim := s.Store.Get(key)
	if lim == nil || lim.Allow() {
		return domain.Decision{Allowed: true}
	}

	retry := s.RetryAfter
	if retry <= 0 {
		retry = time.Second
	}
	return domain.Decision{Allowed: false, RetryAfter: retry}
}
