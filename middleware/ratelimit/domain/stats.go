package domain

import (
	"context"
	"time"
)

// Nomes dos limitadores que registram estatísticas.
const (
	LimiterSite    = "site"
	LimiterContact = "contact"
)

// StatsEvent representa um evento de decisão de um limitador.
//
// Method/Path são strings genéricas, sem depender de net/http.
//
// Observação: cuidado com cardinalidade (ex.: salvar Key/Path sem controle pode
// explodir o número de séries/chaves em Redis/Prometheus).
type StatsEvent struct {
	Limiter string
	Key     Key
	Allowed bool

	Method string
	Path   string

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas do rate limit.
//
// Implementações: memória, Redis, Prometheus ou várias ao mesmo tempo.
// Quem chama trata erro como best-effort (não derruba a request).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
