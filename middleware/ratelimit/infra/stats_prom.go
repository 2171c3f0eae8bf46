package infra

import (
	"context"

	"portfolio-site/middleware/ratelimit/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// PromStatsStore expõe as decisões como contador Prometheus.
//
// Só limiter e outcome viram label: path e chave ficam de fora para não
// explodir a cardinalidade (o limite global vê qualquer path, inclusive 404).
type PromStatsStore struct {
	decisions *prometheus.CounterVec
}

func NewPromStatsStore(reg prometheus.Registerer) (*PromStatsStore, error) {
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Subsystem: "ratelimit",
		Name:      "decisions_total",
		Help:      "Rate limit decisions by limiter and outcome.",
	}, []string{"limiter", "outcome"})

	if err := reg.Register(decisions); err != nil {
		return nil, err
	}
	return &PromStatsStore{decisions: decisions}, nil
}

func (s *PromStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	outcome := "denied"
	if ev.Allowed {
		outcome = "allowed"
	}
	s.decisions.WithLabelValues(ev.Limiter, outcome).Inc()
	return nil
}

// Decisions expõe o vetor para testes e dashboards locais.
func (s *PromStatsStore) Decisions() *prometheus.CounterVec { return s.decisions }
