package infra

import (
	"context"
	"errors"

	"portfolio-site/middleware/ratelimit/domain"
)

// MultiStats repassa cada evento para todas as stores. Uma store com erro não
// impede as demais; os erros voltam juntos.
type MultiStats []domain.StatsStore

func (m MultiStats) Record(ctx context.Context, ev domain.StatsEvent) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Record(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
