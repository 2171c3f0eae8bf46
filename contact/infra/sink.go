// Package infra contém os destinos (Sink) de submissões aceitas.
//
// Não existe destino real: DiscardSink marca o ponto onde entraria um banco,
// uma fila ou um envio de e-mail, e DelaySink simula a latência desse destino
// quando CONTACT_SINK_DELAY > 0.
package infra

import (
	"context"
	"time"

	"portfolio-site/contact/domain"
)

type DiscardSink struct{}

func (DiscardSink) Write(context.Context, domain.Accepted) error { return nil }

// DelaySink espera Delay antes de repassar para Next. Respeita o cancelamento
// do ctx; o Service de contato já entrega um ctx sem cancelamento, então um
// cliente que desconecta não derruba uma submissão aceita.
type DelaySink struct {
	Delay time.Duration
	Next  domain.Sink
}

func (s DelaySink) Write(ctx context.Context, a domain.Accepted) error {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	if s.Next == nil {
		return nil
	}
	return s.Next.Write(ctx, a)
}
