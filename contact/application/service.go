package application

import (
	"context"
	"errors"
	"io"
	"time"

	"portfolio-site/contact/domain"
	rldomain "portfolio-site/middleware/ratelimit/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNoThrottle = errors.New("contact: throttle not configured")

// Throttle é o limitador por endereço (ratelimit/application.WindowService).
type Throttle interface {
	Allow(ctx context.Context, key rldomain.Key) (rldomain.Decision, error)
}

// Service orquestra uma submissão de contato.
type Service struct {
	Throttle Throttle
	Sink     domain.Sink
	Log      zerolog.Logger

	// Now e NewID existem para testes. Se nil, usam time.Now e uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

func NewService(throttle Throttle, sink domain.Sink, log zerolog.Logger) *Service {
	return &Service{
		Throttle: throttle,
		Sink:     sink,
		Log:      log.With().Str("component", "contact").Logger(),
	}
}

// Submit executa o pipeline para o corpo cru vindo de address. O corpo só é
// lido depois do throttle.
//
// O throttle vem antes de tudo: uma submissão inválida também consome cota.
// Erros devolvidos são sempre *domain.ThrottleError, *domain.ValidationError
// ou *domain.InternalError.
func (s *Service) Submit(ctx context.Context, address string, body io.Reader) (domain.Accepted, error) {
	if s.Throttle == nil {
		return domain.Accepted{}, domain.Internal("throttle", ErrNoThrottle)
	}
	dec, err := s.Throttle.Allow(ctx, rldomain.Key(address))
	if err != nil {
		return domain.Accepted{}, domain.Internal("throttle", err)
	}
	if !dec.Allowed {
		return domain.Accepted{}, &domain.ThrottleError{Address: address, RetryAfter: dec.RetryAfter}
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return domain.Accepted{}, domain.Internal("read body", err)
	}
	sub, err := ParseBody(raw, address)
	if err != nil {
		return domain.Accepted{}, err
	}

	clean, err := Validate(sub)
	if err != nil {
		s.Log.Debug().
			Err(err).
			Str("ip", address).
			Interface("name", sub.Name).
			Interface("email", sub.Email).
			Interface("message", sub.Message).
			Msg("contact submission rejected")
		return domain.Accepted{}, err
	}

	acc := domain.Accepted{
		ID:         s.newID(),
		Sanitized:  clean,
		Address:    address,
		ReceivedAt: s.now(),
	}

	s.Log.Info().
		Str("submission_id", acc.ID).
		Str("name", acc.Name).
		Str("email", acc.Email).
		Str("message", acc.Message).
		Str("ip", acc.Address).
		Str("timestamp", acc.ReceivedAt.UTC().Format(time.RFC3339Nano)).
		Msg("contact form submission")

	if s.Sink != nil {
		// aceita é aceita: a escrita não para se o cliente desconectar
		if err := s.Sink.Write(context.WithoutCancel(ctx), acc); err != nil {
			return domain.Accepted{}, domain.Internal("sink write", err)
		}
	}
	return acc, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
