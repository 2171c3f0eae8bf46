package domain

import (
	"context"
	"time"
)

// Limites de tamanho, em caracteres (code points).
const (
	NameMinLen    = 2
	NameMaxLen    = 100
	MessageMinLen = 10
	MessageMaxLen = 5000
	// MaxFieldLen é o teto aplicado pelo saneamento em qualquer campo.
	MaxFieldLen = 5000
)

// Submission é a entrada crua de uma requisição.
//
// Name/Email/Message guardam o valor JSON decodificado (string, número, bool,
// nil, ...) porque presença e tipo são checados separadamente. Address vem da
// camada de transporte, nunca do corpo.
type Submission struct {
	Name    any
	Email   any
	Message any
	Address string
}

// Sanitized é uma submissão validada e saneada.
type Sanitized struct {
	Name    string
	Email   string
	Message string
}

// Accepted é o que o pipeline entrega ao Sink.
type Accepted struct {
	ID         string
	Sanitized
	Address    string
	ReceivedAt time.Time
}

// Sink é o destino de uma submissão aceita (banco, fila, e-mail...).
// Nenhum destino real existe aqui; veja contact/infra.
type Sink interface {
	Write(ctx context.Context, a Accepted) error
}
