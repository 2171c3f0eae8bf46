package domain

import (
	"fmt"
	"time"
)

// Reason é o motivo legível de uma rejeição de validação.
type Reason string

const (
	ReasonMissingFields Reason = "All fields are required"
	ReasonInvalidTypes  Reason = "Invalid input types"
	ReasonInvalidEmail  Reason = "Invalid email format"
	ReasonNameLength    Reason = "Name must be between 2 and 100 characters"
	ReasonMessageLength Reason = "Message must be between 10 and 5000 characters"
)

// ThrottleError: o endereço estourou a cota da janela. O cliente pode tentar
// de novo depois de RetryAfter.
type ThrottleError struct {
	Address    string
	RetryAfter time.Duration
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("contact: %s throttled, retry after %s", e.Address, e.RetryAfter)
}

// ValidationError: a entrada não passou numa regra. Sempre reportada com o
// motivo específico.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string { return "contact: " + string(e.Reason) }

// InternalError: qualquer falha não atribuível à entrada do cliente. A causa
// vai para o log; o cliente recebe apenas uma mensagem genérica.
type InternalError struct {
	Op    string
	Cause error
}

func (e *InternalError) Error() string {
	if e.Cause == nil {
		return "contact: internal error in " + e.Op
	}
	return fmt.Sprintf("contact: %s: %v", e.Op, e.Cause)
}

func (e *InternalError) Unwrap() error { return e.Cause }

func Reject(r Reason) error { return &ValidationError{Reason: r} }

func Internal(op string, cause error) error { return &InternalError{Op: op, Cause: cause} }
