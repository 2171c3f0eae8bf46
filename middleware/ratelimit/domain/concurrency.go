package domain

import "context"

// SlotPool é um recurso de capacidade finita (requisições em andamento no site).
//
// Acquire bloqueia até obter uma vaga ou até o ctx encerrar. Em caso de sucesso
// devolve um release que deve ser chamado exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
