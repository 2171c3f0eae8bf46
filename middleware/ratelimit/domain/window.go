package domain

import (
	"context"
	"time"
)

// Window descreve uma janela fixa: no máximo Limit requisições por chave
// a cada Length, contando a partir da primeira requisição da janela.
type Window struct {
	Limit  int
	Length time.Duration
}

// WindowRecord é o contador de uma chave dentro da janela corrente.
//
// O registro só vale enquanto now < ResetAt. Depois disso é tratado como
// ausente e recriado na próxima requisição.
type WindowRecord struct {
	Count   int
	ResetAt time.Time
}

func (r WindowRecord) Active(now time.Time) bool {
	return now.Before(r.ResetAt)
}

// WindowStore aplica a regra de janela fixa de forma atômica para uma chave:
//
//   - sem registro (ou expirado): cria com Count=1 e ResetAt=now+Length, permite
//   - Count >= Limit: nega sem alterar o registro
//   - caso contrário: incrementa e permite
//
// Retorna o registro resultante e se a requisição foi permitida.
type WindowStore interface {
	Hit(ctx context.Context, key Key, w Window, now time.Time) (WindowRecord, bool, error)
}
