// Package application implementa o pipeline do formulário de contato:
//
//	rate-check -> parse -> presença -> tipo -> formato -> tamanho -> saneamento -> sink
//
// A primeira regra que falha encerra o fluxo. Nada aqui conhece net/http: o
// resultado é uma domain.Accepted ou um dos erros tipados de contact/domain.
package application
