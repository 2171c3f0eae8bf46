// Package domain define os tipos do formulário de contato: a submissão crua,
// a submissão saneada, os motivos de rejeição e a taxonomia de erros
// (throttle, validação, interno). Não depende de net/http.
package domain
