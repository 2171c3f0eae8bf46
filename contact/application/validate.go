package application

import (
	"math"
	"regexp"
	"unicode/utf8"

	"portfolio-site/contact/domain"
)

// jsSpace é a mesma classe do \s de JavaScript: espaços ASCII, NBSP, os
// separadores Unicode e o BOM. O \s do RE2 cobre só o ASCII.
const jsSpace = `\t\n\x{0B}\f\r \x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

// isJSSpace é a mesma classe de jsSpace como predicado de rune. É o conjunto
// que o trim() de JavaScript remove.
func isJSSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xA0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

// emailPattern é um pré-filtro sintático: algo@algo.algo, sem espaços e com
// um único '@' em cada parte. Não garante RFC 5322 nem entregabilidade.
var emailPattern = regexp.MustCompile(`^[^` + jsSpace + `@]+@[^` + jsSpace + `@]+\.[^` + jsSpace + `@]+$`)

func IsValidEmail(s string) bool { return emailPattern.MatchString(s) }

// Validate aplica as regras na ordem: presença, tipo, formato do e-mail,
// tamanho do nome, tamanho da mensagem. Devolve a submissão saneada ou um
// *domain.ValidationError com o primeiro motivo que falhou.
func Validate(sub domain.Submission) (domain.Sanitized, error) {
	if isFalsy(sub.Name) || isFalsy(sub.Email) || isFalsy(sub.Message) {
		return domain.Sanitized{}, domain.Reject(domain.ReasonMissingFields)
	}

	name, ok1 := sub.Name.(string)
	email, ok2 := sub.Email.(string)
	message, ok3 := sub.Message.(string)
	if !ok1 || !ok2 || !ok3 {
		return domain.Sanitized{}, domain.Reject(domain.ReasonInvalidTypes)
	}

	if !IsValidEmail(email) {
		return domain.Sanitized{}, domain.Reject(domain.ReasonInvalidEmail)
	}

	if n := utf8.RuneCountInString(name); n < domain.NameMinLen || n > domain.NameMaxLen {
		return domain.Sanitized{}, domain.Reject(domain.ReasonNameLength)
	}

	if n := utf8.RuneCountInString(message); n < domain.MessageMinLen || n > domain.MessageMaxLen {
		return domain.Sanitized{}, domain.Reject(domain.ReasonMessageLength)
	}

	return domain.Sanitized{
		Name:    Sanitize(name),
		Email:   Sanitize(email),
		Message: Sanitize(message),
	}, nil
}

// isFalsy segue a noção de "vazio" de um corpo JSON: ausente, null, false,
// zero e string vazia. Objetos e arrays, mesmo vazios, contam como presentes
// (e depois caem na checagem de tipo).
func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0 || math.IsNaN(x)
	case int:
		return x == 0
	case int64:
		return x == 0
	default:
		return false
	}
}
