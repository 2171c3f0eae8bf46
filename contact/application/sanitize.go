package application

import (
	"strings"

	"portfolio-site/contact/domain"
)

var angleStripper = strings.NewReplacer("<", "", ">", "")

// Sanitize remove todo '<' e '>', apara espaços nas pontas (o mesmo conjunto
// de isJSSpace, usado também no e-mail) e corta em
// domain.MaxFieldLen caracteres. Não é um parser de HTML.
//
// Depois do corte, espaços que sobrarem no fim também saem, para que
// Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(s string) string {
	s = angleStripper.Replace(s)
	s = strings.TrimFunc(s, isJSSpace)
	if cut, ok := truncateRunes(s, domain.MaxFieldLen); ok {
		s = strings.TrimRightFunc(cut, isJSSpace)
	}
	return s
}

// truncateRunes corta s em n code points; ok indica se houve corte.
func truncateRunes(s string, n int) (string, bool) {
	if len(s) <= n {
		return s, false
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], true
		}
		i++
	}
	return s, false
}
