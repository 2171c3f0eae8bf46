package application

import (
	"errors"
	"strings"
	"testing"

	"portfolio-site/contact/domain"

	"github.com/stretchr/testify/require"
)

func validSubmission() domain.Submission {
	return domain.Submission{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Message: "Interested in collaborating on a project.",
		Address: "10.0.0.1",
	}
}

func requireReason(t *testing.T, err error, want domain.Reason) {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	require.Equal(t, want, verr.Reason)
}

func TestValidate_Accepts(t *testing.T) {
	got, err := Validate(validSubmission())
	require.NoError(t, err)
	require.Equal(t, domain.Sanitized{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Message: "Interested in collaborating on a project.",
	}, got)
}

func TestValidate_SanitizesOutput(t *testing.T) {
	sub := validSubmission()
	sub.Name = "  <Ada>  "
	sub.Message = " Hello <b>there</b>, friend! "

	got, err := Validate(sub)
	require.NoError(t, err)
	require.Equal(t, "Ada", got.Name)
	require.Equal(t, "Hello bthere/b, friend!", got.Message)
}

func TestValidate_MissingFields(t *testing.T) {
	for _, field := range []string{"name", "email", "message"} {
		for _, empty := range []any{nil, "", false, 0.0} {
			sub := validSubmission()
			switch field {
			case "name":
				sub.Name = empty
			case "email":
				sub.Email = empty
			case "message":
				sub.Message = empty
			}
			_, err := Validate(sub)
			requireReason(t, err, domain.ReasonMissingFields)
		}
	}
}

func TestValidate_InvalidTypes(t *testing.T) {
	for _, v := range []any{42.0, true, []any{"a"}, map[string]any{}} {
		sub := validSubmission()
		sub.Email = v
		_, err := Validate(sub)
		requireReason(t, err, domain.ReasonInvalidTypes)
	}
}

func TestValidate_EmailFormat(t *testing.T) {
	valid := []string{"ada@example.com", "a.b+c@sub.example.co.uk", "x@y.z", "a@b.c.d"}
	invalid := []string{"not-an-email", "bad-email", "a@b", "@b.c", "a@.c", "a@b.", "a b@c.d", "a@b@c.d", "a@b .c"}

	for _, e := range valid {
		require.True(t, IsValidEmail(e), "expected %q to be valid", e)
	}
	for _, e := range invalid {
		require.False(t, IsValidEmail(e), "expected %q to be invalid", e)

		sub := validSubmission()
		sub.Email = e
		_, err := Validate(sub)
		requireReason(t, err, domain.ReasonInvalidEmail)
	}
}

func TestValidate_NameLength(t *testing.T) {
	cases := map[string]bool{
		"A":                      false,
		"Al":                     true,
		strings.Repeat("n", 100): true,
		strings.Repeat("n", 101): false,
		"Zé":                     true,
	}
	for name, ok := range cases {
		sub := validSubmission()
		sub.Name = name
		_, err := Validate(sub)
		if ok {
			require.NoError(t, err, "name of %d bytes", len(name))
			continue
		}
		requireReason(t, err, domain.ReasonNameLength)
	}
}

func TestValidate_MessageLength(t *testing.T) {
	cases := map[int]bool{9: false, 10: true, 5000: true, 5001: false}
	for n, ok := range cases {
		sub := validSubmission()
		sub.Message = strings.Repeat("m", n)
		got, err := Validate(sub)
		if ok {
			require.NoError(t, err, "message length %d", n)
			require.Len(t, got.Message, n)
			continue
		}
		requireReason(t, err, domain.ReasonMessageLength)
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	// e-mail inválido e nome curto: o e-mail é checado antes
	sub := validSubmission()
	sub.Email = "nope"
	sub.Name = "A"
	_, err := Validate(sub)
	requireReason(t, err, domain.ReasonInvalidEmail)

	// tipo errado ganha de e-mail inválido
	sub = validSubmission()
	sub.Email = "nope"
	sub.Message = 12.0
	_, err = Validate(sub)
	requireReason(t, err, domain.ReasonInvalidTypes)

	// ausência ganha de tudo
	sub = domain.Submission{Name: 1.0, Email: "nope"}
	_, err = Validate(sub)
	requireReason(t, err, domain.ReasonMissingFields)
}

func TestValidate_LengthsCountedBeforeSanitize(t *testing.T) {
	// "<>" conta para o mínimo do nome, mesmo sumindo no saneamento
	sub := validSubmission()
	sub.Name = "<>"
	got, err := Validate(sub)
	require.NoError(t, err)
	require.Equal(t, "", got.Name)
}

func TestValidate_LengthsCountCodePoints(t *testing.T) {
	// um emoji fora do BMP é um caractere só, mesmo ocupando dois code units UTF-16
	sub := validSubmission()
	sub.Name = "😀"
	_, err := Validate(sub)
	requireReason(t, err, domain.ReasonNameLength)

	sub.Name = "😀😀"
	_, err = Validate(sub)
	require.NoError(t, err)

	sub = validSubmission()
	sub.Message = strings.Repeat("😀", 5000)
	got, err := Validate(sub)
	require.NoError(t, err)
	require.Equal(t, sub.Message, got.Message)

	sub.Message = strings.Repeat("😀", 5001)
	_, err = Validate(sub)
	requireReason(t, err, domain.ReasonMessageLength)
}

func TestIsJSSpace_MatchesEmailClass(t *testing.T) {
	for _, r := range []rune{'\t', '\n', '\v', '\f', '\r', ' ', 0xA0, 0x1680, 0x2000, 0x200A, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF} {
		require.True(t, isJSSpace(r), "%U", r)
		require.False(t, IsValidEmail("ada"+string(r)+"@example.com"), "%U", r)
	}
	for _, r := range []rune{0x85, 0x200B, 'a', '@'} {
		require.False(t, isJSSpace(r), "%U", r)
	}
}
