package application

import (
	"errors"

	"portfolio-site/contact/domain"

	json "github.com/goccy/go-json"
)

var errNullBody = errors.New("request body is null")

// ParseBody decodifica o corpo JSON. Corpo malformado (ou null) é falha
// interna; um JSON válido que não é objeto vira submissão sem campos e cai na
// regra de presença.
func ParseBody(raw []byte, address string) (domain.Submission, error) {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return domain.Submission{}, domain.Internal("parse body", err)
	}
	if body == nil {
		return domain.Submission{}, domain.Internal("parse body", errNullBody)
	}

	sub := domain.Submission{Address: address}
	if fields, ok := body.(map[string]any); ok {
		sub.Name = fields["name"]
		sub.Email = fields["email"]
		sub.Message = fields["message"]
	}
	return sub, nil
}
