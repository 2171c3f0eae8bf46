// Package infra carrega o conteúdo estático do portfólio embutido no binário.
package infra

import (
	_ "embed"
	"fmt"

	"portfolio-site/portfolio/domain"

	json "github.com/goccy/go-json"
)

//go:embed seed.json
var seedJSON []byte

// Seed devolve uma cópia nova do conteúdo embutido a cada chamada.
func Seed() (domain.Content, error) {
	return ParseContent(seedJSON)
}

func ParseContent(raw []byte) (domain.Content, error) {
	var c domain.Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Content{}, fmt.Errorf("parse portfolio content: %w", err)
	}
	return c, nil
}
