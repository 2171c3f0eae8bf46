// Package application mantém o catálogo do portfólio em memória e implementa
// a ação "add project" do admin.
package application

import (
	"net/url"
	"strings"
	"time"

	"portfolio-site/portfolio/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Catalog guarda o conteúdo do site. O conteúdo é fixo depois de NewCatalog:
// AddProject monta o projeto e devolve para quem chamou, mas nunca o publica.
type Catalog struct {
	content domain.Content
	log     zerolog.Logger

	Now   func() time.Time
	NewID func() string
}

func NewCatalog(seed domain.Content, log zerolog.Logger) *Catalog {
	return &Catalog{
		content: seed,
		log:     log.With().Str("component", "portfolio").Logger(),
		Now:     time.Now,
		NewID:   uuid.NewString,
	}
}

func (c *Catalog) Experiences() []domain.Experience {
	return append([]domain.Experience(nil), c.content.Experiences...)
}

func (c *Catalog) Certifications() []domain.Certification {
	return append([]domain.Certification(nil), c.content.Certifications...)
}

func (c *Catalog) Projects() []domain.Project {
	return append([]domain.Project(nil), c.content.Projects...)
}

// AddProject valida o formulário e monta o projeto. O catálogo não muda: o
// resultado só volta na resposta do admin e no log.
// Erros possíveis: domain.ErrMissingFields e domain.ErrInvalidURL.
func (c *Catalog) AddProject(in domain.ProjectInput) (domain.Project, error) {
	if in.Title == "" || in.Link == "" || in.TechStack == "" {
		return domain.Project{}, domain.ErrMissingFields
	}
	if !IsAbsoluteURL(in.Link) {
		return domain.Project{}, domain.ErrInvalidURL
	}

	now := c.Now()
	p := domain.Project{
		ID:          c.NewID(),
		Title:       in.Title,
		Link:        in.Link,
		TechStack:   in.TechStack,
		Description: "A project built with " + in.TechStack,
		AddedAt:     &now,
	}

	c.log.Info().
		Str("project_id", p.ID).
		Str("title", p.Title).
		Str("link", p.Link).
		Str("tech_stack", p.TechStack).
		Str("timestamp", now.UTC().Format(time.RFC3339Nano)).
		Msg("add project")
	return p, nil
}

// hostSchemes são os esquemas que exigem host ("http://" sozinho não vale).
var hostSchemes = map[string]bool{
	"http": true, "https": true, "ws": true, "wss": true, "ftp": true,
}

// IsAbsoluteURL aceita qualquer URL com esquema; para esquemas web exige host.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Scheme == "" {
		return false
	}
	if hostSchemes[strings.ToLower(u.Scheme)] && u.Host == "" {
		return false
	}
	return true
}
