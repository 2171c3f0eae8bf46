// Package domain define o conteúdo do portfólio: experiências, certificações
// e projetos.
package domain

import "time"

type Experience struct {
	ID        string `json:"id"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
	// EndDate nil significa emprego atual.
	EndDate      *string  `json:"endDate"`
	Description  []string `json:"description"`
	Technologies []string `json:"technologies"`
}

func (e Experience) Current() bool { return e.EndDate == nil }

type Certification struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	Image  string `json:"image"`
	Link   string `json:"link"`
}

type Project struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	TechStack   string     `json:"techStack"`
	Description string     `json:"description,omitempty"`
	Metrics     string     `json:"metrics,omitempty"`
	AddedAt     *time.Time `json:"addedAt,omitempty"`
}

// ProjectInput são os campos do formulário "add project" do admin.
type ProjectInput struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	TechStack string `json:"techStack"`
}

// Content é o conjunto estático que semeia o catálogo.
type Content struct {
	Experiences    []Experience    `json:"experiences"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
}
