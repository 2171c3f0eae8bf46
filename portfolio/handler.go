// Package portfolio expõe o conteúdo do site e a ação "add project" do admin.
//
//	GET  /api/experience
//	GET  /api/certifications
//	GET  /api/projects
//	POST /admin/projects   (form: title, link, techStack; sem autenticação)
package portfolio

import (
	"errors"
	"net/http"

	"portfolio-site/portfolio/application"
	"portfolio-site/portfolio/domain"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type Handler struct {
	catalog *application.Catalog
	log     zerolog.Logger
}

func NewHandler(catalog *application.Catalog, log zerolog.Logger) *Handler {
	return &Handler{catalog: catalog, log: log.With().Str("component", "portfolio_http").Logger()}
}

func (h *Handler) Experiences(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.Experiences())
}

func (h *Handler) Certifications(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.Certifications())
}

func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.Projects())
}

type addProjectFailure struct {
	Error     string `json:"error"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	TechStack string `json:"techStack"`
}

type addProjectSuccess struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Project domain.Project `json:"project"`
}

// AddProject é a ação do formulário do admin. Em caso de falha devolve 400 com
// o motivo e os valores enviados, para o formulário ser preenchido de novo.
func (h *Handler) AddProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.Error().Err(err).Msg("parse add project form")
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid form data"})
		return
	}

	in := domain.ProjectInput{
		Title:     r.PostForm.Get("title"),
		Link:      r.PostForm.Get("link"),
		TechStack: r.PostForm.Get("techStack"),
	}

	p, err := h.catalog.AddProject(in)
	switch {
	case errors.Is(err, domain.ErrMissingFields), errors.Is(err, domain.ErrInvalidURL):
		h.writeJSON(w, http.StatusBadRequest, addProjectFailure{
			Error:     err.Error(),
			Title:     in.Title,
			Link:      in.Link,
			TechStack: in.TechStack,
		})
		return
	case err != nil:
		h.log.Error().Err(err).Msg("add project")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	h.writeJSON(w, http.StatusOK, addProjectSuccess{
		Success: true,
		Message: "Project added successfully",
		Project: p,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.log.Error().Err(err).Msg("encode portfolio response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
