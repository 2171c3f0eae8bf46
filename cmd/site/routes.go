package main

import (
	"context"
	"net/http"

	"portfolio-site/middleware/ratelimit/infra"
	"portfolio-site/portfolio"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type routes struct {
	contact   http.Handler
	portfolio *portfolio.Handler
	snapshot  func(ctx context.Context) (infra.StatsSnapshot, error)
	metrics   prometheus.Gatherer
	log       zerolog.Logger
}

func newRouter(rt routes) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(rt.metrics, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/experience", rt.portfolio.Experiences)
		r.Get("/certifications", rt.portfolio.Certifications)
		r.Get("/projects", rt.portfolio.Projects)
		r.Method(http.MethodPost, "/contact", rt.contact)
		r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
			snap, err := rt.snapshot(r.Context())
			if err != nil {
				rt.log.Error().Err(err).Msg("read stats")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			payload, err := json.Marshal(snap)
			if err != nil {
				rt.log.Error().Err(err).Msg("encode stats")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(payload)
		})
	})

	r.Post("/admin/projects", rt.portfolio.AddProject)
	return r
}
