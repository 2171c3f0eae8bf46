package contact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"portfolio-site/contact/application"
	"portfolio-site/contact/domain"
	"portfolio-site/middleware/ratelimit"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const DefaultMaxBody int64 = 1 << 20

type Options struct {
	// KeyFn extrai o endereço do cliente. Padrão: ratelimit.DefaultKeyFunc("", false).
	KeyFn   ratelimit.KeyFunc
	MaxBody int64
	Logger  zerolog.Logger
}

type Handler struct {
	svc     *application.Service
	keyFn   ratelimit.KeyFunc
	maxBody int64
	log     zerolog.Logger
}

func NewHandler(svc *application.Service, opts Options) *Handler {
	if opts.KeyFn == nil {
		opts.KeyFn = ratelimit.DefaultKeyFunc("", false)
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}
	return &Handler{
		svc:     svc,
		keyFn:   opts.KeyFn,
		maxBody: opts.MaxBody,
		log:     opts.Logger.With().Str("component", "contact_http").Logger(),
	}
}

// Submit roda o pipeline completo para um corpo já em memória.
func (h *Handler) Submit(ctx context.Context, address string, raw []byte) Response {
	return h.submit(ctx, address, bytes.NewReader(raw))
}

func (h *Handler) submit(ctx context.Context, address string, body io.Reader) (resp Response) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error().
				Str("ip", address).
				Interface("panic", rec).
				Msg("panic while processing contact form")
			resp = internalResponse()
		}
	}()

	if _, err := h.svc.Submit(ctx, address, body); err != nil {
		var terr *domain.ThrottleError
		var verr *domain.ValidationError
		if !errors.As(err, &terr) && !errors.As(err, &verr) {
			// throttle e validação são respostas normais; só o resto vai para o log
			h.log.Error().Err(err).Str("ip", address).Msg("error processing contact form")
		}
		return errorResponse(err)
	}
	return successResponse()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	address := h.keyFn(r)
	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	defer body.Close()

	writeJSON(w, h.log, h.submit(r.Context(), address, body))
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, resp Response) {
	payload, err := json.Marshal(resp.Body)
	if err != nil {
		log.Error().Err(err).Msg("encode contact response")
		resp = internalResponse()
		payload = []byte(fmt.Sprintf(`{"error":%q}`, msgInternal))
	}

	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(payload)
}
