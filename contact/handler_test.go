package contact

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-site/contact/application"
	"portfolio-site/contact/domain"
	rlapp "portfolio-site/middleware/ratelimit/application"
	rldomain "portfolio-site/middleware/ratelimit/domain"
	"portfolio-site/middleware/ratelimit/infra"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const adaBody = `{"name":"Ada Lovelace","email":"ada@example.com","message":"Interested in collaborating on a project."}`

type panicSink struct{}

func (panicSink) Write(context.Context, domain.Accepted) error { panic("sink exploded") }

type errSink struct{}

func (errSink) Write(context.Context, domain.Accepted) error { return errors.New("db down") }

type env struct {
	h     *Handler
	table *infra.WindowTable
	stats *infra.MemoryStatsStore
	logs  *bytes.Buffer
	now   time.Time
}

func newEnv(t *testing.T, sink domain.Sink) *env {
	t.Helper()
	e := &env{logs: &bytes.Buffer{}, now: time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return e.now }
	e.table = infra.NewWindowTable(infra.WithTableClock(clock))
	e.stats = infra.NewMemoryStatsStore()

	throttle := &rlapp.WindowService{
		Store:  e.table,
		Window: rldomain.Window{Limit: 5, Length: time.Hour},
		Now:    clock,
		Stats:  e.stats,
		Name:   rldomain.LimiterContact,
	}
	log := zerolog.New(e.logs)
	svc := application.NewService(throttle, sink, log)
	e.h = NewHandler(svc, Options{Logger: log})
	return e
}

func (e *env) post(t *testing.T, remote, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "http://example/api/contact", strings.NewReader(body))
	r.RemoteAddr = remote
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.h.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHandler_Success(t *testing.T) {
	e := newEnv(t, nil)

	w := e.post(t, "203.0.113.7:5050", adaBody)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]any{"success": true, "message": "Contact form submitted successfully"}, decode(t, w))
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	require.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))

	rec, ok := e.table.Peek("203.0.113.7")
	require.True(t, ok)
	require.Equal(t, 1, rec.Count)
	require.Contains(t, e.logs.String(), "contact form submission")
}

func TestHandler_SixthRequestGets429(t *testing.T) {
	e := newEnv(t, nil)

	for i := 1; i <= 5; i++ {
		w := e.post(t, "203.0.113.7:5050", adaBody)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	e.now = e.now.Add(30 * time.Minute)
	w := e.post(t, "203.0.113.7:6060", adaBody)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, map[string]any{"error": "Too many requests. Please try again later."}, decode(t, w))
	require.Equal(t, "1800", w.Header().Get("Retry-After"))
	require.Empty(t, w.Header().Get("X-Frame-Options"))

	snap := e.stats.Snapshot()
	require.Equal(t, infra.Counters{Allowed: 5, Denied: 1}, snap.ByLimiter[rldomain.LimiterContact])
}

func TestHandler_InvalidEmailStillConsumesQuota(t *testing.T) {
	e := newEnv(t, nil)

	w := e.post(t, "198.51.100.1:1", `{"name":"Ada Lovelace","email":"bad-email","message":"Interested in collaborating on a project."}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, map[string]any{"error": "Invalid email format"}, decode(t, w))
	require.Empty(t, w.Header().Get("X-Content-Type-Options"))

	rec, ok := e.table.Peek("198.51.100.1")
	require.True(t, ok)
	require.Equal(t, 1, rec.Count)
}

func TestHandler_ValidationReasons(t *testing.T) {
	long := strings.Repeat("x", 101)
	cases := []struct {
		body string
		want string
	}{
		{`{"email":"ada@example.com","message":"Interested in collaborating."}`, "All fields are required"},
		{`{"name":"Ada","email":"ada@example.com","message":12345678901}`, "Invalid input types"},
		{`{"name":"Ada","email":"not-an-email","message":"Interested in collaborating."}`, "Invalid email format"},
		{`{"name":"A","email":"ada@example.com","message":"Interested in collaborating."}`, "Name must be between 2 and 100 characters"},
		{`{"name":"` + long + `","email":"ada@example.com","message":"Interested in collaborating."}`, "Name must be between 2 and 100 characters"},
		{`{"name":"Ada","email":"ada@example.com","message":"too short"}`, "Message must be between 10 and 5000 characters"},
		{`[1,2,3]`, "All fields are required"},
	}
	for i, tc := range cases {
		e := newEnv(t, nil)
		w := e.post(t, "10.1.1.1:1", tc.body)
		require.Equal(t, http.StatusBadRequest, w.Code, "case %d", i)
		require.Equal(t, tc.want, decode(t, w)["error"], "case %d", i)
	}
}

func TestHandler_MalformedBodyIs500(t *testing.T) {
	e := newEnv(t, nil)

	w := e.post(t, "10.1.1.1:1", `{"name":`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, map[string]any{"error": "Internal server error"}, decode(t, w))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.Empty(t, w.Header().Get("X-Frame-Options"))
	require.Empty(t, w.Header().Get("X-XSS-Protection"))
	require.Contains(t, e.logs.String(), `"level":"error"`)
}

func TestHandler_SinkErrorIs500(t *testing.T) {
	e := newEnv(t, errSink{})

	w := e.post(t, "10.1.1.1:1", adaBody)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, e.logs.String(), "db down")
	require.NotContains(t, w.Body.String(), "db down")
}

func TestHandler_PanicIs500(t *testing.T) {
	e := newEnv(t, panicSink{})

	w := e.post(t, "10.1.1.1:1", adaBody)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.Contains(t, e.logs.String(), "sink exploded")
}

func TestHandler_BodyTooLargeIs500(t *testing.T) {
	e := newEnv(t, nil)
	e.h.maxBody = 16

	w := e.post(t, "10.1.1.1:1", adaBody)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandler_Submit_WithoutHTTP(t *testing.T) {
	e := newEnv(t, nil)

	resp := e.h.Submit(context.Background(), "10.9.9.9", []byte(adaBody))
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, successBody{Success: true, Message: msgSuccess}, resp.Body)

	resp = e.h.Submit(context.Background(), "10.9.9.9", []byte(`{"name":"Ada","email":"x","message":"0123456789"}`))
	require.Equal(t, http.StatusBadRequest, resp.Status)
	require.Equal(t, errorBody{Error: "Invalid email format"}, resp.Body)
}

func TestHandler_TrustsForwardedForWhenConfigured(t *testing.T) {
	e := newEnv(t, nil)
	e.h.keyFn = func(r *http.Request) string { return r.Header.Get("X-Forwarded-For") }

	r := httptest.NewRequest(http.MethodPost, "http://example/api/contact", strings.NewReader(adaBody))
	r.Header.Set("X-Forwarded-For", "192.0.2.55")
	w := httptest.NewRecorder()
	e.h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	_, ok := e.table.Peek("192.0.2.55")
	require.True(t, ok)
}
