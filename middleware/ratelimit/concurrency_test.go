package ratelimit

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example"+path, nil))
	return w
}

func TestConcurrencyMiddleware_RejectsWhileSlotIsHeld(t *testing.T) {
	var logs bytes.Buffer
	hold := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once

	// /slow segura a única vaga até hold fechar
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			once.Do(func() { close(entered) })
			<-hold
		}
		w.WriteHeader(http.StatusOK)
	})

	h := ConcurrencyMiddleware(ConcurrencyOptions{
		Max:            1,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: 25 * time.Millisecond,
		Logger:         zerolog.New(&logs),
	})(next)

	slow := make(chan int, 1)
	go func() { slow <- serve(h, "/slow").Code }()

	select {
	case <-entered:
	case <-time.After(time.Second):
		close(hold)
		t.Fatal("slow request never entered the handler")
	}

	w := serve(h, "/api/projects")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, logs.String(), "no concurrency slot available")
	assert.Contains(t, logs.String(), `"path":"/api/projects"`)

	close(hold)
	require.Equal(t, http.StatusOK, <-slow)

	// vaga devolvida: a próxima passa
	assert.Equal(t, http.StatusOK, serve(h, "/api/projects").Code)
}

func TestConcurrencyMiddleware_DisabledWhenMaxIsZero(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	h := ConcurrencyMiddleware(ConcurrencyOptions{Max: 0})(next)
	assert.Equal(t, http.StatusAccepted, serve(h, "/").Code)
}

func TestConcurrencyMiddleware_DefaultRejectStatus(t *testing.T) {
	hold := make(chan struct{})
	entered := make(chan struct{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-hold
	})
	h := ConcurrencyMiddleware(ConcurrencyOptions{Max: 1, AcquireTimeout: 10 * time.Millisecond})(next)

	done := make(chan struct{})
	go func() {
		serve(h, "/")
		close(done)
	}()
	<-entered

	assert.Equal(t, http.StatusServiceUnavailable, serve(h, "/").Code)
	close(hold)
	<-done
}
