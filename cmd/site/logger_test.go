package main

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "debug", false)
	log.Debug().Str("ip", "203.0.113.7").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "portfolio-site", line["service"])
	assert.Equal(t, "203.0.113.7", line["ip"])
	assert.Contains(t, line, "time")
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	for _, lvl := range []string{"", "loud"} {
		log := newLogger(&bytes.Buffer{}, lvl, false)
		assert.Equal(t, zerolog.InfoLevel, log.GetLevel(), "level %q", lvl)
	}
}

func TestNewLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "info", true)
	log.Info().Msg("ready")

	assert.Contains(t, buf.String(), "ready")
	assert.NotContains(t, buf.String(), `"message"`)
}
