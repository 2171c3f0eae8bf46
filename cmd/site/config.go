package main

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type config struct {
	listenAddr string
	trustXFF   bool
	keyHeader  string

	contactLimit      int
	contactWindow     time.Duration
	contactMaxEntries int
	contactSweepEvery time.Duration
	contactSinkDelay  time.Duration
	contactMaxBody    int64
	contactPrefix     string

	rateEnabled        bool
	rateRPS            float64
	rateBurst          int
	retryAfter         time.Duration
	addHeaders         bool
	concurrencyMax     int
	concurrencyTimeout time.Duration

	redisAddr     string
	redisPassword string
	redisDB       int

	statsPrefix    string
	statsTTL       time.Duration
	statsBucket    string
	statsTrackKeys bool

	logLevel  string
	logPretty bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.keyHeader = os.Getenv("CLIENT_KEY_HEADER")

	cfg.contactLimit = getenvIntDefault("CONTACT_LIMIT", 5)
	cfg.contactWindow = getenvDurationDefault("CONTACT_WINDOW", time.Hour)
	cfg.contactMaxEntries = getenvIntDefault("CONTACT_MAX_ENTRIES", 10000)
	cfg.contactSweepEvery = getenvDurationDefault("CONTACT_SWEEP_EVERY", 5*time.Minute)
	cfg.contactSinkDelay = getenvDurationDefault("CONTACT_SINK_DELAY", 0)
	cfg.contactMaxBody = int64(getenvIntDefault("CONTACT_MAX_BODY", 1<<20))
	cfg.contactPrefix = getenvDefault("CONTACT_WINDOW_PREFIX", "contact:window")

	cfg.rateEnabled = getenvBoolDefault("RATE_ENABLED", true)
	cfg.rateRPS = getenvFloatDefault("RATE_RPS", 10)
	// IMPORTANTE: o "burst" permite uma rajada inicial de requisições.
	// Com RPS muito baixo (ex: 0.02), o padrão 20 pode dar a impressão de que
	// o limiter não está funcionando, porque as primeiras ~20 passam.
	if burst, ok := getenvInt("RATE_BURST"); ok {
		cfg.rateBurst = burst
	} else {
		cfg.rateBurst = 20
		if getenvIsSet("RATE_RPS") && cfg.rateRPS > 0 && cfg.rateRPS < 1 {
			cfg.rateBurst = 1
		}
	}
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)
	cfg.addHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", false)
	cfg.concurrencyMax = getenvIntDefault("CONCURRENCY_MAX", 100)
	cfg.concurrencyTimeout = getenvDurationDefault("CONCURRENCY_TIMEOUT", 0)

	cfg.redisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.redisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.redisDB = getenvIntDefault("REDIS_DB", 0)

	cfg.statsPrefix = getenvDefault("RATE_STATS_PREFIX", "ratelimit:stats")
	cfg.statsTTL = getenvDurationDefault("RATE_STATS_TTL", 24*time.Hour)
	cfg.statsBucket = getenvDefault("RATE_STATS_BUCKET", "minute")
	cfg.statsTrackKeys = getenvBoolDefault("RATE_STATS_TRACK_KEYS", false)

	cfg.logLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.logPretty = getenvBoolDefault("LOG_PRETTY", false)

	if cfg.contactLimit <= 0 {
		return config{}, errors.New("CONTACT_LIMIT must be > 0")
	}
	if cfg.contactWindow <= 0 {
		return config{}, errors.New("CONTACT_WINDOW must be > 0")
	}
	if cfg.contactMaxEntries <= 0 {
		return config{}, errors.New("CONTACT_MAX_ENTRIES must be > 0")
	}
	if cfg.contactMaxBody <= 0 {
		return config{}, errors.New("CONTACT_MAX_BODY must be > 0")
	}
	if cfg.rateRPS <= 0 {
		return config{}, errors.New("RATE_RPS must be > 0")
	}
	if cfg.rateBurst <= 0 {
		return config{}, errors.New("RATE_BURST must be > 0")
	}
	if cfg.concurrencyMax < 0 {
		return config{}, errors.New("CONCURRENCY_MAX must be >= 0")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	if i, ok := getenvInt(k); ok {
		return i
	}
	return def
}

func getenvInt(k string) (int, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func getenvIsSet(k string) bool {
	v, ok := os.LookupEnv(k)
	return ok && v != ""
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
