// Package config provides runtime configuration values for the client
// and the API simulator.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds configuration knobs for the API client and simulator.
type Config struct {
	BaseURL         string
	HTTPTimeout     time.Duration
	LowStockLimit   int64
	SimHTTPAddr     string
	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvms(key string, defMs int) time.Duration {
	ms := atoienv(key, defMs)
	return time.Duration(ms) * time.Millisecond
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults. A local
// .env file, when present, is loaded first so development values win
// over nothing but lose to real environment variables.
func Load() Config {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	return Config{
		BaseURL:         getenv("BASE_URL", "http://localhost:8080"),
		HTTPTimeout:     durenvms("HTTP_TIMEOUT_MS", 10000),
		LowStockLimit:   int64(atoienv("LOW_STOCK_LIMIT", 10)),
		SimHTTPAddr:     getenv("SIM_HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
	}
}
