package main

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port           string
	Env            string
	GEEProxyURL    string
	GEETimeout     time.Duration
	AllowedOrigins []string
}

func mustConfig() Config {
	cfg := Config{
		Port:           getenv("PORT", "8080"),
		Env:            getenv("APP_ENV", "dev"),
		GEEProxyURL:    getenv("GEE_PROXY_URL", "http://127.0.0.1:8000"),
		GEETimeout:     getdur("GEE_TIMEOUT", 25*time.Second),
		AllowedOrigins: splitCSV(getenv("ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")),
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
