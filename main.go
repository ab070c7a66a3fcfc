package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"

	"github.com/mikemurefu-star/PixelFarm/gee"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()
	cfg := mustConfig()

	logger := newLogger(cfg.Env)
	defer logger.Sync()

	provider := gee.NewClient(cfg.GEEProxyURL, cfg.GEETimeout)

	// Probe the proxy with bounded retries. Startup continues either way;
	// until the proxy answers, /health reports the service as degraded.
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return provider.Ping(ctx)
	}, backoff.WithMaxRetries(bo, 3)); err != nil {
		logger.Warnw("gee proxy not ready, starting degraded", "error", err, "url", cfg.GEEProxyURL)
	}

	app := newApp(cfg, logger, provider)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Infow("PixelFarm API listening", "port", cfg.Port, "version", version)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("server exited", "error", err)
	}
}
