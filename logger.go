package main

import (
	"strings"

	"go.uber.org/zap"
)

// newLogger builds the process-wide sugared logger. Production gets
// JSON output, anything else the human-readable development encoder.
func newLogger(env string) *zap.SugaredLogger {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return zap.Must(cfg.Build()).Sugar()
}
