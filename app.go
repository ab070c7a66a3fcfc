package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/mikemurefu-star/PixelFarm/gee"
	"github.com/mikemurefu-star/PixelFarm/geo"
	"github.com/mikemurefu-star/PixelFarm/models"
)

// indexProvider is what the handlers need from the imagery service.
// gee.Client implements it; tests substitute stubs.
type indexProvider interface {
	ImageCount(ctx context.Context, poly geo.Polygon, win gee.Window) (int, error)
	MeanIndices(ctx context.Context, poly geo.Polygon, win gee.Window) (models.IndexMeans, error)
	SampleIndices(ctx context.Context, poly geo.Polygon, win gee.Window, limit int) ([]models.IndexSample, error)
	Ping(ctx context.Context) error
}

type App struct {
	cfg      Config
	log      *zap.SugaredLogger
	provider indexProvider
	metrics  *metrics
}

func newApp(cfg Config, log *zap.SugaredLogger, provider indexProvider) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		provider: provider,
		metrics:  newMetrics(),
	}
}
