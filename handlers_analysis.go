package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/mikemurefu-star/PixelFarm/analysis"
	"github.com/mikemurefu-star/PixelFarm/gee"
	"github.com/mikemurefu-star/PixelFarm/geo"
	"github.com/mikemurefu-star/PixelFarm/models"
)

const (
	lookbackDays     = 60
	maxCloudCoverPct = 30
	samplePixelCap   = 1000
	minAreaHectares  = 0.1
	maxAreaHectares  = 10000.0
)

// Client-facing messages. Raw provider errors are logged, never returned.
const (
	msgBadJSON       = "Request body must be valid JSON"
	msgNoImagery     = "No suitable satellite imagery found for the selected area and time period"
	msgProviderError = "Analysis failed due to an upstream imagery service error"
	msgInternalError = "Internal server error"
)

// handleAnalyzeField runs the whole pipeline: validate the polygon,
// check imagery availability over the lookback window, pull the index
// reductions, zone the pixel samples and attach recommendations.
func (a *App) handleAnalyzeField(w http.ResponseWriter, r *http.Request) {
	var req analyzeFieldReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.validationFail(w, msgBadJSON)
		return
	}

	poly, ok, msg := geo.ValidatePolygon(req.Geometry)
	if !ok {
		a.validationFail(w, msg)
		return
	}

	area := geo.AreaHectares(poly)
	if area < minAreaHectares {
		a.validationFail(w, fmt.Sprintf("Field area of %.2f hectares is below the %g hectare minimum", area, minAreaHectares))
		return
	}
	if area > maxAreaHectares {
		a.validationFail(w, fmt.Sprintf("Field area of %.2f hectares exceeds the %g hectare maximum", area, maxAreaHectares))
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()
	win := gee.Window{
		Start:         now.AddDate(0, 0, -lookbackDays),
		End:           now,
		MaxCloudCover: maxCloudCoverPct,
	}

	count, err := a.provider.ImageCount(ctx, poly, win)
	if err != nil {
		a.providerFail(w, r, "imagery count failed", err)
		return
	}
	if count == 0 {
		a.metrics.analysisOutcome("no_imagery")
		a.respondFail(w, http.StatusNotFound, msgNoImagery)
		return
	}

	means, err := a.provider.MeanIndices(ctx, poly, win)
	if err != nil {
		a.providerFail(w, r, "mean index reduction failed", err)
		return
	}

	samples, err := a.provider.SampleIndices(ctx, poly, win, samplePixelCap)
	if err != nil {
		a.providerFail(w, r, "index sampling failed", err)
		return
	}

	cls := analysis.ClassifyHealthZones(samples)
	if cls.Outcome != analysis.OutcomeClustered {
		a.log.Warnw("health zoning degraded",
			"outcome", cls.Outcome,
			"samples", len(samples),
			"request_id", requestID(r),
		)
	}
	recs := analysis.Recommend(means, cls.Zones, now.Month())

	result, err := buildAnalysisResult(area, means, cls.Zones, recs, count, now)
	if err != nil {
		a.metrics.analysisOutcome("internal_error")
		a.log.Errorw("assemble analysis result", "error", err, "request_id", requestID(r))
		a.respondFail(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	a.metrics.analysisOutcome("ok")
	a.log.Infow("field analyzed",
		"area_ha", result.FieldAreaHectares,
		"images", count,
		"zone_outcome", cls.Outcome,
		"request_id", requestID(r),
	)
	a.respondData(w, http.StatusOK, "Field analysis completed successfully", result)
}

// handleHealth reports liveness plus the imagery provider's readiness.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := a.provider.Ping(ctx); err != nil {
		a.log.Warnw("provider health probe failed", "error", err, "request_id", requestID(r))
		a.respondFail(w, http.StatusServiceUnavailable, "Imagery provider is unavailable")
		return
	}
	a.respondData(w, http.StatusOK, "Service is healthy", healthStatus{
		GEEInitialized: true,
		Version:        version,
	})
}

func (a *App) validationFail(w http.ResponseWriter, msg string) {
	a.metrics.analysisOutcome("validation_failed")
	a.respondFail(w, http.StatusBadRequest, msg)
}

func (a *App) providerFail(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	a.metrics.analysisOutcome("provider_error")
	a.log.Errorw(logMsg, "error", err, "request_id", requestID(r))
	a.respondFail(w, http.StatusInternalServerError, msgProviderError)
}

// buildAnalysisResult assembles the response payload with the agreed
// rounding: area 2 decimals, index means 3, zone percentages come
// pre-rounded from the classifier.
func buildAnalysisResult(areaHa float64, means models.IndexMeans, zones models.HealthZones, recs []string, imageCount int, now time.Time) (*models.AnalysisResult, error) {
	var err error
	round := func(v float64, places int) float64 {
		rounded, rerr := stats.Round(v, places)
		if rerr != nil && err == nil {
			err = rerr
		}
		return rounded
	}

	out := &models.AnalysisResult{
		FieldAreaHectares: round(areaHa, 2),
		AvgNDVI:           round(means.NDVI, 3),
		AvgEVI:            round(means.EVI, 3),
		AvgNDWI:           round(means.NDWI, 3),
		AvgNDRE:           round(means.NDRE, 3),
		HealthZones:       zones,
		Recommendations:   recs,
		AnalysisDate:      now.Format("2006-01-02"),
		ImageCount:        imageCount,
	}
	if err != nil {
		return nil, fmt.Errorf("round summary values: %w", err)
	}
	return out, nil
}
