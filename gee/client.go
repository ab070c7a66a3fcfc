// Package gee talks to the Earth Engine proxy that owns satellite data
// access. The proxy runs band math and reducers server-side; this client
// only moves polygons in and reduction results out.
package gee

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mikemurefu-star/PixelFarm/geo"
	"github.com/mikemurefu-star/PixelFarm/models"
)

// collection pins the imagery source the proxy queries.
const collection = "COPERNICUS/S2_SR"

// Window bounds an imagery search in time and cloud cover.
type Window struct {
	Start         time.Time
	End           time.Time
	MaxCloudCover float64
}

// Client is the HTTP adapter for the proxy. A single circuit breaker
// guards all endpoints; once the proxy misbehaves repeatedly, calls
// fail fast until the cooldown expires.
type Client struct {
	baseURL string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:     "gee-proxy",
			Interval: 60 * time.Second,
			Timeout:  30 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 5
			},
		}),
	}
}

type geoJSONGeometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

type regionQuery struct {
	Collection    string          `json:"collection"`
	Geometry      geoJSONGeometry `json:"geometry"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	MaxCloudCover float64         `json:"max_cloud_cover"`
}

type sampleQuery struct {
	regionQuery
	MaxPixels int `json:"max_pixels"`
}

type indexValues struct {
	NDVI *float64 `json:"NDVI"`
	EVI  *float64 `json:"EVI"`
	NDWI *float64 `json:"NDWI"`
	NDRE *float64 `json:"NDRE"`
}

func newRegionQuery(poly geo.Polygon, win Window) regionQuery {
	return regionQuery{
		Collection: collection,
		Geometry: geoJSONGeometry{
			Type:        "Polygon",
			Coordinates: poly.Coordinates(),
		},
		StartDate:     win.Start.Format("2006-01-02"),
		EndDate:       win.End.Format("2006-01-02"),
		MaxCloudCover: win.MaxCloudCover,
	}
}

// ImageCount returns how many images in the collection match the
// polygon and window.
func (c *Client) ImageCount(ctx context.Context, poly geo.Polygon, win Window) (int, error) {
	var out struct {
		ImageCount int `json:"image_count"`
	}
	if err := c.postJSON(ctx, "/v1/imagery/count", newRegionQuery(poly, win), &out); err != nil {
		return 0, err
	}
	return out.ImageCount, nil
}

// MeanIndices returns the per-index means reduced over the polygon.
// Indices the proxy could not compute come back null and default to 0.
func (c *Client) MeanIndices(ctx context.Context, poly geo.Polygon, win Window) (models.IndexMeans, error) {
	var out struct {
		Indices indexValues `json:"indices"`
	}
	if err := c.postJSON(ctx, "/v1/indices/mean", newRegionQuery(poly, win), &out); err != nil {
		return models.IndexMeans{}, err
	}
	return models.IndexMeans{
		NDVI: orZero(out.Indices.NDVI),
		EVI:  orZero(out.Indices.EVI),
		NDWI: orZero(out.Indices.NDWI),
		NDRE: orZero(out.Indices.NDRE),
	}, nil
}

// SampleIndices returns up to limit complete per-pixel index tuples
// sampled inside the polygon. Pixels missing any of the four values
// (masked clouds, collection edges) are dropped.
func (c *Client) SampleIndices(ctx context.Context, poly geo.Polygon, win Window, limit int) ([]models.IndexSample, error) {
	var out struct {
		Samples []indexValues `json:"samples"`
	}
	q := sampleQuery{regionQuery: newRegionQuery(poly, win), MaxPixels: limit}
	if err := c.postJSON(ctx, "/v1/indices/sample", q, &out); err != nil {
		return nil, err
	}
	samples := make([]models.IndexSample, 0, len(out.Samples))
	for _, px := range out.Samples {
		if px.NDVI == nil || px.EVI == nil || px.NDWI == nil || px.NDRE == nil {
			continue
		}
		samples = append(samples, models.IndexSample{*px.NDVI, *px.EVI, *px.NDWI, *px.NDRE})
		if limit > 0 && len(samples) == limit {
			break
		}
	}
	return samples, nil
}

// Ping probes the proxy status endpoint. nil means the proxy is
// reachable and reports its Earth Engine session as initialized.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Initialized bool `json:"initialized"`
	}
	if err := c.getJSON(ctx, "/v1/status", &out); err != nil {
		return err
	}
	if !out.Initialized {
		return errors.New("gee proxy reachable but not initialized")
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal gee request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, fmt.Errorf("build gee request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("gee call failed: %w", err)
		}
		defer resp.Body.Close()

		data, _ := io.ReadAll(resp.Body)
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("gee non-2xx: %s, body: %s", resp.Status, string(data))
		}
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("decode gee response: %w", err)
		}
		return nil, nil
	})
	return err
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
