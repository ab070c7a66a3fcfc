package analysis

import (
	"math"
	"reflect"
	"testing"

	"github.com/mikemurefu-star/PixelFarm/models"
)

// indexGroup builds n samples jittered around a center so clusters are
// tight but not identical.
func indexGroup(n int, center models.IndexSample) []models.IndexSample {
	out := make([]models.IndexSample, n)
	for i := range out {
		j := float64(i%7) * 0.001
		for d := range center {
			out[i][d] = center[d] + j
		}
	}
	return out
}

func wantFallback(t *testing.T, got Classification, outcome Outcome) {
	t.Helper()
	if got.Outcome != outcome {
		t.Fatalf("outcome: got %q want %q", got.Outcome, outcome)
	}
	want := models.HealthZones{Healthy: 60, Moderate: 30, Stressed: 10}
	if got.Zones != want {
		t.Fatalf("zones: got %+v want %+v", got.Zones, want)
	}
	wantAssign := map[int]models.Zone{0: models.ZoneHealthy, 1: models.ZoneModerate, 2: models.ZoneStressed}
	if !reflect.DeepEqual(got.Assignment, wantAssign) {
		t.Fatalf("assignment: got %v want %v", got.Assignment, wantAssign)
	}
}

func TestClassifyHealthZonesInsufficientSamples(t *testing.T) {
	cases := []struct {
		name    string
		samples []models.IndexSample
	}{
		{name: "nil"},
		{name: "empty", samples: []models.IndexSample{}},
		{name: "one sample", samples: indexGroup(1, models.IndexSample{0.8, 0.5, 0.2, 0.4})},
		{name: "two samples", samples: indexGroup(2, models.IndexSample{0.8, 0.5, 0.2, 0.4})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wantFallback(t, ClassifyHealthZones(tc.samples), OutcomeInsufficientData)
		})
	}
}

func TestClassifyHealthZonesDegenerateInput(t *testing.T) {
	// Five identical samples cannot form three clusters.
	identical := make([]models.IndexSample, 5)
	for i := range identical {
		identical[i] = models.IndexSample{0.5, 0.3, 0.2, 0.25}
	}
	wantFallback(t, ClassifyHealthZones(identical), OutcomeDegenerate)
}

func TestClassifyHealthZonesSeparatedGroups(t *testing.T) {
	var samples []models.IndexSample
	samples = append(samples, indexGroup(5, models.IndexSample{0.85, 0.6, 0.3, 0.5})...)
	samples = append(samples, indexGroup(3, models.IndexSample{0.5, 0.35, 0.15, 0.3})...)
	samples = append(samples, indexGroup(2, models.IndexSample{0.12, 0.08, 0.02, 0.1})...)

	got := ClassifyHealthZones(samples)
	if got.Outcome != OutcomeClustered {
		t.Fatalf("outcome: got %q want %q", got.Outcome, OutcomeClustered)
	}
	want := models.HealthZones{Healthy: 50, Moderate: 30, Stressed: 20}
	if got.Zones != want {
		t.Fatalf("zones: got %+v want %+v", got.Zones, want)
	}

	if len(got.Assignment) != 3 {
		t.Fatalf("assignment size: got %d want 3", len(got.Assignment))
	}
	seen := map[models.Zone]int{}
	for _, zone := range got.Assignment {
		seen[zone]++
	}
	for _, zone := range []models.Zone{models.ZoneHealthy, models.ZoneModerate, models.ZoneStressed} {
		if seen[zone] != 1 {
			t.Fatalf("zone %q assigned to %d clusters, want exactly 1", zone, seen[zone])
		}
	}
}

func TestClassifyHealthZonesDeterministic(t *testing.T) {
	var samples []models.IndexSample
	samples = append(samples, indexGroup(4, models.IndexSample{0.8, 0.55, 0.25, 0.45})...)
	samples = append(samples, indexGroup(4, models.IndexSample{0.45, 0.3, 0.12, 0.28})...)
	samples = append(samples, indexGroup(4, models.IndexSample{0.15, 0.1, 0.04, 0.12})...)

	first := ClassifyHealthZones(samples)
	for i := 0; i < 5; i++ {
		again := ClassifyHealthZones(samples)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged: got %+v want %+v", i+1, again, first)
		}
	}
}

func TestClassifyHealthZonesPercentagesSum(t *testing.T) {
	// Three samples split 1/1/1, so each share rounds to 33.3 and the
	// sum lands at 99.9, inside the rounding tolerance.
	samples := []models.IndexSample{
		{0.85, 0.6, 0.3, 0.5},
		{0.5, 0.35, 0.15, 0.3},
		{0.12, 0.08, 0.02, 0.1},
	}
	got := ClassifyHealthZones(samples)
	if got.Outcome != OutcomeClustered {
		t.Fatalf("outcome: got %q want %q", got.Outcome, OutcomeClustered)
	}
	sum := got.Zones.Healthy + got.Zones.Moderate + got.Zones.Stressed
	if math.Abs(sum-100) > 0.1 {
		t.Fatalf("percentage sum: got %.2f want 100 within 0.1", sum)
	}
	if got.Zones.Healthy != 33.3 {
		t.Fatalf("healthy: got %v want 33.3", got.Zones.Healthy)
	}
}
