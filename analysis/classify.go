// Package analysis turns sampled vegetation indices into health zones
// and advisory recommendations.
package analysis

import (
	"math"
	"math/rand"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/mikemurefu-star/PixelFarm/models"
)

const (
	zoneCount       = 3
	clusterSeed     = 42
	clusterRestarts = 10
	clusterMaxIter  = 100
)

// Outcome names which path produced a classification. Degraded paths
// still return usable zone percentages, never an error.
type Outcome string

const (
	OutcomeClustered        Outcome = "clustered"
	OutcomeInsufficientData Outcome = "insufficient_data"
	OutcomeDegenerate       Outcome = "degenerate_clusters"
)

// Classification is the result of zoning a field's pixel samples.
type Classification struct {
	Zones      models.HealthZones
	Assignment map[int]models.Zone
	Outcome    Outcome
}

func fallbackClassification(outcome Outcome) Classification {
	return Classification{
		Zones:      models.HealthZones{Healthy: 60, Moderate: 30, Stressed: 10},
		Assignment: map[int]models.Zone{0: models.ZoneHealthy, 1: models.ZoneModerate, 2: models.ZoneStressed},
		Outcome:    outcome,
	}
}

// ClassifyHealthZones partitions complete index samples into three
// clusters, labels them healthy/moderate/stressed by descending mean
// NDVI, and reports each label's share of the samples rounded to one
// decimal. Callers pass only complete samples; fewer than three of
// them, or input too degenerate to form three clusters, yields the
// fixed fallback distribution instead of an error.
func ClassifyHealthZones(samples []models.IndexSample) Classification {
	if len(samples) < zoneCount {
		return fallbackClassification(OutcomeInsufficientData)
	}

	rng := rand.New(rand.NewSource(clusterSeed))
	var bestLabels []int
	bestInertia := math.Inf(1)
	for r := 0; r < clusterRestarts; r++ {
		labels, inertia := runKMeans(rng, samples)
		if inertia < bestInertia {
			bestInertia = inertia
			bestLabels = labels
		}
	}

	counts := make([]int, zoneCount)
	ndviByCluster := make([][]float64, zoneCount)
	for i, lbl := range bestLabels {
		counts[lbl]++
		ndviByCluster[lbl] = append(ndviByCluster[lbl], samples[i][models.IdxNDVI])
	}
	for _, c := range counts {
		if c == 0 {
			return fallbackClassification(OutcomeDegenerate)
		}
	}

	type clusterNDVI struct {
		id   int
		mean float64
	}
	ranked := make([]clusterNDVI, 0, zoneCount)
	for id := 0; id < zoneCount; id++ {
		mean, err := stats.Mean(ndviByCluster[id])
		if err != nil {
			return fallbackClassification(OutcomeDegenerate)
		}
		ranked = append(ranked, clusterNDVI{id: id, mean: mean})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].mean > ranked[j].mean })

	labels := []models.Zone{models.ZoneHealthy, models.ZoneModerate, models.ZoneStressed}
	assignment := make(map[int]models.Zone, zoneCount)
	pct := make(map[models.Zone]float64, zoneCount)
	total := float64(len(samples))
	for rank, cl := range ranked {
		zone := labels[rank]
		assignment[cl.id] = zone
		share, err := stats.Round(float64(counts[cl.id])/total*100, 1)
		if err != nil {
			return fallbackClassification(OutcomeDegenerate)
		}
		pct[zone] = share
	}

	return Classification{
		Zones: models.HealthZones{
			Healthy:  pct[models.ZoneHealthy],
			Moderate: pct[models.ZoneModerate],
			Stressed: pct[models.ZoneStressed],
		},
		Assignment: assignment,
		Outcome:    OutcomeClustered,
	}
}

// runKMeans performs one seeded k-means++ run over the samples and
// returns per-sample labels with the final inertia.
func runKMeans(rng *rand.Rand, samples []models.IndexSample) ([]int, float64) {
	centroids := seedCentroids(rng, samples)

	assign := make([]int, len(samples))
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < clusterMaxIter; iter++ {
		changed := false
		for i, s := range samples {
			best := 0
			bestDist := dist2(s, centroids[0])
			for c := 1; c < zoneCount; c++ {
				if d := dist2(s, centroids[c]); d < bestDist {
					bestDist = d
					best = c
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		var sums [zoneCount]models.IndexSample
		var counts [zoneCount]int
		for i, s := range samples {
			c := assign[i]
			counts[c]++
			for d := 0; d < len(s); d++ {
				sums[c][d] += s[d]
			}
		}
		for c := 0; c < zoneCount; c++ {
			// An empty cluster keeps its previous centroid.
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < len(sums[c]); d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	var inertia float64
	for i, s := range samples {
		inertia += dist2(s, centroids[assign[i]])
	}
	return assign, inertia
}

// seedCentroids is k-means++ seeding: a random first centroid, then
// each next centroid drawn with probability proportional to squared
// distance from the nearest chosen one.
func seedCentroids(rng *rand.Rand, samples []models.IndexSample) [zoneCount]models.IndexSample {
	var centroids [zoneCount]models.IndexSample
	centroids[0] = samples[rng.Intn(len(samples))]

	d2 := make([]float64, len(samples))
	for k := 1; k < zoneCount; k++ {
		var total float64
		for i, s := range samples {
			nearest := dist2(s, centroids[0])
			for c := 1; c < k; c++ {
				if d := dist2(s, centroids[c]); d < nearest {
					nearest = d
				}
			}
			d2[i] = nearest
			total += nearest
		}
		if total == 0 {
			// All samples coincide with a centroid already.
			centroids[k] = samples[rng.Intn(len(samples))]
			continue
		}
		target := rng.Float64() * total
		var acc float64
		pick := len(samples) - 1
		for i, d := range d2 {
			acc += d
			if acc >= target {
				pick = i
				break
			}
		}
		centroids[k] = samples[pick]
	}
	return centroids
}

func dist2(a, b models.IndexSample) float64 {
	var sum float64
	for d := 0; d < len(a); d++ {
		diff := a[d] - b[d]
		sum += diff * diff
	}
	return sum
}
