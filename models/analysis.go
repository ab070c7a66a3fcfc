package models

// Zone is one of the three field health categories derived from clustering.
type Zone string

const (
	ZoneHealthy  Zone = "healthy"
	ZoneModerate Zone = "moderate"
	ZoneStressed Zone = "stressed"
)

// IndexSample holds the four index values of one sampled pixel,
// in the fixed order NDVI, EVI, NDWI, NDRE.
type IndexSample [4]float64

// Positions of each index inside an IndexSample.
const (
	IdxNDVI = iota
	IdxEVI
	IdxNDWI
	IdxNDRE
)

// IndexMeans is the field-wide mean of each index over the polygon.
// Indices the provider could not compute arrive as zero.
type IndexMeans struct {
	NDVI float64
	EVI  float64
	NDWI float64
	NDRE float64
}

// HealthZones maps each zone to the percentage of sampled pixels it covers.
// Percentages are rounded to one decimal by the classifier and sum to 100
// (within rounding) when clustering succeeded, or 60/30/10 in degraded mode.
type HealthZones struct {
	Healthy  float64 `json:"healthy"`
	Moderate float64 `json:"moderate"`
	Stressed float64 `json:"stressed"`
}

// AnalysisResult is the data payload of a successful field analysis.
// Assembled once per request, never mutated afterwards.
type AnalysisResult struct {
	FieldAreaHectares float64     `json:"field_area_hectares"` // 2 decimals
	AvgNDVI           float64     `json:"avg_ndvi"`            // 3 decimals
	AvgEVI            float64     `json:"avg_evi"`
	AvgNDWI           float64     `json:"avg_ndwi"`
	AvgNDRE           float64     `json:"avg_ndre"`
	HealthZones       HealthZones `json:"health_zones"`
	Recommendations   []string    `json:"recommendations"`
	AnalysisDate      string      `json:"analysis_date"` // YYYY-MM-DD
	ImageCount        int         `json:"image_count"`
}
