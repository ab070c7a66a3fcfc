package analysis

import (
	"time"

	"github.com/mikemurefu-star/PixelFarm/models"
)

// Recommend maps mean index values, zone percentages and the calendar
// month to advisory texts. Every applicable rule contributes one line;
// the month is passed in so results stay reproducible in tests.
func Recommend(means models.IndexMeans, zones models.HealthZones, month time.Month) []string {
	recs := make([]string, 0, 6)

	switch {
	case means.NDVI > 0.7:
		recs = append(recs, "Excellent vegetation health detected. Continue current management practices.")
	case means.NDVI > 0.5:
		recs = append(recs, "Good vegetation health. Monitor for any declining trends.")
	case means.NDVI > 0.3:
		recs = append(recs, "Moderate vegetation vigor. Consider soil testing and targeted nutrient supplementation.")
	default:
		recs = append(recs, "Low vegetation vigor detected. Immediate attention required: check for pest, disease, or nutrient deficiencies.")
	}

	if means.NDWI < 0.1 {
		recs = append(recs, "Water stress indicators present. Increase irrigation frequency or check soil moisture.")
	} else if means.NDWI > 0.3 {
		recs = append(recs, "Adequate water content. Current irrigation schedule appears optimal.")
	}

	if zones.Stressed > 20 {
		recs = append(recs, "Significant stressed areas detected. Focus management on the stressed zones of the field.")
	}
	if zones.Healthy > 70 {
		recs = append(recs, "Majority of field shows healthy growth. Excellent field management.")
	}
	if zones.Healthy < 40 {
		recs = append(recs, "Less than half of the field is healthy. A comprehensive soil and tissue analysis is recommended.")
	}

	switch month {
	case time.June, time.July, time.August, time.September:
		recs = append(recs, "Growing season: Scout regularly for pest and disease pressure.")
	case time.March, time.April, time.May:
		recs = append(recs, "Spring season: Plan nutrient applications to support early growth.")
	case time.October, time.November, time.December:
		recs = append(recs, "Post-harvest season: Soil sampling and amendment planning recommended.")
	}

	if len(recs) == 0 {
		return []string{"Field analysis complete. Review index values and consult an agronomist for detailed guidance."}
	}
	return recs
}
