// Package geo validates GeoJSON field boundaries and measures their area.
package geo

import "fmt"

// Position is one WGS84 coordinate, GeoJSON order (longitude first).
type Position struct {
	Lon float64
	Lat float64
}

// Polygon is a validated GeoJSON polygon. Ring 0 is the outer boundary,
// any further rings are holes. Immutable after validation.
type Polygon struct {
	Rings [][]Position
}

// Coordinates re-emits the polygon in GeoJSON nesting, for provider payloads.
func (p Polygon) Coordinates() [][][]float64 {
	out := make([][][]float64, len(p.Rings))
	for i, ring := range p.Rings {
		out[i] = make([][]float64, len(ring))
		for j, pos := range ring {
			out[i][j] = []float64{pos.Lon, pos.Lat}
		}
	}
	return out
}

// ValidatePolygon checks a decoded GeoJSON geometry object before any
// provider call is made. Rules run in order and the first failure wins;
// the returned message is safe to show to the client. On success the
// parsed polygon is returned with ok=true and an empty message.
func ValidatePolygon(geom map[string]any) (poly Polygon, ok bool, msg string) {
	if len(geom) == 0 {
		return Polygon{}, false, "Geometry is required"
	}
	if t, _ := geom["type"].(string); t != "Polygon" {
		return Polygon{}, false, "Geometry must be a Polygon"
	}
	rings, _ := geom["coordinates"].([]any)
	if len(rings) == 0 {
		return Polygon{}, false, "Polygon must have at least 3 points"
	}
	outer, _ := rings[0].([]any)
	// A closed ring with 3 distinct points repeats the first, so 4 positions.
	if len(outer) < 4 {
		return Polygon{}, false, "Polygon must have at least 3 points"
	}
	poly.Rings = make([][]Position, 0, len(rings))
	for _, rawRing := range rings {
		ring, _ := rawRing.([]any)
		positions := make([]Position, 0, len(ring))
		for _, rawPos := range ring {
			pos, ok, msg := parsePosition(rawPos)
			if !ok {
				return Polygon{}, false, msg
			}
			positions = append(positions, pos)
		}
		poly.Rings = append(poly.Rings, positions)
	}
	return poly, true, ""
}

func parsePosition(raw any) (Position, bool, string) {
	pair, _ := raw.([]any)
	if len(pair) != 2 {
		return Position{}, false, fmt.Sprintf("Invalid coordinate %v: each coordinate must be a [longitude, latitude] pair", raw)
	}
	lon, lonOK := pair[0].(float64)
	lat, latOK := pair[1].(float64)
	if !lonOK || !latOK {
		return Position{}, false, fmt.Sprintf("Invalid coordinate [%v, %v]: longitude and latitude must be numbers", pair[0], pair[1])
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return Position{}, false, fmt.Sprintf("Invalid coordinate [%g, %g]: longitude must be between -180 and 180, latitude between -90 and 90", lon, lat)
	}
	return Position{Lon: lon, Lat: lat}, true, ""
}
