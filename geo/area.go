package geo

import "math"

const earthRadiusM = 6371000.0

// AreaHectares computes the geodesic area of the polygon on a spherical
// earth. Holes are subtracted from the outer ring.
func AreaHectares(p Polygon) float64 {
	if len(p.Rings) == 0 {
		return 0
	}
	area := ringAreaM2(p.Rings[0])
	for _, hole := range p.Rings[1:] {
		area -= ringAreaM2(hole)
	}
	if area < 0 {
		area = 0
	}
	return area / 10000.0
}

// ringAreaM2 is the spherical excess shoelace formula. Winding order does
// not matter to callers, so the absolute value is returned.
func ringAreaM2(ring []Position) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	for i := range ring {
		p1 := ring[i]
		p2 := ring[(i+1)%len(ring)]
		lam1 := p1.Lon * math.Pi / 180
		lam2 := p2.Lon * math.Pi / 180
		phi1 := p1.Lat * math.Pi / 180
		phi2 := p2.Lat * math.Pi / 180
		// Segments cross the antimeridian the short way.
		dLam := lam2 - lam1
		if dLam > math.Pi {
			dLam -= 2 * math.Pi
		} else if dLam < -math.Pi {
			dLam += 2 * math.Pi
		}
		sum += dLam * (2 + math.Sin(phi1) + math.Sin(phi2))
	}
	return math.Abs(sum) * earthRadiusM * earthRadiusM / 2
}
