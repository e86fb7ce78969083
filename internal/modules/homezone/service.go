// README: Point-in-zone lookup over the loaded home zones.
package homezone

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"carshare/internal/types"
)

// Set is an immutable collection of zones, safe for concurrent use.
type Set struct {
	zones []Zone
}

func (s *Set) Len() int {
	return len(s.zones)
}

// Contains reports whether p lies inside any zone.
func (s *Set) Contains(p types.Point) bool {
	_, ok := s.Find(p)
	return ok
}

// Find returns the first zone containing p.
func (s *Set) Find(p types.Point) (Zone, bool) {
	pt := orb.Point{p.Lng, p.Lat}
	for _, z := range s.zones {
		if !z.bound.Contains(pt) {
			continue
		}
		for _, g := range z.polygons {
			switch poly := g.(type) {
			case orb.Polygon:
				if planar.PolygonContains(poly, pt) {
					return z, true
				}
			case orb.MultiPolygon:
				if planar.MultiPolygonContains(poly, pt) {
					return z, true
				}
			}
		}
	}
	return Zone{}, false
}
