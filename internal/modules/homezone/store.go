// README: Loads home zones from the JSON export.
package homezone

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
)

// Load reads a JSON array of zones and indexes their polygons.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading home zones %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Set, error) {
	var zones []Zone
	if err := json.Unmarshal(data, &zones); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidZone, err)
	}
	for i := range zones {
		if err := index(&zones[i]); err != nil {
			return nil, err
		}
	}
	return &Set{zones: zones}, nil
}

func index(z *Zone) error {
	if z.ID == "" {
		return fmt.Errorf("%w: zone without id", ErrInvalidZone)
	}
	if z.Geometry == nil {
		return fmt.Errorf("%w: zone %s has no geometry", ErrInvalidZone, z.ID)
	}
	for _, f := range z.Geometry.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		switch g := f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			if len(z.polygons) == 0 {
				z.bound = g.Bound()
			} else {
				z.bound = z.bound.Union(g.Bound())
			}
			z.polygons = append(z.polygons, g)
		}
	}
	if len(z.polygons) == 0 {
		return fmt.Errorf("%w: zone %s has no polygons", ErrInvalidZone, z.ID)
	}
	return nil
}
