// README: Home-zone records: service metadata plus a GeoJSON polygon collection.
package homezone

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var ErrInvalidZone = errors.New("invalid home zone")

// Zone is one parking area where a metered rental may end.
type Zone struct {
	ID                string                     `json:"id"`
	ServiceID         string                     `json:"serviceId"`
	ServiceType       string                     `json:"serviceType"`
	ServiceVisibility string                     `json:"serviceVisibility"`
	CityID            string                     `json:"cityId"`
	Geometry          *geojson.FeatureCollection `json:"zone"`

	polygons []orb.Geometry
	bound    orb.Bound
}
