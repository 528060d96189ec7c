package geospatial

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ParseBoundary validates a GeoJSON feature or geometry describing a
// project site and returns its geometry.
func ParseBoundary(raw []byte) (orb.Geometry, error) {
	if feature, err := geojson.UnmarshalFeature(raw); err == nil {
		if feature.Geometry == nil {
			return nil, errors.New("boundary feature has no geometry")
		}
		return feature.Geometry, nil
	}

	geometry, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, err
	}
	return geometry.Geometry(), nil
}

// AreaHectares returns the geodesic area of a lon/lat geometry in hectares.
func AreaHectares(geometry orb.Geometry) float64 {
	return geo.Area(geometry) / 10000
}

// Centroid returns the representative point of a boundary, used for map pins.
func Centroid(geometry orb.Geometry) orb.Point {
	centroid, _ := planar.CentroidArea(geometry)
	return centroid
}
