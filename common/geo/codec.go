package geo

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb/encoding/ewkb"
	"github.com/paulmach/orb/geojson"
)

// SRID is the spatial reference for all stored geometry (WGS84 lon/lat).
// Geometry is stored and returned in this reference; no reprojection occurs.
const SRID = 4326

// UnsupportedGeometryError is returned when an interchange geometry has a
// missing or unrecognized type, or its coordinate structure does not match
// the declared kind.
type UnsupportedGeometryError struct {
	GeometryType string
	Reason       string
}

func (e *UnsupportedGeometryError) Error() string {
	if e.GeometryType == "" {
		return fmt.Sprintf("unsupported geometry: %s", e.Reason)
	}
	return fmt.Sprintf("unsupported geometry %q: %s", e.GeometryType, e.Reason)
}

var geometryTypes = map[string]bool{
	"Point":              true,
	"MultiPoint":         true,
	"LineString":         true,
	"MultiLineString":    true,
	"Polygon":            true,
	"MultiPolygon":       true,
	"GeometryCollection": true,
}

// Encode converts an interchange geometry document into the storage-native
// EWKB encoding, SRID 4326. Coordinate sequences and the geometry type tag
// round-trip exactly through Decode. Ring closure, winding and
// self-intersection are not checked; malformed but structurally valid
// geometry is encoded as-is.
func Encode(doc map[string]any) ([]byte, error) {
	if len(doc) == 0 {
		return nil, &UnsupportedGeometryError{Reason: "geometry object is missing"}
	}

	typeTag, ok := doc["type"].(string)
	if !ok || typeTag == "" {
		return nil, &UnsupportedGeometryError{Reason: "type field is missing"}
	}
	if !geometryTypes[typeTag] {
		return nil, &UnsupportedGeometryError{GeometryType: typeTag, Reason: "not a recognized geometry kind"}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, &UnsupportedGeometryError{GeometryType: typeTag, Reason: err.Error()}
	}

	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, &UnsupportedGeometryError{
			GeometryType: typeTag,
			Reason:       fmt.Sprintf("coordinates do not match declared kind: %v", err),
		}
	}

	encoded, err := ewkb.Marshal(g.Geometry(), SRID)
	if err != nil {
		return nil, &UnsupportedGeometryError{GeometryType: typeTag, Reason: err.Error()}
	}

	return encoded, nil
}

// Decode converts storage-native EWKB back into an interchange geometry.
func Decode(data []byte) (*geojson.Geometry, error) {
	g, _, err := ewkb.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode stored geometry: %w", err)
	}

	return geojson.NewGeometry(g), nil
}
