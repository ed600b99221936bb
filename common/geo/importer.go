package geo

import (
	"fmt"

	"github.com/gridworks/roadnet/common/apperr"
)

// Snapshot is the parsed form of one uploaded GeoJSON document: top-level
// metadata copied verbatim plus the ordered feature records. Feature order is
// part of the contract; re-export reproduces the same sequence.
type Snapshot struct {
	Type     string
	Name     string
	CRS      map[string]any
	Features []SnapshotFeature
}

// SnapshotFeature is one feature record ready for storage: type tag,
// opaque property bag and encoded geometry.
type SnapshotFeature struct {
	Type       string
	Properties map[string]any
	Geometry   []byte
}

// Import parses a GeoJSON FeatureCollection-like document into a Snapshot.
// Missing top-level keys default to the empty string or empty mapping, never
// nil. The first geometry failure aborts the whole import with an error
// carrying the offending feature index; callers persist all features or none.
func Import(doc map[string]any) (*Snapshot, error) {
	if doc == nil {
		return nil, apperr.Validation("geodata document is required")
	}

	snap := &Snapshot{
		Type: stringKey(doc, "type"),
		Name: stringKey(doc, "name"),
		CRS:  mapKey(doc, "crs"),
	}

	rawFeatures, _ := doc["features"].([]any)
	snap.Features = make([]SnapshotFeature, 0, len(rawFeatures))

	for i, raw := range rawFeatures {
		fm, ok := raw.(map[string]any)
		if !ok {
			return nil, apperr.Import(i, fmt.Errorf("feature is not an object"))
		}

		geomDoc, _ := fm["geometry"].(map[string]any)
		encoded, err := Encode(geomDoc)
		if err != nil {
			return nil, apperr.Import(i, err)
		}

		snap.Features = append(snap.Features, SnapshotFeature{
			Type:       stringKey(fm, "type"),
			Properties: mapKey(fm, "properties"),
			Geometry:   encoded,
		})
	}

	return snap, nil
}

func stringKey(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func mapKey(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok && v != nil {
		return v
	}
	return map[string]any{}
}
