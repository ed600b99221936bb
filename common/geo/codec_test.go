package geo

import (
	"errors"
	"reflect"
	"testing"

	"github.com/paulmach/orb"
)

// TestEncodeDecodeRoundTrip verifies decode(encode(g)) returns the same
// geometry type and coordinate sequence for every supported kind.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		doc  map[string]any
		want orb.Geometry
	}{
		{
			name: "Point",
			doc: map[string]any{
				"type":        "Point",
				"coordinates": []any{30.5, 50.4},
			},
			want: orb.Point{30.5, 50.4},
		},
		{
			name: "LineString",
			doc: map[string]any{
				"type": "LineString",
				"coordinates": []any{
					[]any{30.0, 50.0},
					[]any{30.1, 50.1},
					[]any{30.2, 50.05},
				},
			},
			want: orb.LineString{{30.0, 50.0}, {30.1, 50.1}, {30.2, 50.05}},
		},
		{
			name: "Polygon",
			doc: map[string]any{
				"type": "Polygon",
				"coordinates": []any{
					[]any{
						[]any{0.0, 0.0},
						[]any{1.0, 0.0},
						[]any{1.0, 1.0},
						[]any{0.0, 0.0},
					},
				},
			},
			want: orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		},
		{
			name: "MultiPoint",
			doc: map[string]any{
				"type": "MultiPoint",
				"coordinates": []any{
					[]any{10.0, 20.0},
					[]any{11.0, 21.0},
				},
			},
			want: orb.MultiPoint{{10, 20}, {11, 21}},
		},
		{
			name: "MultiLineString",
			doc: map[string]any{
				"type": "MultiLineString",
				"coordinates": []any{
					[]any{[]any{0.0, 0.0}, []any{1.0, 1.0}},
					[]any{[]any{2.0, 2.0}, []any{3.0, 3.0}},
				},
			},
			want: orb.MultiLineString{{{0, 0}, {1, 1}}, {{2, 2}, {3, 3}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := Encode(tc.doc)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if decoded.Type != tc.name {
				t.Errorf("expected type %q, got %q", tc.name, decoded.Type)
			}

			if !reflect.DeepEqual(decoded.Geometry(), tc.want) {
				t.Errorf("expected geometry %v, got %v", tc.want, decoded.Geometry())
			}
		})
	}
}

// TestEncodeUnsupportedGeometry verifies the failure taxonomy: missing type,
// unrecognized kind, and a coordinate structure that does not match the
// declared kind.
func TestEncodeUnsupportedGeometry(t *testing.T) {
	cases := []struct {
		name string
		doc  map[string]any
	}{
		{
			name: "missing geometry object",
			doc:  nil,
		},
		{
			name: "missing type field",
			doc: map[string]any{
				"coordinates": []any{1.0, 2.0},
			},
		},
		{
			name: "unrecognized kind",
			doc: map[string]any{
				"type":        "Circle",
				"coordinates": []any{1.0, 2.0},
			},
		},
		{
			name: "point with nested coordinate arrays",
			doc: map[string]any{
				"type": "Point",
				"coordinates": []any{
					[]any{1.0, 2.0},
					[]any{3.0, 4.0},
				},
			},
		},
		{
			name: "non-numeric coordinates",
			doc: map[string]any{
				"type":        "Point",
				"coordinates": []any{"a", "b"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(tc.doc)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var unsupported *UnsupportedGeometryError
			if !errors.As(err, &unsupported) {
				t.Errorf("expected UnsupportedGeometryError, got %T: %v", err, err)
			}
		})
	}
}

// TestEncodeSkipsStructuralValidation verifies that malformed but structurally
// valid geometry (an unclosed polygon ring) is stored as-is.
func TestEncodeSkipsStructuralValidation(t *testing.T) {
	doc := map[string]any{
		"type": "Polygon",
		"coordinates": []any{
			[]any{
				[]any{0.0, 0.0},
				[]any{1.0, 0.0},
				[]any{1.0, 1.0}, // ring not closed
			},
		},
	}

	encoded, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}}}
	if !reflect.DeepEqual(decoded.Geometry(), want) {
		t.Errorf("expected geometry %v, got %v", want, decoded.Geometry())
	}
}
