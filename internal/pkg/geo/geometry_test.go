package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareZone returns a closed CCW square roughly 840x1100 m at Barcelona latitude
func squareZone() Polygon {
	return Polygon{Outer: Ring{
		{Lon: 2.00, Lat: 41.00},
		{Lon: 2.01, Lat: 41.00},
		{Lon: 2.01, Lat: 41.01},
		{Lon: 2.00, Lat: 41.01},
		{Lon: 2.00, Lat: 41.00},
	}}
}

// uShapeZone returns a concave (U-shaped) polygon with a notch on the north side
func uShapeZone() Polygon {
	return Polygon{Outer: Ring{
		{Lon: 0.00, Lat: 0.00},
		{Lon: 0.30, Lat: 0.00},
		{Lon: 0.30, Lat: 0.30},
		{Lon: 0.20, Lat: 0.30},
		{Lon: 0.20, Lat: 0.10},
		{Lon: 0.10, Lat: 0.10},
		{Lon: 0.10, Lat: 0.30},
		{Lon: 0.00, Lat: 0.30},
		{Lon: 0.00, Lat: 0.00},
	}}
}

func TestPointInPolygon(t *testing.T) {
	zone := squareZone()

	tests := []struct {
		name     string
		point    Coordinate
		expected bool
	}{
		{"center is inside", Coordinate{Lon: 2.005, Lat: 41.005}, true},
		{"west of zone is outside", Coordinate{Lon: 1.99, Lat: 41.005}, false},
		{"north of zone is outside", Coordinate{Lon: 2.005, Lat: 41.02}, false},
		{"point on edge counts as inside", Coordinate{Lon: 2.005, Lat: 41.00}, true},
		{"vertex counts as inside", Coordinate{Lon: 2.00, Lat: 41.00}, true},
		{"just inside east edge", Coordinate{Lon: 2.0099, Lat: 41.005}, true},
		{"just outside east edge", Coordinate{Lon: 2.0101, Lat: 41.005}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PointInPolygon(tt.point, zone))
		})
	}
}

func TestPointInPolygon_Concave(t *testing.T) {
	zone := uShapeZone()

	// The notch between the two arms is outside the polygon
	assert.False(t, PointInPolygon(Coordinate{Lon: 0.15, Lat: 0.20}, zone))
	// Both arms are inside
	assert.True(t, PointInPolygon(Coordinate{Lon: 0.05, Lat: 0.20}, zone))
	assert.True(t, PointInPolygon(Coordinate{Lon: 0.25, Lat: 0.20}, zone))
	// The base is inside
	assert.True(t, PointInPolygon(Coordinate{Lon: 0.15, Lat: 0.05}, zone))
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 Coordinate
		expected       bool
	}{
		{
			name: "crossing segments",
			a1:   Coordinate{0, 0}, a2: Coordinate{1, 1},
			b1: Coordinate{0, 1}, b2: Coordinate{1, 0},
			expected: true,
		},
		{
			name: "parallel non-touching",
			a1:   Coordinate{0, 0}, a2: Coordinate{1, 0},
			b1: Coordinate{0, 1}, b2: Coordinate{1, 1},
			expected: false,
		},
		{
			name: "collinear overlap counts as intersection",
			a1:   Coordinate{0, 0}, a2: Coordinate{2, 0},
			b1: Coordinate{1, 0}, b2: Coordinate{3, 0},
			expected: true,
		},
		{
			name: "collinear disjoint",
			a1:   Coordinate{0, 0}, a2: Coordinate{1, 0},
			b1: Coordinate{2, 0}, b2: Coordinate{3, 0},
			expected: false,
		},
		{
			name: "touching at endpoint",
			a1:   Coordinate{0, 0}, a2: Coordinate{1, 1},
			b1: Coordinate{1, 1}, b2: Coordinate{2, 0},
			expected: true,
		},
		{
			name: "T-touch in the middle",
			a1:   Coordinate{0, 0}, a2: Coordinate{2, 0},
			b1: Coordinate{1, 0}, b2: Coordinate{1, 1},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SegmentsIntersect(tt.a1, tt.a2, tt.b1, tt.b2))
		})
	}
}

func TestPolylineIntersectsPolygon(t *testing.T) {
	zone := squareZone()

	t.Run("crossing line with no vertex inside", func(t *testing.T) {
		line := Polyline{
			{Lon: 1.99, Lat: 41.005},
			{Lon: 2.02, Lat: 41.005},
		}
		assert.True(t, PolylineIntersectsPolygon(line, zone))
	})

	t.Run("vertex inside", func(t *testing.T) {
		line := Polyline{
			{Lon: 2.005, Lat: 41.005},
			{Lon: 2.02, Lat: 41.02},
		}
		assert.True(t, PolylineIntersectsPolygon(line, zone))
	})

	t.Run("fully outside", func(t *testing.T) {
		line := Polyline{
			{Lon: 1.90, Lat: 41.005},
			{Lon: 1.95, Lat: 41.005},
		}
		assert.False(t, PolylineIntersectsPolygon(line, zone))
	})
}

func TestPolylineFullyInside(t *testing.T) {
	zone := squareZone()

	t.Run("square loop fully inside", func(t *testing.T) {
		line := Polyline{
			{Lon: 2.003, Lat: 41.003},
			{Lon: 2.007, Lat: 41.003},
			{Lon: 2.007, Lat: 41.007},
			{Lon: 2.003, Lat: 41.007},
			{Lon: 2.003, Lat: 41.003},
		}
		assert.True(t, PolylineFullyInside(line, zone))
	})

	t.Run("one vertex outside", func(t *testing.T) {
		line := Polyline{
			{Lon: 2.005, Lat: 41.005},
			{Lon: 2.02, Lat: 41.005},
		}
		assert.False(t, PolylineFullyInside(line, zone))
	})

	t.Run("vertices inside but segment leaves a concave zone", func(t *testing.T) {
		// Both endpoints in the arms of the U, the segment crosses the notch
		concave := uShapeZone()
		line := Polyline{
			{Lon: 0.05, Lat: 0.25},
			{Lon: 0.25, Lat: 0.25},
		}
		assert.False(t, PolylineFullyInside(line, concave))
		// But it still intersects the zone
		assert.True(t, PolylineIntersectsPolygon(line, concave))
	})
}

func TestOverlapFraction(t *testing.T) {
	zone := squareZone()

	t.Run("half of the line inside", func(t *testing.T) {
		// From the center straight east, exits at lon 2.01, half in half out
		line := Polyline{
			{Lon: 2.005, Lat: 41.005},
			{Lon: 2.015, Lat: 41.005},
		}
		frac := OverlapFraction(line, zone)
		assert.InDelta(t, 0.5, frac, 0.05)
	})

	t.Run("fully inside", func(t *testing.T) {
		line := Polyline{
			{Lon: 2.002, Lat: 41.005},
			{Lon: 2.008, Lat: 41.005},
		}
		assert.InDelta(t, 1.0, OverlapFraction(line, zone), 0.001)
	})

	t.Run("fully outside", func(t *testing.T) {
		line := Polyline{
			{Lon: 1.90, Lat: 41.005},
			{Lon: 1.95, Lat: 41.005},
		}
		assert.Zero(t, OverlapFraction(line, zone))
	})

	t.Run("degenerate zero-length line inside", func(t *testing.T) {
		line := Polyline{
			{Lon: 2.005, Lat: 41.005},
			{Lon: 2.005, Lat: 41.005},
		}
		assert.Equal(t, 1.0, OverlapFraction(line, zone))
	})
}

func TestValidatePolygon(t *testing.T) {
	tests := []struct {
		name    string
		poly    Polygon
		wantErr bool
	}{
		{"valid square", squareZone(), false},
		{"too few points", Polygon{Outer: Ring{{0, 0}, {1, 0}, {0, 0}}}, true},
		{"not closed", Polygon{Outer: Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}, true},
		{"latitude out of range", Polygon{Outer: Ring{{0, 0}, {1, 0}, {1, 91}, {0, 0}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePolygon(tt.poly)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGeometry)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePolyline(t *testing.T) {
	assert.NoError(t, ValidatePolyline(Polyline{{0, 0}, {1, 1}}))
	assert.ErrorIs(t, ValidatePolyline(Polyline{{0, 0}}), ErrInvalidGeometry)
	assert.ErrorIs(t, ValidatePolyline(Polyline{{0, 0}, {200, 1}}), ErrInvalidGeometry)
}

func TestGeoJSONRoundTrip(t *testing.T) {
	t.Run("polygon", func(t *testing.T) {
		raw := `{"type":"Polygon","coordinates":[[[2.0,41.0],[2.01,41.0],[2.01,41.01],[2.0,41.0]]]}`
		var p Polygon
		require.NoError(t, json.Unmarshal([]byte(raw), &p))
		assert.Len(t, p.Outer, 4)
		assert.Equal(t, Coordinate{Lon: 2.01, Lat: 41.01}, p.Outer[2])

		out, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, raw, string(out))
	})

	t.Run("linestring", func(t *testing.T) {
		raw := `{"type":"LineString","coordinates":[[2.0,41.0],[2.005,41.002]]}`
		var l Polyline
		require.NoError(t, json.Unmarshal([]byte(raw), &l))
		require.Len(t, l, 2)
		assert.Equal(t, 41.002, l[1].Lat)
	})

	t.Run("wrong geometry type rejected", func(t *testing.T) {
		var p Polygon
		err := json.Unmarshal([]byte(`{"type":"Point","coordinates":[1,2]}`), &p)
		assert.Error(t, err)
	})
}
