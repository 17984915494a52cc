package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_ZeroDistance(t *testing.T) {
	zone := squareZone()
	buffered, err := Buffer(zone, 0)
	require.NoError(t, err)
	assert.Equal(t, zone, buffered)
}

func TestBuffer_NegativeDistance(t *testing.T) {
	_, err := Buffer(squareZone(), -10)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestBuffer_ExpandsOutward(t *testing.T) {
	zone := squareZone()
	buffered, err := Buffer(zone, 200)
	require.NoError(t, err)

	// Буфер замкнут и содержит исходные вершины
	require.GreaterOrEqual(t, len(buffered.Outer), 4)
	assert.Equal(t, buffered.Outer[0], buffered.Outer[len(buffered.Outer)-1])
	for _, v := range zone.Outer {
		assert.True(t, PointInPolygon(v, buffered), "original vertex %+v must stay inside the buffer", v)
	}

	// Точка в 150 м к востоку от середины восточного ребра - внутри 200 м буфера
	outside150 := Coordinate{Lon: 2.01 + 150/(metersPerDegreeLat*0.7547), Lat: 41.005}
	assert.True(t, PointInPolygon(outside150, buffered))
	assert.False(t, PointInPolygon(outside150, zone))

	// Точка в 400 м - уже за буфером
	outside400 := Coordinate{Lon: 2.01 + 400/(metersPerDegreeLat*0.7547), Lat: 41.005}
	assert.False(t, PointInPolygon(outside400, buffered))
}

func TestBuffer_WindingOrderIrrelevant(t *testing.T) {
	ccw := squareZone()

	cw := Polygon{Outer: make(Ring, len(ccw.Outer))}
	for i, c := range ccw.Outer {
		cw.Outer[len(ccw.Outer)-1-i] = c
	}

	probe := Coordinate{Lon: 2.01 + 100/(metersPerDegreeLat*0.7547), Lat: 41.005}

	bufCCW, err := Buffer(ccw, 200)
	require.NoError(t, err)
	bufCW, err := Buffer(cw, 200)
	require.NoError(t, err)

	assert.True(t, PointInPolygon(probe, bufCCW))
	assert.True(t, PointInPolygon(probe, bufCW))
}

func TestBuffer_Monotonicity(t *testing.T) {
	// Больший буфер покрывает меньший: точка внутри 100 м буфера
	// остаётся внутри 300 м буфера
	zone := squareZone()

	small, err := Buffer(zone, 100)
	require.NoError(t, err)
	large, err := Buffer(zone, 300)
	require.NoError(t, err)

	probes := []Coordinate{
		{Lon: 2.005, Lat: 41.005},
		{Lon: 2.01 + 80/(metersPerDegreeLat*0.7547), Lat: 41.005},
		{Lon: 2.005, Lat: 41.00 - 80/metersPerDegreeLat},
	}
	for _, p := range probes {
		if PointInPolygon(p, small) {
			assert.True(t, PointInPolygon(p, large), "point %+v inside 100m buffer must stay inside 300m buffer", p)
		}
	}
}

func TestBuffer_DegenerateRing(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
	}{
		{
			name: "two distinct vertices",
			poly: Polygon{Outer: Ring{{0, 0}, {1, 1}, {0, 0}}},
		},
		{
			name: "all duplicates",
			poly: Polygon{Outer: Ring{{0, 0}, {0, 0}, {0, 0}, {0, 0}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Buffer(tt.poly, 100)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestBuffer_DedupsRepeatedVertices(t *testing.T) {
	// Дубликаты вершин не ломают нормали
	zone := Polygon{Outer: Ring{
		{Lon: 2.00, Lat: 41.00},
		{Lon: 2.00, Lat: 41.00},
		{Lon: 2.01, Lat: 41.00},
		{Lon: 2.01, Lat: 41.01},
		{Lon: 2.00, Lat: 41.01},
		{Lon: 2.00, Lat: 41.00},
	}}
	buffered, err := Buffer(zone, 50)
	require.NoError(t, err)
	assert.True(t, PointInPolygon(Coordinate{Lon: 2.005, Lat: 41.005}, buffered))
}
