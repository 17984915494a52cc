package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry - вырожденная или невалидная геометрия (мало вершин, NaN,
// координаты вне диапазона). Ошибка детерминированная, ретраи бессмысленны.
var ErrInvalidGeometry = errors.New("invalid geometry")

const (
	// metersPerDegreeLat - метров в одном градусе широты (приблизительно постоянно)
	metersPerDegreeLat = 111320.0

	// overlapSampleMeters - шаг сэмплирования для расчёта доли перекрытия маршрута.
	// Значение подобрано под точность процента в UI, не под точную геометрию.
	overlapSampleMeters = 25.0
)

// Coordinate - точка в градусах WGS84, порядок (lon, lat) как в GeoJSON
type Coordinate struct {
	Lon float64
	Lat float64
}

// MarshalJSON сериализует координату как массив [lon, lat]
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lon, c.Lat})
}

// UnmarshalJSON читает координату из массива [lon, lat]
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) < 2 {
		return fmt.Errorf("coordinate must have at least 2 elements, got %d", len(arr))
	}
	c.Lon = arr[0]
	c.Lat = arr[1]
	return nil
}

// Valid проверяет диапазоны координат и отсутствие NaN/Inf
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lon) || math.IsNaN(c.Lat) || math.IsInf(c.Lon, 0) || math.IsInf(c.Lat, 0) {
		return false
	}
	return c.Lon >= -180 && c.Lon <= 180 && c.Lat >= -90 && c.Lat <= 90
}

// Ring - замкнутая последовательность координат (первая == последняя)
type Ring []Coordinate

// Polygon - полигон с одним внешним кольцом (дырки не поддерживаются)
type Polygon struct {
	Outer Ring
}

// Polyline - незамкнутая последовательность координат (трек маршрута)
type Polyline []Coordinate

// geoJSONGeometry - представление геометрии в GeoJSON для сериализации
type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// MarshalJSON сериализует полигон в GeoJSON объект
func (p Polygon) MarshalJSON() ([]byte, error) {
	coords, err := json.Marshal([]Ring{p.Outer})
	if err != nil {
		return nil, err
	}
	return json.Marshal(geoJSONGeometry{Type: "Polygon", Coordinates: coords})
}

// UnmarshalJSON читает полигон из GeoJSON объекта, берётся только внешнее кольцо
func (p *Polygon) UnmarshalJSON(data []byte) error {
	var g geoJSONGeometry
	if err := json.Unmarshal(data, &g); err != nil {
		return err
	}
	if g.Type != "Polygon" {
		return fmt.Errorf("expected Polygon geometry, got %q", g.Type)
	}
	var rings []Ring
	if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
		return err
	}
	if len(rings) == 0 {
		return fmt.Errorf("polygon has no rings")
	}
	p.Outer = rings[0]
	return nil
}

// MarshalJSON сериализует полилинию в GeoJSON LineString
func (l Polyline) MarshalJSON() ([]byte, error) {
	coords, err := json.Marshal([]Coordinate(l))
	if err != nil {
		return nil, err
	}
	return json.Marshal(geoJSONGeometry{Type: "LineString", Coordinates: coords})
}

// UnmarshalJSON читает полилинию из GeoJSON LineString
func (l *Polyline) UnmarshalJSON(data []byte) error {
	var g geoJSONGeometry
	if err := json.Unmarshal(data, &g); err != nil {
		return err
	}
	if g.Type != "LineString" {
		return fmt.Errorf("expected LineString geometry, got %q", g.Type)
	}
	var coords []Coordinate
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return err
	}
	*l = coords
	return nil
}

// ValidatePolygon проверяет полигон: минимум 4 точки, замкнутость, валидные координаты
func ValidatePolygon(p Polygon) error {
	if len(p.Outer) < 4 {
		return fmt.Errorf("%w: ring has %d points, need at least 4", ErrInvalidGeometry, len(p.Outer))
	}
	first, last := p.Outer[0], p.Outer[len(p.Outer)-1]
	if first != last {
		return fmt.Errorf("%w: ring is not closed", ErrInvalidGeometry)
	}
	for i, c := range p.Outer {
		if !c.Valid() {
			return fmt.Errorf("%w: ring point %d out of range", ErrInvalidGeometry, i)
		}
	}
	return nil
}

// ValidatePolyline проверяет маршрут: минимум 2 точки, валидные координаты
func ValidatePolyline(l Polyline) error {
	if len(l) < 2 {
		return fmt.Errorf("%w: polyline has %d points, need at least 2", ErrInvalidGeometry, len(l))
	}
	for i, c := range l {
		if !c.Valid() {
			return fmt.Errorf("%w: polyline point %d out of range", ErrInvalidGeometry, i)
		}
	}
	return nil
}

const onSegmentEps = 1e-12

// cross - z-компонента векторного произведения (b-a) x (c-a)
func cross(a, b, c Coordinate) float64 {
	return (b.Lon-a.Lon)*(c.Lat-a.Lat) - (b.Lat-a.Lat)*(c.Lon-a.Lon)
}

// pointOnSegment проверяет, что точка p лежит на отрезке [a, b]
func pointOnSegment(p, a, b Coordinate) bool {
	if math.Abs(cross(a, b, p)) > onSegmentEps {
		return false
	}
	return p.Lon >= math.Min(a.Lon, b.Lon)-onSegmentEps && p.Lon <= math.Max(a.Lon, b.Lon)+onSegmentEps &&
		p.Lat >= math.Min(a.Lat, b.Lat)-onSegmentEps && p.Lat <= math.Max(a.Lat, b.Lat)+onSegmentEps
}

// PointInPolygon проверяет попадание точки в полигон методом ray casting.
// Точки на границе считаются внутренними: для предупреждений безопасности
// ложное срабатывание у края зоны лучше пропущенного.
func PointInPolygon(p Coordinate, poly Polygon) bool {
	ring := poly.Outer
	n := len(ring)
	if n < 4 {
		return false
	}

	// Граница включается
	for i := 0; i < n-1; i++ {
		if pointOnSegment(p, ring[i], ring[i+1]) {
			return true
		}
	}

	inside := false
	for i, j := 0, n-2; i < n-1; j, i = i, i+1 {
		if (ring[i].Lat > p.Lat) != (ring[j].Lat > p.Lat) {
			x := (ring[j].Lon-ring[i].Lon)*(p.Lat-ring[i].Lat)/(ring[j].Lat-ring[i].Lat) + ring[i].Lon
			if p.Lon < x {
				inside = !inside
			}
		}
	}
	return inside
}

// SegmentsIntersect проверяет пересечение отрезков [a1,a2] и [b1,b2].
// Коллинеарное наложение считается пересечением.
func SegmentsIntersect(a1, a2, b1, b2 Coordinate) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Коллинеарные и касающиеся случаи
	if math.Abs(d1) <= onSegmentEps && pointOnSegment(a1, b1, b2) {
		return true
	}
	if math.Abs(d2) <= onSegmentEps && pointOnSegment(a2, b1, b2) {
		return true
	}
	if math.Abs(d3) <= onSegmentEps && pointOnSegment(b1, a1, a2) {
		return true
	}
	if math.Abs(d4) <= onSegmentEps && pointOnSegment(b2, a1, a2) {
		return true
	}
	return false
}

// PolylineIntersectsPolygon - true, если хотя бы одна вершина маршрута внутри полигона
// или хотя бы один сегмент маршрута пересекает ребро полигона
func PolylineIntersectsPolygon(line Polyline, poly Polygon) bool {
	for _, p := range line {
		if PointInPolygon(p, poly) {
			return true
		}
	}
	ring := poly.Outer
	for i := 0; i < len(line)-1; i++ {
		for j := 0; j < len(ring)-1; j++ {
			if SegmentsIntersect(line[i], line[i+1], ring[j], ring[j+1]) {
				return true
			}
		}
	}
	return false
}

// PolylineFullyInside - true, если все вершины маршрута внутри полигона и ни один
// сегмент не пересекает его границу. Проверка рёбер нужна, чтобы отсечь маршрут,
// который выходит за границу между двумя внутренними вершинами.
func PolylineFullyInside(line Polyline, poly Polygon) bool {
	if len(line) == 0 {
		return false
	}
	for _, p := range line {
		if !PointInPolygon(p, poly) {
			return false
		}
	}
	ring := poly.Outer
	for i := 0; i < len(line)-1; i++ {
		for j := 0; j < len(ring)-1; j++ {
			if segmentCrossesProper(line[i], line[i+1], ring[j], ring[j+1]) {
				return false
			}
		}
	}
	return true
}

// segmentCrossesProper - строгое пересечение отрезков (без касаний концами).
// Используется в PolylineFullyInside: касание границы изнутри не выводит маршрут из зоны.
func segmentCrossesProper(a1, a2, b1, b2 Coordinate) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)
	return ((d1 > onSegmentEps && d2 < -onSegmentEps) || (d1 < -onSegmentEps && d2 > onSegmentEps)) &&
		((d3 > onSegmentEps && d4 < -onSegmentEps) || (d3 < -onSegmentEps && d4 > onSegmentEps))
}

// SegmentLengthMeters - приблизительная длина отрезка в метрах
// (равнопромежуточная проекция, достаточно для зон в единицы километров)
func SegmentLengthMeters(a, b Coordinate) float64 {
	midLat := (a.Lat + b.Lat) / 2 * math.Pi / 180
	dx := (b.Lon - a.Lon) * metersPerDegreeLat * math.Cos(midLat)
	dy := (b.Lat - a.Lat) * metersPerDegreeLat
	return math.Sqrt(dx*dx + dy*dy)
}

// LengthMeters - приблизительная длина полилинии в метрах
func LengthMeters(line Polyline) float64 {
	total := 0.0
	for i := 0; i < len(line)-1; i++ {
		total += SegmentLengthMeters(line[i], line[i+1])
	}
	return total
}

// OverlapFraction возвращает долю длины маршрута внутри полигона, [0, 1].
// Каждый сегмент разбивается на подотрезки по overlapSampleMeters, средняя точка
// каждого подотрезка проверяется через PointInPolygon, вклад взвешивается длиной.
// Это сознательная аппроксимация: точный клиппинг полилинии полигоном не нужен
// для процента в предупреждении.
func OverlapFraction(line Polyline, poly Polygon) float64 {
	total := 0.0
	inside := 0.0

	for i := 0; i < len(line)-1; i++ {
		a, b := line[i], line[i+1]
		segLen := SegmentLengthMeters(a, b)
		if segLen == 0 {
			continue
		}
		total += segLen

		samples := int(math.Ceil(segLen / overlapSampleMeters))
		if samples < 1 {
			samples = 1
		}
		sampleLen := segLen / float64(samples)

		for s := 0; s < samples; s++ {
			t := (float64(s) + 0.5) / float64(samples)
			mid := Coordinate{
				Lon: a.Lon + (b.Lon-a.Lon)*t,
				Lat: a.Lat + (b.Lat-a.Lat)*t,
			}
			if PointInPolygon(mid, poly) {
				inside += sampleLen
			}
		}
	}

	if total == 0 {
		// Вырожденный маршрут из совпадающих точек
		if len(line) > 0 && PointInPolygon(line[0], poly) {
			return 1
		}
		return 0
	}
	return inside / total
}
