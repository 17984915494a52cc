package geo

import (
	"fmt"
	"math"
)

// Buffer расширяет полигон наружу на bufferMeters метров.
//
// Метрическое расстояние переводится в градусы на широте центроида
// (метры на градус долготы сжимаются как cos(lat)), после чего каждая вершина
// кольца смещается вдоль усреднённой нормали соседних рёбер. Это упрощённый
// Minkowski-offset: без скруглений на углах, достаточный для буферов
// безопасности в сотни метров вокруг зон в единицы километров.
//
// bufferMeters == 0 возвращает исходный полигон как есть. Отрицательные значения
// отклоняются валидацией при создании зоны и сюда не попадают.
func Buffer(poly Polygon, bufferMeters float64) (Polygon, error) {
	if bufferMeters == 0 {
		return poly, nil
	}
	if bufferMeters < 0 {
		return Polygon{}, fmt.Errorf("%w: negative buffer distance %f", ErrInvalidGeometry, bufferMeters)
	}

	verts := dedupRing(poly.Outer)
	if len(verts) < 3 {
		return Polygon{}, fmt.Errorf("%w: ring has %d distinct vertices, need at least 3", ErrInvalidGeometry, len(verts))
	}

	centroidLat := 0.0
	for _, v := range verts {
		centroidLat += v.Lat
	}
	centroidLat /= float64(len(verts))

	lonScale := math.Cos(centroidLat * math.Pi / 180)
	if lonScale < 0.01 {
		lonScale = 0.01 // вблизи полюсов проекция вырождается
	}

	// Направление обхода: для CCW (положительная площадь) внешняя нормаль
	// ребра (dx, dy) - это (dy, -dx), для CW - наоборот
	area := signedArea(verts)
	sign := 1.0
	if area < 0 {
		sign = -1.0
	}

	n := len(verts)
	out := make(Ring, 0, n+1)

	for i := 0; i < n; i++ {
		prev := verts[(i-1+n)%n]
		cur := verts[i]
		next := verts[(i+1)%n]

		// Нормали рёбер в локальных метрах
		n1x, n1y := edgeNormal(prev, cur, lonScale, sign)
		n2x, n2y := edgeNormal(cur, next, lonScale, sign)

		nx, ny := n1x+n2x, n1y+n2y
		norm := math.Sqrt(nx*nx + ny*ny)
		if norm < 1e-12 {
			// Рёбра антипараллельны (шип), смещаем вдоль одной нормали
			nx, ny = n1x, n1y
			norm = math.Sqrt(nx*nx + ny*ny)
			if norm < 1e-12 {
				continue
			}
		}
		nx /= norm
		ny /= norm

		// Miter-коэффициент: смещение вдоль усреднённой нормали удлиняется так,
		// чтобы сами рёбра отъехали ровно на bufferMeters. Без этого буфер у
		// углов оказывается уже заявленной дистанции безопасности.
		cosHalf := nx*n1x + ny*n1y
		if cosHalf < 0.1 {
			cosHalf = 0.1 // острые шипы не раздуваем до бесконечности
		}
		offset := bufferMeters / cosHalf

		out = append(out, Coordinate{
			Lon: cur.Lon + nx*offset/(metersPerDegreeLat*lonScale),
			Lat: cur.Lat + ny*offset/metersPerDegreeLat,
		})
	}

	if len(out) < 3 {
		return Polygon{}, fmt.Errorf("%w: buffered ring degenerated to %d vertices", ErrInvalidGeometry, len(out))
	}

	out = append(out, out[0])
	return Polygon{Outer: out}, nil
}

// edgeNormal - единичная внешняя нормаль ребра a->b в локальной метрической проекции
func edgeNormal(a, b Coordinate, lonScale, sign float64) (float64, float64) {
	dx := (b.Lon - a.Lon) * lonScale
	dy := b.Lat - a.Lat
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 1e-15 {
		return 0, 0
	}
	return sign * dy / length, sign * -dx / length
}

// signedArea - знаковая площадь кольца в координатах градусов
// (знак определяет направление обхода, величина не используется)
func signedArea(verts []Coordinate) float64 {
	area := 0.0
	n := len(verts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += verts[i].Lon*verts[j].Lat - verts[j].Lon*verts[i].Lat
	}
	return area / 2
}

// dedupRing убирает замыкающую точку и подряд идущие дубликаты вершин
func dedupRing(ring Ring) []Coordinate {
	if len(ring) == 0 {
		return nil
	}
	verts := ring
	if len(verts) > 1 && verts[0] == verts[len(verts)-1] {
		verts = verts[:len(verts)-1]
	}
	out := make([]Coordinate, 0, len(verts))
	for _, v := range verts {
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}
