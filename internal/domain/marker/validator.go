package marker

import (
	"image"

	"colorcode-receiver/internal/domain/entity"
)

const quadVertices = 4

// Validate сообщает, может ли контур быть маркером: четыре вершины,
// площадь не меньше minArea и выпуклость.
func Validate(q entity.Quadrilateral, minArea float64) bool {
	if len(q.Vertices) != quadVertices {
		return false
	}
	if q.Area() < minArea {
		return false
	}
	return q.IsConvex()
}

// NormalizingCorners задаёт первое преобразование: вершины контура отображаются
// в углы квадрата size в порядке (w,h) (w,0) (0,0) (0,h).
// Контур должен пройти Validate; другое число вершин считается ошибкой программы.
func NormalizingCorners(q entity.Quadrilateral, size int) (src, dst [4]entity.Point) {
	if len(q.Vertices) != quadVertices {
		panic("marker: normalizing a contour that is not a quadrilateral")
	}
	copy(src[:], q.Vertices)

	s := float64(size)
	dst = [4]entity.Point{{X: s, Y: s}, {X: s, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: s}}
	return src, dst
}

// FullFrame контур, охватывающий всё изображение, в порядке вершин,
// при котором нормализующее преобразование не поворачивает изображение.
func FullFrame(size image.Point) entity.Quadrilateral {
	w, h := float64(size.X), float64(size.Y)
	return entity.Quadrilateral{Vertices: []entity.Point{
		{X: w, Y: h}, {X: w, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: h},
	}}
}
