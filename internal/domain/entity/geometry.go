package entity

import "math"

// Point точка на плоскости кадра
type Point struct {
	X float64
	Y float64
}

// Pt создаёт точку из целых координат
func Pt(x, y int) Point {
	return Point{X: float64(x), Y: float64(y)}
}

// Quadrilateral контур-кандидат, полученный при сегментации кадра
type Quadrilateral struct {
	Vertices []Point // вершины в порядке обхода контура
	Nested   bool    // контур вложен в другой контур (не внешний)
}

// Area возвращает площадь многоугольника по формуле шнурования
func (q Quadrilateral) Area() float64 {
	n := len(q.Vertices)
	if n < 3 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		a := q.Vertices[i]
		b := q.Vertices[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// IsConvex проверяет выпуклость многоугольника
func (q Quadrilateral) IsConvex() bool {
	n := len(q.Vertices)
	if n < 3 {
		return false
	}

	sign := 0
	for i := 0; i < n; i++ {
		a := q.Vertices[i]
		b := q.Vertices[(i+1)%n]
		c := q.Vertices[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return sign != 0
}
