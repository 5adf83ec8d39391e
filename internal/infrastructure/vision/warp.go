package vision

import (
	"errors"
	"image"
	"math"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/port"
)

// ErrDegenerateTransform углы не задают перспективное преобразование
var ErrDegenerateTransform = errors.New("degenerate perspective transform")

// RasterWarper перспективное преобразование на чистом Go (ближайший сосед)
type RasterWarper struct{}

// NewRasterWarper создаёт преобразователь для изображений в памяти
func NewRasterWarper() *RasterWarper {
	return &RasterWarper{}
}

// Warp отображает srcCorners в dstCorners и возвращает Raster размера size
func (w *RasterWarper) Warp(src port.Image, srcCorners, dstCorners [4]entity.Point, size image.Point) (port.Image, error) {
	// обратное отображение: координаты результата -> координаты источника
	h, err := homography(dstCorners, srcCorners)
	if err != nil {
		return nil, err
	}

	out := NewRaster(size.X, size.Y)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			fx, fy := float64(x), float64(y)
			den := h[6]*fx + h[7]*fy + 1
			if den == 0 {
				continue
			}
			sx := (h[0]*fx + h[1]*fy + h[2]) / den
			sy := (h[3]*fx + h[4]*fy + h[5]) / den
			out.pixels[y*size.X+x] = src.HSVAt(int(math.Round(sx)), int(math.Round(sy)))
		}
	}
	return out, nil
}

// homography решает систему 8×8 для отображения from -> to
func homography(from, to [4]entity.Point) ([8]float64, error) {
	var a [8][9]float64
	for i := 0; i < 4; i++ {
		x, y := from[i].X, from[i].Y
		u, v := to[i].X, to[i].Y
		a[2*i] = [9]float64{x, y, 1, 0, 0, 0, -x * u, -y * u, u}
		a[2*i+1] = [9]float64{0, 0, 0, x, y, 1, -x * v, -y * v, v}
	}

	for col := 0; col < 8; col++ {
		pivot := col
		for row := col + 1; row < 8; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return [8]float64{}, ErrDegenerateTransform
		}
		a[col], a[pivot] = a[pivot], a[col]

		for row := 0; row < 8; row++ {
			if row == col {
				continue
			}
			f := a[row][col] / a[col][col]
			for k := col; k < 9; k++ {
				a[row][k] -= f * a[col][k]
			}
		}
	}

	var h [8]float64
	for i := 0; i < 8; i++ {
		h[i] = a[i][8] / a[i][i]
	}
	return h, nil
}

// Проверка реализации интерфейса
var _ port.Warper = (*RasterWarper)(nil)
