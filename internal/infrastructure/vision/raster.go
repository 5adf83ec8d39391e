package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/port"
)

// Raster изображение HSV в памяти, не требующее OpenCV
type Raster struct {
	width  int
	height int
	pixels []entity.HSV
}

// NewRaster создаёт пустое (чёрное) изображение
func NewRaster(width, height int) *Raster {
	return &Raster{
		width:  width,
		height: height,
		pixels: make([]entity.HSV, width*height),
	}
}

// RasterFromImage переводит изображение из RGB в HSV в соглашении OpenCV
func RasterFromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy())
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			cr, cg, cb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			r.Set(x, y, RGBToHSV(uint8(cr>>8), uint8(cg>>8), uint8(cb>>8)))
		}
	}
	return r
}

// LoadRaster читает PNG или JPEG файл
func LoadRaster(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return RasterFromImage(img), nil
}

// DecodeRaster разбирает PNG или JPEG из памяти
func DecodeRaster(data []byte) (*Raster, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return RasterFromImage(img), nil
}

// Size возвращает размер изображения
func (r *Raster) Size() image.Point {
	return image.Pt(r.width, r.height)
}

// HSVAt возвращает пиксель; за пределами изображения чёрный
func (r *Raster) HSVAt(x, y int) entity.HSV {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return entity.HSV{}
	}
	return r.pixels[y*r.width+x]
}

// Set записывает пиксель
func (r *Raster) Set(x, y int, c entity.HSV) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.pixels[y*r.width+x] = c
}

// Fill закрашивает прямоугольник
func (r *Raster) Fill(rect image.Rectangle, c entity.HSV) {
	rect = rect.Intersect(image.Rect(0, 0, r.width, r.height))
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.pixels[y*r.width+x] = c
		}
	}
}

// Close ничего не освобождает, память управляется сборщиком мусора
func (r *Raster) Close() error {
	return nil
}

// RGBToHSV переводит цвет в соглашение cv::cvtColor(COLOR_RGB2HSV) для 8-битных изображений:
// H в половинных градусах 0..179, S и V в 0..255.
func RGBToHSV(r, g, b uint8) entity.HSV {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, sat, val := c.Hsv()

	return entity.HSV{
		H: uint8(int(math.Round(h/2)) % 180),
		S: uint8(math.Round(sat * 255)),
		V: uint8(math.Round(val * 255)),
	}
}

// Проверка реализации интерфейса
var _ port.Image = (*Raster)(nil)
