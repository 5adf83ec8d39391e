//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/port"
)

// MatImage изображение HSV поверх gocv.Mat
type MatImage struct {
	mat gocv.Mat
}

// Size возвращает размер изображения
func (m *MatImage) Size() image.Point {
	return image.Pt(m.mat.Cols(), m.mat.Rows())
}

// HSVAt возвращает пиксель (каналы H, S, V); за пределами изображения чёрный
func (m *MatImage) HSVAt(x, y int) entity.HSV {
	if x < 0 || y < 0 || x >= m.mat.Cols() || y >= m.mat.Rows() {
		return entity.HSV{}
	}
	v := m.mat.GetVecbAt(y, x)
	return entity.HSV{H: v[0], S: v[1], V: v[2]}
}

// Close освобождает Mat
func (m *MatImage) Close() error {
	return m.mat.Close()
}

// Camera источник кадров с веб-камеры
type Camera struct {
	mu      sync.Mutex
	capture *gocv.VideoCapture
}

// OpenCamera открывает устройство захвата (номер камеры или URL потока)
func OpenCamera(device string) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %q: %w", device, err)
	}
	return &Camera{capture: capture}, nil
}

// NextFrame читает кадр и переводит его в HSV
func (c *Camera) NextFrame(ctx context.Context) (port.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	frame := gocv.NewMat()
	defer frame.Close()
	if ok := c.capture.Read(&frame); !ok || frame.Empty() {
		return nil, port.ErrNoFrame
	}

	hsv := gocv.NewMat()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)
	return &MatImage{mat: hsv}, nil
}

// IsOpen сообщает, открыто ли устройство
func (c *Camera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capture.IsOpened()
}

// Close закрывает устройство
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capture.Close()
}

// ContourSegmenter ищет контуры на бинаризованном по яркости кадре
type ContourSegmenter struct {
	cfg SegmenterConfig
}

// NewContourSegmenter создаёт сегментатор
func NewContourSegmenter(cfg SegmenterConfig) *ContourSegmenter {
	return &ContourSegmenter{cfg: cfg}
}

// FindQuadrilaterals бинаризует канал V, находит контуры двухуровневой иерархии
// и аппроксимирует каждый многоугольником.
func (s *ContourSegmenter) FindQuadrilaterals(frame port.Image) ([]entity.Quadrilateral, error) {
	img, ok := frame.(*MatImage)
	if !ok {
		return nil, fmt.Errorf("segmenter: unsupported image type %T", frame)
	}

	channels := gocv.Split(img.mat)
	for i := range channels {
		defer channels[i].Close()
	}
	if len(channels) < 3 {
		return nil, errors.New("segmenter: invalid hsv channels")
	}

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(channels[2], &binary, float32(s.cfg.ValueThreshold), 255, gocv.ThresholdBinary)

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()
	contours := gocv.FindContoursWithParams(binary, &hierarchy, gocv.RetrievalCComp, gocv.ChainApproxSimple)
	defer contours.Close()

	quads := make([]entity.Quadrilateral, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		approx := gocv.ApproxPolyDP(contours.At(i), s.cfg.Epsilon, true)
		points := approx.ToPoints()
		approx.Close()

		vertices := make([]entity.Point, len(points))
		for j, p := range points {
			vertices[j] = entity.Pt(p.X, p.Y)
		}

		// четвёртый элемент иерархии: индекс родительского контура
		nested := !hierarchy.Empty() && hierarchy.GetVeciAt(0, i)[3] != -1
		quads = append(quads, entity.Quadrilateral{Vertices: vertices, Nested: nested})
	}
	return quads, nil
}

// Warper перспективное преобразование средствами OpenCV
type Warper struct {
	fallback *RasterWarper
}

// NewWarper создаёт преобразователь; изображения не из OpenCV обрабатываются на чистом Go
func NewWarper() port.Warper {
	return &Warper{fallback: NewRasterWarper()}
}

// Warp вычисляет матрицу перспективы и применяет её к изображению
func (w *Warper) Warp(src port.Image, srcCorners, dstCorners [4]entity.Point, size image.Point) (port.Image, error) {
	img, ok := src.(*MatImage)
	if !ok {
		return w.fallback.Warp(src, srcCorners, dstCorners, size)
	}

	srcVec := gocv.NewPoint2fVectorFromPoints(toPoint2f(srcCorners))
	defer srcVec.Close()
	dstVec := gocv.NewPoint2fVectorFromPoints(toPoint2f(dstCorners))
	defer dstVec.Close()

	transform := gocv.GetPerspectiveTransform2f(srcVec, dstVec)
	defer transform.Close()
	if transform.Empty() {
		return nil, ErrDegenerateTransform
	}

	out := gocv.NewMat()
	gocv.WarpPerspective(img.mat, &out, transform, size)
	return &MatImage{mat: out}, nil
}

func toPoint2f(corners [4]entity.Point) []gocv.Point2f {
	points := make([]gocv.Point2f, len(corners))
	for i, c := range corners {
		points[i] = gocv.Point2f{X: float32(c.X), Y: float32(c.Y)}
	}
	return points
}

// Проверка реализации интерфейсов
var (
	_ port.Image       = (*MatImage)(nil)
	_ port.FrameSource = (*Camera)(nil)
	_ port.Segmenter   = (*ContourSegmenter)(nil)
	_ port.Warper      = (*Warper)(nil)
)
