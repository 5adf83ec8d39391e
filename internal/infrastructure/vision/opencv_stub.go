//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/port"
)

// Camera источник-заглушка (без OpenCV)
type Camera struct{}

// OpenCamera возвращает ошибку, если сборка без тега gocv.
func OpenCamera(device string) (*Camera, error) {
	_ = device
	return nil, ErrGoCVDisabled
}

// NextFrame возвращает ошибку, если сборка без тега gocv.
func (c *Camera) NextFrame(ctx context.Context) (port.Image, error) {
	_ = ctx
	return nil, ErrGoCVDisabled
}

// IsOpen всегда false без OpenCV.
func (c *Camera) IsOpen() bool {
	return false
}

// Close ничего не делает.
func (c *Camera) Close() error {
	return nil
}

// ContourSegmenter сегментатор-заглушка (без OpenCV)
type ContourSegmenter struct {
	cfg SegmenterConfig
}

// NewContourSegmenter создаёт сегментатор-заглушку.
func NewContourSegmenter(cfg SegmenterConfig) *ContourSegmenter {
	return &ContourSegmenter{cfg: cfg}
}

// FindQuadrilaterals возвращает ошибку, если сборка без тега gocv.
func (s *ContourSegmenter) FindQuadrilaterals(frame port.Image) ([]entity.Quadrilateral, error) {
	_ = frame
	return nil, ErrGoCVDisabled
}

// NewWarper без OpenCV возвращает преобразователь на чистом Go.
func NewWarper() port.Warper {
	return NewRasterWarper()
}
