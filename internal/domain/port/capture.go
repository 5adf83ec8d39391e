package port

import (
	"context"
	"errors"
	"image"

	"colorcode-receiver/internal/domain/entity"
)

// ErrNoFrame источник не вернул кадр на этой итерации
var ErrNoFrame = errors.New("no captured frame")

// FrameSource интерфейс источника кадров (камеры)
type FrameSource interface {
	// NextFrame возвращает очередной кадр в HSV; ErrNoFrame, если кадра нет
	NextFrame(ctx context.Context) (Image, error)

	// IsOpen сообщает, доступен ли источник
	IsOpen() bool

	// Close закрывает источник
	Close() error
}

// Segmenter интерфейс поиска четырёхугольных контуров на кадре
type Segmenter interface {
	// FindQuadrilaterals возвращает контуры-кандидаты, аппроксимированные многоугольниками
	FindQuadrilaterals(frame Image) ([]entity.Quadrilateral, error)
}

// Warper интерфейс перспективного преобразования
type Warper interface {
	// Warp отображает srcCorners исходного изображения в dstCorners результата размера size
	Warp(src Image, srcCorners, dstCorners [4]entity.Point, size image.Point) (Image, error)
}
