package port

import (
	"image"

	"colorcode-receiver/internal/domain/entity"
)

// Image изображение в пространстве HSV (соглашение OpenCV)
type Image interface {
	// Size возвращает ширину и высоту изображения
	Size() image.Point

	// HSVAt возвращает пиксель по координатам x, y
	HSVAt(x, y int) entity.HSV

	// Close освобождает ресурсы изображения
	Close() error
}
