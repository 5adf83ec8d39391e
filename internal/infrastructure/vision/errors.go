package vision

import "errors"

// ErrGoCVDisabled сборка без тега gocv: камера и сегментация недоступны
var ErrGoCVDisabled = errors.New("gocv build tag is not enabled")

// SegmenterConfig параметры поиска контуров
type SegmenterConfig struct {
	ValueThreshold float64 // порог бинаризации канала V
	Epsilon        float64 // точность аппроксимации контура многоугольником
}

// DefaultSegmenterConfig значения, с которыми откалиброван приёмник
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		ValueThreshold: 50,
		Epsilon:        10,
	}
}
