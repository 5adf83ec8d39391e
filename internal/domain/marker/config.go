package marker

import (
	"errors"
	"fmt"
	"image"
)

// Config параметры маркера, общие для валидатора, определения ориентации и декодера.
// CellsPerSide должен совпадать со значением кодировщика, формирующего ожидаемую последовательность.
type Config struct {
	CellsPerSide   int     // число ячеек по стороне маркера
	DisplayMinArea float64 // грубый порог площади для подсчёта контуров
	MarkerMinArea  float64 // порог площади для приёма маркера
	Size           int     // сторона нормализованного изображения маркера в пикселях
}

// DefaultConfig возвращает параметры, с которыми работает кодировщик по умолчанию
func DefaultConfig() Config {
	return Config{
		CellsPerSide:   4,
		DisplayMinArea: 4000,
		MarkerMinArea:  1000,
		Size:           500,
	}
}

// Validate проверяет согласованность параметров
func (c Config) Validate() error {
	if c.CellsPerSide < 3 {
		return fmt.Errorf("cells per side must be at least 3, got %d", c.CellsPerSide)
	}
	if c.MarkerMinArea < 0 || c.DisplayMinArea < 0 {
		return errors.New("area thresholds must not be negative")
	}
	if c.Size < c.CellsPerSide {
		return fmt.Errorf("marker size %d is smaller than the grid (%d cells)", c.Size, c.CellsPerSide)
	}
	return nil
}

// Dimensions возвращает размер нормализованного изображения
func (c Config) Dimensions() image.Point {
	return image.Pt(c.Size, c.Size)
}
