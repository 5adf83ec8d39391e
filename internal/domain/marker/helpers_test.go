package marker

import (
	"image"

	"colorcode-receiver/internal/domain/entity"
)

// cellImage изображение из однотонных ячеек для тестов
type cellImage struct {
	cells    [][]entity.HSV
	cellSize int
}

func newCellImage(cells [][]entity.HSV, cellSize int) *cellImage {
	return &cellImage{cells: cells, cellSize: cellSize}
}

func (c *cellImage) Size() image.Point {
	return image.Pt(len(c.cells[0])*c.cellSize, len(c.cells)*c.cellSize)
}

func (c *cellImage) HSVAt(x, y int) entity.HSV {
	return c.cells[y/c.cellSize][x/c.cellSize]
}

func (c *cellImage) Close() error { return nil }

// hsvOfHue возвращает насыщенный яркий пиксель с тоном hue в градусах
func hsvOfHue(hue int) entity.HSV {
	return entity.HSV{H: uint8(hue / 2), S: 255, V: 255}
}

var cornerHue = map[byte]int{'A': 0, 'B': 90, 'C': 180, 'D': 270}

// markerCells строит сетку n×n с угловыми цветами signature (TL, TR, BL, BR)
// и информационными ячейками payload в построчном порядке.
func markerCells(n int, signature string, payload []entity.HSV) [][]entity.HSV {
	cells := make([][]entity.HSV, n)
	for i := range cells {
		cells[i] = make([]entity.HSV, n)
	}
	last := n - 1
	corners := [4][2]int{{0, 0}, {0, last}, {last, 0}, {last, last}}
	for i, rc := range corners {
		cells[rc[0]][rc[1]] = hsvOfHue(cornerHue[signature[i]])
	}

	k := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if IsCorner(r, c, n) {
				continue
			}
			if k < len(payload) {
				cells[r][c] = payload[k]
			}
			k++
		}
	}
	return cells
}
