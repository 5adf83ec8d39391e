package marker

import (
	"errors"
	"fmt"
	"image"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/port"
)

// ErrUnknownSignature угловые цвета не образуют ни одну из известных подписей
var ErrUnknownSignature = errors.New("unknown corner signature")

// CornerColor класс цвета угловой ячейки
type CornerColor byte

const (
	CornerA CornerColor = 'A' // красный
	CornerB CornerColor = 'B' // жёлто-зелёный
	CornerC CornerColor = 'C' // зелёно-голубой
	CornerD CornerColor = 'D' // синий
)

// ClassifyCorner относит цветовой тон (в градусах) угловой ячейки к одному из четырёх классов
func ClassifyCorner(hue float64) CornerColor {
	switch {
	case hue <= 45 || hue >= 330:
		return CornerA
	case hue <= 135:
		return CornerB
	case hue <= 225:
		return CornerC
	default:
		return CornerD
	}
}

// TransformKey номер угла маркера, который должен стать левым верхним
type TransformKey int

const (
	KeyInvalid TransformKey = iota
	Key1                    // угол 0 уже левый верхний
	Key2                    // левым верхним становится угол 1
	Key3                    // левым верхним становится угол 2
	Key4                    // левым верхним становится угол 3
)

var signatureKeys = map[string]TransformKey{
	"ABCD": Key1,
	"CADB": Key2,
	"DCBA": Key3,
	"BDAC": Key4,
}

// KeyForSignature сопоставляет подпись угловых цветов ключу преобразования
func KeyForSignature(signature string) (TransformKey, error) {
	key, ok := signatureKeys[signature]
	if !ok {
		return KeyInvalid, fmt.Errorf("%w: %q", ErrUnknownSignature, signature)
	}
	return key, nil
}

// SourceCorners углы нормализованного изображения для повторного преобразования
func SourceCorners(size image.Point) [4]entity.Point {
	w, h := float64(size.X), float64(size.Y)
	return [4]entity.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
}

// DestinationCorners перестановка углов, восстанавливающая каноническую ориентацию
func (k TransformKey) DestinationCorners(size image.Point) ([4]entity.Point, error) {
	w, h := float64(size.X), float64(size.Y)
	tl := entity.Point{X: 0, Y: 0}
	tr := entity.Point{X: w, Y: 0}
	br := entity.Point{X: w, Y: h}
	bl := entity.Point{X: 0, Y: h}

	switch k {
	case Key1:
		return [4]entity.Point{tl, tr, br, bl}, nil
	case Key2:
		return [4]entity.Point{bl, tl, tr, br}, nil
	case Key3:
		return [4]entity.Point{br, bl, tl, tr}, nil
	case Key4:
		return [4]entity.Point{tr, br, bl, tl}, nil
	default:
		return [4]entity.Point{}, fmt.Errorf("transform key %d is out of range", int(k))
	}
}

// CornerSignature считывает цвета угловых ячеек в порядке
// левый верхний, правый верхний, левый нижний, правый нижний.
func CornerSignature(img port.Image, cellsPerSide int) string {
	last := cellsPerSide - 1
	cells := [4][2]int{{0, 0}, {0, last}, {last, 0}, {last, last}}

	var sig [4]byte
	for i, cell := range cells {
		x, y := cellCenter(img.Size(), cellsPerSide, cell[0], cell[1])
		sig[i] = byte(ClassifyCorner(img.HSVAt(x, y).Hue()))
	}
	return string(sig[:])
}

// ResolveOrientation определяет ключ преобразования нормализованного маркера
func ResolveOrientation(img port.Image, cellsPerSide int) (TransformKey, string, error) {
	signature := CornerSignature(img, cellsPerSide)
	key, err := KeyForSignature(signature)
	return key, signature, err
}

// cellCenter возвращает координаты центра ячейки (row, col)
func cellCenter(size image.Point, cellsPerSide, row, col int) (x, y int) {
	cellW := float64(size.X) / float64(cellsPerSide)
	cellH := float64(size.Y) / float64(cellsPerSide)
	x = int((float64(col)*cellW + float64(col+1)*cellW) / 2)
	y = int((float64(row)*cellH + float64(row+1)*cellH) / 2)
	return x, y
}
