package marker

import (
	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/port"
)

// Пороги классификации ячеек
const (
	minSaturation = 100 // ниже считается ахроматическим
	minWhiteValue = 150 // белый: низкая насыщенность и высокая яркость
	maxBlackValue = 100 // чёрный: яркость ниже порога
)

type hueBand struct {
	upper  float64 // верхняя граница (не включается)
	symbol entity.Symbol
}

// hueBands разбиение тона на полуоткрытые интервалы [предыдущая граница, upper)
var hueBands = [...]hueBand{
	{20, entity.Symbol1},
	{35, entity.Symbol7},
	{80, entity.Symbol4},
	{148, entity.Symbol2},
	{195, entity.Symbol5},
	{258, entity.Symbol3},
	{300, entity.Symbol8},
	{330, entity.Symbol6},
}

// ClassifyCell относит пиксель ячейки к символу; правила проверяются по порядку.
func ClassifyCell(hue, saturation, value float64) entity.Symbol {
	if saturation < minSaturation && value >= minWhiteValue {
		return entity.SymbolNo
	}
	if value < maxBlackValue {
		return entity.SymbolSpace
	}
	if saturation < minSaturation || hue < 0 {
		return entity.SymbolError
	}
	for _, band := range hueBands {
		if hue < band.upper {
			return band.symbol
		}
	}
	return entity.SymbolError
}

// ClassifyPixel классифицирует пиксель HSV
func ClassifyPixel(c entity.HSV) entity.Symbol {
	return ClassifyCell(c.Hue(), c.Saturation(), c.Value())
}

// SymbolSink получает символы по мере декодирования; false прерывает разбор маркера.
type SymbolSink interface {
	Accept(symbol entity.Symbol) bool
}

// SinkFunc адаптер функции к SymbolSink
type SinkFunc func(symbol entity.Symbol) bool

func (f SinkFunc) Accept(symbol entity.Symbol) bool {
	return f(symbol)
}

// IsCorner сообщает, является ли ячейка угловой
func IsCorner(row, col, cellsPerSide int) bool {
	last := cellsPerSide - 1
	return (row == 0 || row == last) && (col == 0 || col == last)
}

// DecodeGrid обходит ячейки маркера в каноничной ориентации построчно, пропуская углы.
// Каждый символ сразу передаётся в sink; если sink возвращает false, разбор прекращается.
func DecodeGrid(img port.Image, cellsPerSide int, sink SymbolSink) (symbols []entity.Symbol, abortedEarly bool) {
	size := img.Size()
	symbols = make([]entity.Symbol, 0, cellsPerSide*cellsPerSide-4)

	for row := 0; row < cellsPerSide; row++ {
		for col := 0; col < cellsPerSide; col++ {
			if IsCorner(row, col, cellsPerSide) {
				continue
			}

			x, y := cellCenter(size, cellsPerSide, row, col)
			symbol := ClassifyPixel(img.HSVAt(x, y))
			symbols = append(symbols, symbol)

			if sink != nil && !sink.Accept(symbol) {
				return symbols, true
			}
		}
	}
	return symbols, false
}
