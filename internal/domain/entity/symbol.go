package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Symbol значение одной ячейки сетки маркера
type Symbol uint8

const (
	SymbolUnset Symbol = iota // нулевое значение, не встречается в декодированных данных
	Symbol1                   // красный
	Symbol2                   // зелёный
	Symbol3                   // синий
	Symbol4                   // жёлтый
	Symbol5                   // голубой
	Symbol6                   // пурпурный
	Symbol7                   // оранжевый
	Symbol8                   // фиолетовый
	SymbolNo                  // белый
	SymbolSpace               // чёрный
	SymbolError               // цвет не распознан
)

var symbolNames = [...]string{
	SymbolUnset: "",
	Symbol1:     "1",
	Symbol2:     "2",
	Symbol3:     "3",
	Symbol4:     "4",
	Symbol5:     "5",
	Symbol6:     "6",
	Symbol7:     "7",
	Symbol8:     "8",
	SymbolNo:    "no",
	SymbolSpace: "space",
	SymbolError: "error",
}

// String возвращает текстовое представление символа, совпадающее с кодировщиком
func (s Symbol) String() string {
	if int(s) < len(symbolNames) {
		return symbolNames[s]
	}
	return fmt.Sprintf("Symbol(%d)", uint8(s))
}

// Valid сообщает, принадлежит ли символ алфавиту
func (s Symbol) Valid() bool {
	return s >= Symbol1 && s <= SymbolError
}

// ParseSymbol разбирает текстовое представление символа
func ParseSymbol(text string) (Symbol, error) {
	text = strings.TrimSpace(text)
	for i := Symbol1; i <= SymbolError; i++ {
		if symbolNames[i] == text {
			return i, nil
		}
	}
	return SymbolUnset, fmt.Errorf("unknown symbol %q", text)
}

// ErrErrorSymbol "error" не может быть передан: приёмник всегда считает его расхождением
var ErrErrorSymbol = errors.New("symbol \"error\" cannot be transmitted")

// ParseSequence разбирает ожидаемую последовательность, разделённую запятыми или пробелами
func ParseSequence(text string) ([]Symbol, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	symbols := make([]Symbol, 0, len(fields))
	for i, field := range fields {
		s, err := ParseSymbol(field)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		if s == SymbolError {
			return nil, fmt.Errorf("position %d: %w", i, ErrErrorSymbol)
		}
		symbols = append(symbols, s)
	}
	return symbols, nil
}

// FormatSequence склеивает последовательность через запятую
func FormatSequence(symbols []Symbol) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}
