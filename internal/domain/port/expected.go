package port

import "colorcode-receiver/internal/domain/entity"

// ExpectedSequenceProvider интерфейс источника переданной последовательности
type ExpectedSequenceProvider interface {
	// ExpectedSymbols возвращает ожидаемую последовательность (только для чтения)
	ExpectedSymbols() []entity.Symbol
}

// ExpectedSequenceStore хранилище последовательности, которую задаёт оператор
type ExpectedSequenceStore interface {
	ExpectedSequenceProvider
	Set(symbols []entity.Symbol)
}
