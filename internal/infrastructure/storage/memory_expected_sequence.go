package storage

import (
	"sync"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/port"
)

// MemoryExpectedSequence хранит последовательность, переданную кодировщиком
type MemoryExpectedSequence struct {
	mu      sync.RWMutex
	symbols []entity.Symbol
}

// NewMemoryExpectedSequence создаёт хранилище с начальной последовательностью
func NewMemoryExpectedSequence(symbols []entity.Symbol) *MemoryExpectedSequence {
	s := &MemoryExpectedSequence{}
	s.Set(symbols)
	return s
}

// Set заменяет ожидаемую последовательность
func (s *MemoryExpectedSequence) Set(symbols []entity.Symbol) {
	copied := append([]entity.Symbol(nil), symbols...)

	s.mu.Lock()
	s.symbols = copied
	s.mu.Unlock()
}

// ExpectedSymbols возвращает ожидаемую последовательность.
// Срез не изменяется после публикации, поэтому копия не нужна.
func (s *MemoryExpectedSequence) ExpectedSymbols() []entity.Symbol {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.symbols
}

// Проверка реализации интерфейса
var _ port.ExpectedSequenceProvider = (*MemoryExpectedSequence)(nil)
