package app

import (
	"sync"

	"github.com/rs/zerolog"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/marker"
	"colorcode-receiver/internal/domain/port"
)

// Verdict результат сравнения очередного символа
type Verdict int

const (
	VerdictPending  Verdict = iota // сравнивать пока не с чем
	VerdictContinue                // символ совпал, ждём следующий
	VerdictMismatch                // расхождение, сессия сброшена
	VerdictMatched                 // последовательность принята полностью
	VerdictClosed                  // сессия остановлена, символ отброшен
)

// ReceiveSession сравнивает декодированные символы с переданной последовательностью.
// Безопасна для одновременного чтения снимка и записи из цикла приёма.
type ReceiveSession struct {
	id       string
	expected port.ExpectedSequenceProvider
	log      zerolog.Logger

	mu             sync.Mutex
	state          entity.SessionState
	decoded        []entity.Symbol
	index          int // позиция следующего сравнения
	matched        int // подряд совпавших позиций начиная с нулевой
	mismatches     int
	passMismatches int // расхождений в текущем проходе по маркеру
	allMatched     bool
	last           *entity.Mismatch
}

// NewReceiveSession создаёт сессию в состоянии Collecting
func NewReceiveSession(id string, expected port.ExpectedSequenceProvider, log zerolog.Logger) *ReceiveSession {
	return &ReceiveSession{
		id:       id,
		expected: expected,
		log:      log.With().Str("session_id", id).Logger(),
		state:    entity.SessionCollecting,
	}
}

// ID возвращает идентификатор сессии
func (s *ReceiveSession) ID() string {
	return s.id
}

// BeginMarker начинает новый проход по сетке маркера. Пока ожидаемая
// последовательность пуста, сравнивать не с чем, и снимок хранит только
// символы последнего маркера.
func (s *ReceiveSession) BeginMarker() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.passMismatches = 0
	if s.state == entity.SessionCollecting && len(s.expectedSymbols()) == 0 {
		s.decoded = nil
		s.index = 0
		s.matched = 0
	}
}

// Accept добавляет декодированный символ и сравнивает его с ожидаемым на той же позиции.
func (s *ReceiveSession) Accept(symbol entity.Symbol) Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case entity.SessionMatched:
		return VerdictMatched
	case entity.SessionIdle:
		return VerdictClosed
	case entity.SessionMismatched:
		s.state = entity.SessionCollecting
	}

	s.decoded = append(s.decoded, symbol)
	pos := s.index
	s.index++

	expected := s.expectedSymbols()
	if len(expected) == 0 {
		s.log.Debug().Int("position", pos).Msg("nothing transmitted yet, comparison skipped")
		return VerdictPending
	}

	want := entity.SymbolUnset
	if pos < len(expected) {
		want = expected[pos]
	}
	if want == entity.SymbolUnset || symbol == entity.SymbolError || symbol != want {
		s.reset(entity.Mismatch{Position: pos, Expected: want, Actual: symbol})
		return VerdictMismatch
	}

	if s.matched == pos {
		s.matched++
	}
	if len(s.decoded) == len(expected) && s.matched == len(expected) {
		s.allMatched = true
	}
	if s.passMismatches == 0 && s.allMatched {
		s.state = entity.SessionMatched
		s.log.Info().Int("length", len(s.decoded)).Msg("sequence received")
		return VerdictMatched
	}
	return VerdictContinue
}

// Sink возвращает приёмник символов для декодера сетки: разбор маркера
// прерывается на расхождении и после приёма всей последовательности.
func (s *ReceiveSession) Sink() marker.SymbolSink {
	return marker.SinkFunc(func(symbol entity.Symbol) bool {
		switch s.Accept(symbol) {
		case VerdictMismatch, VerdictMatched, VerdictClosed:
			return false
		default:
			return true
		}
	})
}

func (s *ReceiveSession) expectedSymbols() []entity.Symbol {
	if s.expected == nil {
		return nil
	}
	return s.expected.ExpectedSymbols()
}

// reset отбрасывает принятое после расхождения; вызывается под мьютексом
func (s *ReceiveSession) reset(m entity.Mismatch) {
	s.mismatches++
	s.passMismatches++
	s.last = &m
	s.log.Info().
		Int("position", m.Position).
		Str("expected", m.Expected.String()).
		Str("actual", m.Actual.String()).
		Msg("sequence mismatch, resetting")

	s.decoded = nil
	s.index = 0
	s.matched = 0
	s.allMatched = false
	s.state = entity.SessionMismatched
}

// Close переводит сессию в Idle; последующие символы игнорируются
func (s *ReceiveSession) Close() {
	s.mu.Lock()
	if s.state != entity.SessionMatched {
		s.state = entity.SessionIdle
	}
	s.mu.Unlock()
}

// Matched сообщает, принята ли последовательность
func (s *ReceiveSession) Matched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == entity.SessionMatched
}

// Snapshot возвращает копию декодированной последовательности
func (s *ReceiveSession) Snapshot() []entity.Symbol {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Symbol(nil), s.decoded...)
}

// Index возвращает позицию следующего сравнения
func (s *ReceiveSession) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Mismatches возвращает общее число расхождений за сессию
func (s *ReceiveSession) Mismatches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mismatches
}

// State возвращает текущее состояние сессии
func (s *ReceiveSession) State() entity.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastMismatch возвращает последнее расхождение или nil
func (s *ReceiveSession) LastMismatch() *entity.Mismatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	m := *s.last
	return &m
}
