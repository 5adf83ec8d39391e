package entity

import "fmt"

// SessionState состояние сессии приёма
type SessionState string

const (
	SessionIdle       SessionState = "idle"
	SessionCollecting SessionState = "collecting"
	SessionMatched    SessionState = "matched"
	SessionMismatched SessionState = "mismatched"
)

// Mismatch описывает расхождение принятого символа с ожидаемым
type Mismatch struct {
	Position int    // позиция в последовательности
	Expected Symbol // SymbolUnset, если принято больше символов, чем ожидалось
	Actual   Symbol
}

func (m Mismatch) String() string {
	expected := m.Expected.String()
	if m.Expected == SymbolUnset {
		expected = "<end>"
	}
	return fmt.Sprintf("position %d: expected %s, got %s", m.Position, expected, m.Actual)
}

// EventKind тип события приёмника
type EventKind string

const (
	EventDecoded     EventKind = "decoded"      // последовательность принята полностью
	EventCaptureLost EventKind = "capture_lost" // источник кадров закрыт, приём остановлен
)

// ReceiveEvent событие, о котором уведомляется хост-приложение
type ReceiveEvent struct {
	Kind      EventKind
	SessionID string
	Decoded   []Symbol
	Err       error
}

// ReceiverStats счётчики цикла приёма
type ReceiverStats struct {
	Frames         uint64 // обработано кадров
	CaptureErrors  uint64 // неудачных чтений кадра
	Candidates     uint64 // контуров-кандидатов
	Outlined       uint64 // кандидатов, прошедших грубый порог площади
	Markers        uint64 // кандидатов с распознанной ориентацией
	RejectedShapes uint64 // отброшено валидатором геометрии или ориентацией
}

// ReceiverStatus снимок состояния приёмника
type ReceiverStatus struct {
	Running    bool
	SessionID  string
	State      SessionState
	Decoded    []Symbol
	Mismatches int
	Last       *Mismatch
	Stats      ReceiverStats
}
