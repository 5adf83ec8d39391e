package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/infrastructure/storage"
)

func newSession(expected ...entity.Symbol) (*ReceiveSession, *storage.MemoryExpectedSequence) {
	provider := storage.NewMemoryExpectedSequence(expected)
	return NewReceiveSession("test", provider, testLogger()), provider
}

func TestReceiveSession_ResetOnMismatch(t *testing.T) {
	s, _ := newSession(entity.Symbol1, entity.Symbol2, entity.Symbol3)
	s.BeginMarker()

	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol1))
	require.Equal(t, VerdictMismatch, s.Accept(entity.Symbol4))

	require.Empty(t, s.Snapshot())
	require.Equal(t, 0, s.Index())
	require.Equal(t, 1, s.Mismatches())
	require.Equal(t, entity.SessionMismatched, s.State())
	require.Equal(t, &entity.Mismatch{Position: 1, Expected: entity.Symbol2, Actual: entity.Symbol4}, s.LastMismatch())

	// следующий символ снова сравнивается с нулевой позицией
	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol1))
	require.Equal(t, entity.SessionCollecting, s.State())
	require.Equal(t, 1, s.Index())
}

func TestReceiveSession_SuccessTermination(t *testing.T) {
	s, _ := newSession(entity.Symbol1, entity.Symbol2, entity.Symbol7, entity.SymbolNo)
	s.BeginMarker()

	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol1))
	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol2))
	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol7))
	require.Equal(t, VerdictMatched, s.Accept(entity.SymbolNo))

	require.True(t, s.Matched())
	require.Zero(t, s.Mismatches())
	require.Equal(t, seq(entity.Symbol1, entity.Symbol2, entity.Symbol7, entity.SymbolNo), s.Snapshot())

	// после успеха символы больше не добавляются
	require.Equal(t, VerdictMatched, s.Accept(entity.Symbol3))
	require.Len(t, s.Snapshot(), 4)
}

func TestReceiveSession_EmptyExpectedSkipsComparison(t *testing.T) {
	s, _ := newSession()
	require.Equal(t, VerdictPending, s.Accept(entity.Symbol5))
	require.Equal(t, VerdictPending, s.Accept(entity.SymbolError))
	require.Equal(t, seq(entity.Symbol5, entity.SymbolError), s.Snapshot())
	require.Zero(t, s.Mismatches())
}

func TestReceiveSession_EmptyExpectedKeepsLastMarker(t *testing.T) {
	s, _ := newSession()

	for i := 0; i < 100; i++ {
		s.BeginMarker()
		require.Equal(t, VerdictPending, s.Accept(entity.Symbol5))
		require.Equal(t, VerdictPending, s.Accept(entity.Symbol6))
	}
	require.Equal(t, seq(entity.Symbol5, entity.Symbol6), s.Snapshot())
	require.Equal(t, 2, s.Index())
}

func TestReceiveSession_BeginMarkerKeepsProgress(t *testing.T) {
	s, _ := newSession(entity.Symbol1, entity.Symbol2, entity.Symbol3)

	s.BeginMarker()
	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol1))
	s.BeginMarker()
	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol2))
	require.Equal(t, seq(entity.Symbol1, entity.Symbol2), s.Snapshot())
}

func TestReceiveSession_UncomparedPositionsNeverComplete(t *testing.T) {
	s, provider := newSession()
	require.Equal(t, VerdictPending, s.Accept(entity.Symbol1))

	provider.Set(seq(entity.Symbol1, entity.Symbol2))
	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol2))
	require.False(t, s.Matched())

	// принято больше, чем передано
	require.Equal(t, VerdictMismatch, s.Accept(entity.Symbol3))
	require.Equal(t, &entity.Mismatch{Position: 2, Expected: entity.SymbolUnset, Actual: entity.Symbol3}, s.LastMismatch())
	require.Empty(t, s.Snapshot())
}

func TestReceiveSession_ErrorSymbolIsForcedMismatch(t *testing.T) {
	s, _ := newSession(entity.SymbolError, entity.Symbol1)
	require.Equal(t, VerdictMismatch, s.Accept(entity.SymbolError))
	require.Equal(t, 1, s.Mismatches())
}

func TestReceiveSession_ResyncOnNextMarker(t *testing.T) {
	s, _ := newSession(entity.Symbol1, entity.Symbol2)

	s.BeginMarker()
	require.Equal(t, VerdictMismatch, s.Accept(entity.Symbol2))

	s.BeginMarker()
	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol1))
	require.Equal(t, VerdictMatched, s.Accept(entity.Symbol2))
	require.Equal(t, 1, s.Mismatches())
}

func TestReceiveSession_SequenceSpansMarkers(t *testing.T) {
	s, _ := newSession(entity.Symbol1, entity.Symbol2, entity.Symbol3)

	s.BeginMarker()
	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol1))
	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol2))

	s.BeginMarker()
	require.Equal(t, VerdictMatched, s.Accept(entity.Symbol3))
}

func TestReceiveSession_ClosedIgnoresSymbols(t *testing.T) {
	s, _ := newSession(entity.Symbol1, entity.Symbol2)
	require.Equal(t, VerdictContinue, s.Accept(entity.Symbol1))

	s.Close()
	require.Equal(t, entity.SessionIdle, s.State())
	require.Equal(t, VerdictClosed, s.Accept(entity.Symbol2))
	require.Equal(t, seq(entity.Symbol1), s.Snapshot())
}

func TestReceiveSession_SinkStopsOnMismatch(t *testing.T) {
	s, _ := newSession(entity.Symbol1, entity.Symbol2, entity.Symbol3)
	sink := s.Sink()

	require.True(t, sink.Accept(entity.Symbol1))
	require.False(t, sink.Accept(entity.Symbol3))
	require.True(t, sink.Accept(entity.Symbol1))
}
