package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/marker"
	"colorcode-receiver/internal/infrastructure/storage"
	"colorcode-receiver/internal/infrastructure/vision"
)

func newDecoder(expected []entity.Symbol) *DecodeService {
	return NewDecodeService(testConfig(), vision.NewRasterWarper(), storage.NewMemoryExpectedSequence(expected), testLogger())
}

func TestDecodeService_CanonicalImage(t *testing.T) {
	payload := seq(entity.Symbol3, entity.Symbol1, entity.Symbol4, entity.SymbolSpace)
	svc := newDecoder(payload)

	result, err := svc.DecodeImage(canonicalMarker(payload))
	require.NoError(t, err)
	require.Equal(t, marker.Key1, result.Key)
	require.Equal(t, "ABCD", result.Signature)
	require.True(t, result.Matched)
	require.True(t, result.Aborted)
	require.Equal(t, payload, result.Symbols)
	require.Nil(t, result.Mismatch)
}

func TestDecodeService_RotatedImage(t *testing.T) {
	payload := seq(entity.Symbol2, entity.Symbol5, entity.Symbol6, entity.Symbol7, entity.Symbol8)
	svc := newDecoder(nil)

	rotated := canonicalMarker(payload)
	for i := 0; i < 2; i++ {
		rotated = rotateCW(rotated)
	}

	result, err := svc.DecodeImage(rotated)
	require.NoError(t, err)
	require.Equal(t, marker.Key3, result.Key)
	require.Equal(t, "DCBA", result.Signature)
	require.False(t, result.Matched)
	require.False(t, result.Aborted)
	require.Len(t, result.Symbols, testCells*testCells-4)
	require.Equal(t, payload, result.Symbols[:len(payload)])
}

func TestDecodeService_ReportsMismatch(t *testing.T) {
	svc := newDecoder(seq(entity.Symbol1, entity.Symbol2))

	result, err := svc.DecodeImage(canonicalMarker(seq(entity.Symbol1, entity.Symbol3)))
	require.NoError(t, err)
	require.False(t, result.Matched)
	require.True(t, result.Aborted)
	require.NotNil(t, result.Mismatch)
	require.Equal(t, entity.Mismatch{Position: 1, Expected: entity.Symbol2, Actual: entity.Symbol3}, *result.Mismatch)
}

func TestDecodeService_NotAMarker(t *testing.T) {
	svc := newDecoder(nil)

	_, err := svc.DecodeImage(vision.NewRaster(400, 400))
	require.ErrorIs(t, err, marker.ErrUnknownSignature)
}

func TestDecodeService_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.CellsPerSide = 2
	svc := NewDecodeService(cfg, vision.NewRasterWarper(), nil, testLogger())

	_, err := svc.DecodeImage(canonicalMarker(nil))
	require.Error(t, err)
}
