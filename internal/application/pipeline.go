package app

import (
	"errors"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/marker"
	"colorcode-receiver/internal/domain/port"
)

// ErrNotAMarker контур не прошёл проверку геометрии
var ErrNotAMarker = errors.New("not a marker")

// MarkerReading результат разбора одного маркера
type MarkerReading struct {
	Key       marker.TransformKey
	Signature string
	Symbols   []entity.Symbol
	Aborted   bool
}

// readMarker проверяет контур, нормализует его, определяет ориентацию,
// поворачивает в каноническое положение и декодирует сетку в sink.
func readMarker(cfg marker.Config, warper port.Warper, frame port.Image, q entity.Quadrilateral, sink marker.SymbolSink) (MarkerReading, error) {
	if !marker.Validate(q, cfg.MarkerMinArea) {
		return MarkerReading{}, ErrNotAMarker
	}

	size := cfg.Dimensions()
	src, dst := marker.NormalizingCorners(q, cfg.Size)
	normalized, err := warper.Warp(frame, src, dst, size)
	if err != nil {
		return MarkerReading{}, err
	}
	defer normalized.Close()

	key, signature, err := marker.ResolveOrientation(normalized, cfg.CellsPerSide)
	if err != nil {
		return MarkerReading{Signature: signature}, err
	}

	rotated, err := key.DestinationCorners(size)
	if err != nil {
		return MarkerReading{}, err
	}
	canonical, err := warper.Warp(normalized, marker.SourceCorners(size), rotated, size)
	if err != nil {
		return MarkerReading{}, err
	}
	defer canonical.Close()

	symbols, aborted := marker.DecodeGrid(canonical, cfg.CellsPerSide, sink)
	return MarkerReading{
		Key:       key,
		Signature: signature,
		Symbols:   symbols,
		Aborted:   aborted,
	}, nil
}
