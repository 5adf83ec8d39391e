package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/marker"
	"colorcode-receiver/internal/domain/port"
)

// DecodeResult результат разбора одиночного изображения маркера
type DecodeResult struct {
	MarkerReading
	Matched  bool             // совпало с ожидаемой последовательностью
	Mismatch *entity.Mismatch // первое расхождение, если было
}

// DecodeService разбирает уже вырезанное изображение маркера без цикла приёма
type DecodeService struct {
	cfg      marker.Config
	warper   port.Warper
	expected port.ExpectedSequenceProvider
	log      zerolog.Logger
}

// NewDecodeService создаёт сервис разбора одиночных изображений
func NewDecodeService(cfg marker.Config, warper port.Warper, expected port.ExpectedSequenceProvider, log zerolog.Logger) *DecodeService {
	return &DecodeService{
		cfg:      cfg,
		warper:   warper,
		expected: expected,
		log:      log.With().Str("component", "decode").Logger(),
	}
}

// DecodeImage считает всё изображение маркером и сравнивает его сетку с ожидаемой последовательностью.
func (s *DecodeService) DecodeImage(img port.Image) (*DecodeResult, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	session := NewReceiveSession("still", s.expected, s.log)
	reading, err := readMarker(s.cfg, s.warper, img, marker.FullFrame(img.Size()), session.Sink())
	if err != nil {
		return nil, fmt.Errorf("read marker: %w", err)
	}

	return &DecodeResult{
		MarkerReading: reading,
		Matched:       session.Matched(),
		Mismatch:      session.LastMismatch(),
	}, nil
}
