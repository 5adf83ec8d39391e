package app

import (
	"context"
	"image"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/marker"
	"colorcode-receiver/internal/domain/port"
	"colorcode-receiver/internal/infrastructure/vision"
)

const (
	testCells    = 4
	testCellSize = 100
	testOffset   = 50
)

func testConfig() marker.Config {
	return marker.Config{
		CellsPerSide:   testCells,
		DisplayMinArea: 4000,
		MarkerMinArea:  1000,
		Size:           200,
	}
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

var symbolPixel = map[entity.Symbol]entity.HSV{
	entity.Symbol1:     {H: 0, S: 255, V: 255},
	entity.Symbol7:     {H: 13, S: 255, V: 255},
	entity.Symbol4:     {H: 30, S: 255, V: 255},
	entity.Symbol2:     {H: 60, S: 255, V: 255},
	entity.Symbol5:     {H: 85, S: 255, V: 255},
	entity.Symbol3:     {H: 120, S: 255, V: 255},
	entity.Symbol8:     {H: 140, S: 255, V: 255},
	entity.Symbol6:     {H: 155, S: 255, V: 255},
	entity.SymbolNo:    {H: 0, S: 0, V: 255},
	entity.SymbolSpace: {H: 0, S: 0, V: 0},
	entity.SymbolError: {H: 170, S: 255, V: 255},
}

var cornerPixel = [4]entity.HSV{
	{H: 0, S: 255, V: 255},   // A
	{H: 45, S: 255, V: 255},  // B
	{H: 90, S: 255, V: 255},  // C
	{H: 135, S: 255, V: 255}, // D
}

// canonicalMarker рисует маркер в каноничной ориентации (подпись ABCD);
// недостающие информационные ячейки остаются белыми.
func canonicalMarker(payload []entity.Symbol) *vision.Raster {
	side := testCells * testCellSize
	r := vision.NewRaster(side, side)

	last := testCells - 1
	corners := [4][2]int{{0, 0}, {0, last}, {last, 0}, {last, last}}
	for i, rc := range corners {
		r.Fill(cellRect(rc[0], rc[1]), cornerPixel[i])
	}

	k := 0
	for row := 0; row < testCells; row++ {
		for col := 0; col < testCells; col++ {
			if marker.IsCorner(row, col, testCells) {
				continue
			}
			sym := entity.SymbolNo
			if k < len(payload) {
				sym = payload[k]
			}
			r.Fill(cellRect(row, col), symbolPixel[sym])
			k++
		}
	}
	return r
}

func cellRect(row, col int) image.Rectangle {
	return image.Rect(col*testCellSize, row*testCellSize, (col+1)*testCellSize, (row+1)*testCellSize)
}

// rotateCW поворачивает изображение на 90° по часовой стрелке
func rotateCW(src *vision.Raster) *vision.Raster {
	n := src.Size().X
	out := vision.NewRaster(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			out.Set(x, y, src.HSVAt(y, n-1-x))
		}
	}
	return out
}

// frameWith помещает маркер на чёрный кадр со смещением testOffset
func frameWith(m *vision.Raster) *vision.Raster {
	side := m.Size().X + 2*testOffset
	frame := vision.NewRaster(side, side)
	for y := 0; y < m.Size().Y; y++ {
		for x := 0; x < m.Size().X; x++ {
			frame.Set(x+testOffset, y+testOffset, m.HSVAt(x, y))
		}
	}
	return frame
}

// markerQuad контур маркера на кадре в порядке, не поворачивающем изображение
func markerQuad() entity.Quadrilateral {
	lo := float64(testOffset)
	hi := float64(testOffset + testCells*testCellSize)
	return entity.Quadrilateral{Vertices: []entity.Point{{X: hi, Y: hi}, {X: hi, Y: lo}, {X: lo, Y: lo}, {X: lo, Y: hi}}}
}

// fakeSource отдаёт кадры по очереди; последний кадр повторяется, если repeat
type fakeSource struct {
	mu     sync.Mutex
	frames []port.Image
	next   int
	repeat bool
	closed bool
	reads  int
}

func (s *fakeSource) NextFrame(ctx context.Context) (port.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++

	if s.next >= len(s.frames) {
		if s.repeat && len(s.frames) > 0 {
			return s.frames[len(s.frames)-1], nil
		}
		s.closed = true
		return nil, port.ErrNoFrame
	}
	frame := s.frames[s.next]
	s.next++
	return frame, nil
}

func (s *fakeSource) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// fakeSegmenter возвращает одни и те же контуры для каждого кадра
type fakeSegmenter struct {
	quads   []entity.Quadrilateral
	entered chan struct{} // сигнал о входе в сегментацию (может быть nil)
	release chan struct{} // блокирует сегментацию до закрытия (может быть nil)
}

func (s *fakeSegmenter) FindQuadrilaterals(frame port.Image) ([]entity.Quadrilateral, error) {
	if s.entered != nil {
		select {
		case s.entered <- struct{}{}:
		default:
		}
	}
	if s.release != nil {
		<-s.release
	}
	return s.quads, nil
}

// recordingNotifier запоминает события
type recordingNotifier struct {
	mu     sync.Mutex
	events []entity.ReceiveEvent
}

func (n *recordingNotifier) Notify(ctx context.Context, event entity.ReceiveEvent) {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
}

func (n *recordingNotifier) Events() []entity.ReceiveEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entity.ReceiveEvent(nil), n.events...)
}

func seq(symbols ...entity.Symbol) []entity.Symbol {
	return symbols
}
