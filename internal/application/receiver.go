package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/domain/marker"
	"colorcode-receiver/internal/domain/port"
)

// ErrAlreadyRunning приём уже запущен
var ErrAlreadyRunning = errors.New("receiver is already running")

// receiveRun один запуск цикла приёма
type receiveRun struct {
	session *ReceiveSession
	running atomic.Bool
	done    chan struct{}
}

// ReceiverService управляет циклом приёма кадров: Start, Stop, IsRunning, Snapshot.
type ReceiverService struct {
	cfg       marker.Config
	source    port.FrameSource
	segmenter port.Segmenter
	warper    port.Warper
	expected  port.ExpectedSequenceProvider
	log       zerolog.Logger

	notifierMu sync.RWMutex
	notifier   port.Notifier

	// loopMu удерживается рабочей горутиной, пока она читает источник кадров
	loopMu  sync.Mutex
	current atomic.Pointer[receiveRun]

	frames        atomic.Uint64
	captureErrors atomic.Uint64
	candidates    atomic.Uint64
	outlined      atomic.Uint64
	markers       atomic.Uint64
	rejected      atomic.Uint64
}

// NewReceiverService создаёт контроллер цикла приёма
func NewReceiverService(
	cfg marker.Config,
	source port.FrameSource,
	segmenter port.Segmenter,
	warper port.Warper,
	expected port.ExpectedSequenceProvider,
	log zerolog.Logger,
) *ReceiverService {
	return &ReceiverService{
		cfg:       cfg,
		source:    source,
		segmenter: segmenter,
		warper:    warper,
		expected:  expected,
		log:       log.With().Str("component", "receiver").Logger(),
	}
}

// SetNotifier задаёт получателя событий приёма
func (s *ReceiverService) SetNotifier(n port.Notifier) {
	s.notifierMu.Lock()
	s.notifier = n
	s.notifierMu.Unlock()
}

// Start сбрасывает декодированную последовательность и запускает цикл приёма
// в отдельной горутине. Возвращает идентификатор новой сессии.
func (s *ReceiverService) Start(ctx context.Context) (string, error) {
	if err := s.cfg.Validate(); err != nil {
		return "", err
	}

	run := &receiveRun{
		session: NewReceiveSession(uuid.NewString(), s.expected, s.log),
		done:    make(chan struct{}),
	}
	run.running.Store(true)

	prev := s.current.Load()
	if prev != nil && prev.running.Load() {
		return "", ErrAlreadyRunning
	}
	if !s.current.CompareAndSwap(prev, run) {
		return "", ErrAlreadyRunning
	}

	s.log.Info().Str("session_id", run.session.ID()).Msg("receiver started")
	go s.loop(ctx, run)
	return run.session.ID(), nil
}

// Stop сбрасывает флаг работы; цикл завершится перед следующим кадром
func (s *ReceiverService) Stop() {
	if run := s.current.Load(); run != nil && run.running.CompareAndSwap(true, false) {
		s.log.Info().Str("session_id", run.session.ID()).Msg("receiver stop requested")
	}
}

// IsRunning сообщает, активен ли приём
func (s *ReceiverService) IsRunning() bool {
	run := s.current.Load()
	return run != nil && run.running.Load()
}

// Snapshot возвращает копию декодированной последовательности текущей сессии
func (s *ReceiverService) Snapshot() []entity.Symbol {
	run := s.current.Load()
	if run == nil {
		return nil
	}
	return run.session.Snapshot()
}

// Done возвращает канал, закрываемый при выходе рабочей горутины текущего запуска
func (s *ReceiverService) Done() <-chan struct{} {
	run := s.current.Load()
	if run == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return run.done
}

// Status возвращает снимок состояния приёмника
func (s *ReceiverService) Status() entity.ReceiverStatus {
	status := entity.ReceiverStatus{
		State: entity.SessionIdle,
		Stats: entity.ReceiverStats{
			Frames:         s.frames.Load(),
			CaptureErrors:  s.captureErrors.Load(),
			Candidates:     s.candidates.Load(),
			Outlined:       s.outlined.Load(),
			Markers:        s.markers.Load(),
			RejectedShapes: s.rejected.Load(),
		},
	}

	run := s.current.Load()
	if run == nil {
		return status
	}
	status.Running = run.running.Load()
	status.SessionID = run.session.ID()
	status.State = run.session.State()
	status.Decoded = run.session.Snapshot()
	status.Mismatches = run.session.Mismatches()
	status.Last = run.session.LastMismatch()
	return status
}

func (s *ReceiverService) loop(ctx context.Context, run *receiveRun) {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	defer close(run.done)
	defer run.session.Close()

	log := s.log.With().Str("session_id", run.session.ID()).Logger()

	for run.running.Load() {
		if ctx.Err() != nil {
			run.running.Store(false)
			log.Info().Err(ctx.Err()).Msg("receiver context done")
			return
		}

		s.processFrame(ctx, run, log)

		if run.session.Matched() {
			decoded := run.session.Snapshot()
			// после внешнего Stop о результате не сообщаем: хост уже завершил этот запуск
			if !run.running.CompareAndSwap(true, false) {
				log.Info().Int("length", len(decoded)).Msg("marker sequence received after stop")
				return
			}
			log.Info().Int("length", len(decoded)).Msg("marker sequence received, receiver stopped")
			s.notify(ctx, entity.ReceiveEvent{
				Kind:      entity.EventDecoded,
				SessionID: run.session.ID(),
				Decoded:   decoded,
			})
		}
	}
	log.Info().Msg("receiver loop exited")
}

// processFrame обрабатывает один кадр: все кандидаты по очереди
func (s *ReceiverService) processFrame(ctx context.Context, run *receiveRun, log zerolog.Logger) {
	frame, err := s.source.NextFrame(ctx)
	if err != nil {
		s.captureErrors.Add(1)
		log.Warn().Err(err).Msg("no captured frame")
		if !s.source.IsOpen() && run.running.CompareAndSwap(true, false) {
			log.Error().Msg("capture source is closed, receiver stopped")
			s.notify(ctx, entity.ReceiveEvent{
				Kind:      entity.EventCaptureLost,
				SessionID: run.session.ID(),
				Err:       err,
			})
		}
		return
	}
	defer frame.Close()
	s.frames.Add(1)

	quads, err := s.segmenter.FindQuadrilaterals(frame)
	if err != nil {
		log.Warn().Err(err).Msg("segmentation failed")
		return
	}

	for _, q := range quads {
		if q.Nested {
			continue
		}
		s.candidates.Add(1)
		if marker.Validate(q, s.cfg.DisplayMinArea) {
			s.outlined.Add(1)
		}

		if err := s.processCandidate(frame, q, run.session, log); err != nil {
			s.rejected.Add(1)
			log.Debug().Err(err).Msg("candidate skipped")
			continue
		}
		if run.session.Matched() {
			return
		}
	}
}

// processCandidate разбирает один контур и передаёт символы в сессию
func (s *ReceiverService) processCandidate(frame port.Image, q entity.Quadrilateral, session *ReceiveSession, log zerolog.Logger) error {
	session.BeginMarker()
	reading, err := readMarker(s.cfg, s.warper, frame, q, session.Sink())
	if err != nil {
		return err
	}
	s.markers.Add(1)

	log.Debug().
		Str("signature", reading.Signature).
		Int("key", int(reading.Key)).
		Str("symbols", entity.FormatSequence(reading.Symbols)).
		Bool("aborted", reading.Aborted).
		Msg("marker decoded")
	return nil
}

func (s *ReceiverService) notify(ctx context.Context, event entity.ReceiveEvent) {
	s.notifierMu.RLock()
	n := s.notifier
	s.notifierMu.RUnlock()

	if n != nil {
		n.Notify(ctx, event)
	}
}
