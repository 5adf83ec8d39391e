package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	app "colorcode-receiver/internal/application"
	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/infrastructure/storage"
)

var (
	receiveTimeout time.Duration
	receiveExpect  string
)

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Receive markers from the camera until the sequence is matched",
	Long: `Запускает приём без бота. Завершается, когда последовательность принята,
камера отключилась, истёк --timeout или получен сигнал остановки.
Принятые символы печатаются в stdout.`,
	RunE: runReceive,
}

func init() {
	receiveCmd.Flags().DurationVar(&receiveTimeout, "timeout", 0, "stop receiving after this duration (0 = no limit)")
	receiveCmd.Flags().StringVar(&receiveExpect, "expect", "", "expected sequence, overrides the config")
}

func runReceive(cmd *cobra.Command, args []string) error {
	expected := cfg.ExpectedSequence
	if receiveExpect != "" {
		parsed, err := entity.ParseSequence(receiveExpect)
		if err != nil {
			return fmt.Errorf("parse --expect: %w", err)
		}
		expected = parsed
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	camera, segmenter, warper, err := openVision()
	if err != nil {
		return err
	}
	defer camera.Close()

	receiver := app.NewReceiverService(cfg.Marker, camera, segmenter, warper, storage.NewMemoryExpectedSequence(expected), logger)
	if _, err := receiver.Start(ctx); err != nil {
		return err
	}

	var deadline <-chan time.Time
	if receiveTimeout > 0 {
		timer := time.NewTimer(receiveTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case <-receiver.Done():
	case <-deadline:
		logger.Warn().Dur("timeout", receiveTimeout).Msg("receive timed out")
		receiver.Stop()
		<-receiver.Done()
	}

	status := receiver.Status()
	logger.Info().
		Str("state", string(status.State)).
		Int("mismatches", status.Mismatches).
		Uint64("frames", status.Stats.Frames).
		Uint64("markers", status.Stats.Markers).
		Msg("receive finished")

	fmt.Fprintln(cmd.OutOrStdout(), entity.FormatSequence(status.Decoded))
	if status.State != entity.SessionMatched && len(expected) > 0 {
		return fmt.Errorf("sequence not received: %d of %d symbols", len(status.Decoded), len(expected))
	}
	return nil
}
