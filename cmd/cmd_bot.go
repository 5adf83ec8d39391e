package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	telegram "colorcode-receiver/internal/api"
	"colorcode-receiver/internal/container"
	"colorcode-receiver/internal/infrastructure/storage"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram front-end",
	Long: `Запускает Telegram-бота, через которого оператор задаёт ожидаемую
последовательность, запускает и останавливает приём.`,
	RunE: runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	if cfg.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	camera, segmenter, warper, err := openVision()
	if err != nil {
		return err
	}

	appContainer := container.New(
		cfg.Marker,
		storage.NewMemoryOperatorRepository(),
		storage.NewMemoryExpectedSequence(cfg.ExpectedSequence),
		container.Vision{Source: camera, Segmenter: segmenter, Warper: warper},
		logger,
	)

	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, logger)
	if err != nil {
		_ = camera.Close()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Msg("bot is running")
		return bot.Run(gctx)
	})
	g.Go(func() error {
		// камеру закрываем только после выхода цикла приёма
		<-gctx.Done()
		appContainer.ReceiverService.Stop()
		<-appContainer.ReceiverService.Done()
		return camera.Close()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("bot stopped")
	return nil
}
