package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"colorcode-receiver/config"
	"colorcode-receiver/internal/domain/port"
	"colorcode-receiver/internal/infrastructure/logging"
	"colorcode-receiver/internal/infrastructure/vision"
)

const appName = "colorcode-receiver"

var (
	// Глобальные флаги
	configPath string
	logLevel   string

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Receiver of color-grid markers",
	Long: `Приёмник цветовых маркеров: находит маркеры на кадрах камеры,
определяет их ориентацию по угловым ячейкам и сверяет декодированные
символы с переданной последовательностью.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}

		cfg = loaded
		logger = logging.New(appName, cfg.LogLevel, cfg.LogPretty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to TOML config (default: $RECEIVER_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	rootCmd.AddCommand(botCmd, receiveCmd, decodeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openVision открывает камеру и создаёт обработчики кадров по конфигурации
func openVision() (*vision.Camera, port.Segmenter, port.Warper, error) {
	camera, err := vision.OpenCamera(cfg.CameraDevice)
	if err != nil {
		return nil, nil, nil, err
	}

	segmenter := vision.NewContourSegmenter(vision.SegmenterConfig{
		ValueThreshold: cfg.ValueThreshold,
		Epsilon:        cfg.Epsilon,
	})
	return camera, segmenter, vision.NewWarper(), nil
}
