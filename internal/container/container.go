package container

import (
	"github.com/rs/zerolog"

	app "colorcode-receiver/internal/application"
	"colorcode-receiver/internal/domain/marker"
	"colorcode-receiver/internal/domain/port"
)

type Container struct {
	OperatorService *app.OperatorService
	ReceiverService *app.ReceiverService
	DecodeService   *app.DecodeService
	Expected        port.ExpectedSequenceStore
}

// Vision источники кадров и обработка изображений
type Vision struct {
	Source    port.FrameSource
	Segmenter port.Segmenter
	Warper    port.Warper
}

func New(cfg marker.Config, operatorRepo port.OperatorRepository, expected port.ExpectedSequenceStore, vision Vision, log zerolog.Logger) *Container {
	operatorService := app.NewOperatorService(operatorRepo)
	receiverService := app.NewReceiverService(cfg, vision.Source, vision.Segmenter, vision.Warper, expected, log)
	decodeService := app.NewDecodeService(cfg, vision.Warper, expected, log)

	return &Container{
		OperatorService: operatorService,
		ReceiverService: receiverService,
		DecodeService:   decodeService,
		Expected:        expected,
	}
}
