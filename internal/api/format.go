package telegram

import (
	"fmt"
	"strings"

	app "colorcode-receiver/internal/application"
	"colorcode-receiver/internal/domain/entity"
	"colorcode-receiver/internal/infrastructure/vision"
)

func formatSymbols(symbols []entity.Symbol) string {
	if len(symbols) == 0 {
		return "—"
	}
	return entity.FormatSequence(symbols)
}

// formatStatus текст ответа на /status
func formatStatus(status entity.ReceiverStatus) string {
	var sb strings.Builder

	if status.Running {
		sb.WriteString("▶️ Приём идёт")
	} else {
		sb.WriteString("⏸ Приём не запущен")
	}
	if status.SessionID != "" {
		fmt.Fprintf(&sb, "\nСессия: %s (%s)", status.SessionID, status.State)
	}
	fmt.Fprintf(&sb, "\nПринято: %d симв.", len(status.Decoded))
	fmt.Fprintf(&sb, "\nРасхождений: %d", status.Mismatches)
	if status.Last != nil {
		fmt.Fprintf(&sb, "\nПоследнее: %s", status.Last)
	}

	st := status.Stats
	fmt.Fprintf(&sb, "\n\nКадров: %d, ошибок захвата: %d", st.Frames, st.CaptureErrors)
	fmt.Fprintf(&sb, "\nКонтуров: %d, крупных: %d", st.Candidates, st.Outlined)
	fmt.Fprintf(&sb, "\nМаркеров: %d, отброшено: %d", st.Markers, st.RejectedShapes)
	return sb.String()
}

// decodePhoto переводит присланное изображение в HSV и разбирает его как маркер
func decodePhoto(svc *app.DecodeService, data []byte) (*app.DecodeResult, error) {
	raster, err := vision.DecodeRaster(data)
	if err != nil {
		return nil, err
	}
	defer raster.Close()

	return svc.DecodeImage(raster)
}
