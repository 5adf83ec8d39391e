package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New создаёт логгер приложения и делает его глобальным.
// pretty включает человекочитаемый вывод в консоль вместо JSON.
func New(app, level string, pretty bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, app, level, pretty)
}

// NewWithWriter создаёт логгер, пишущий в out
func NewWithWriter(out io.Writer, app, level string, pretty bool) zerolog.Logger {
	if pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(out).
		Level(ParseLevel(level)).
		With().Timestamp().Str("app", app).
		Logger()
	log.Logger = logger
	return logger
}

// ParseLevel разбирает уровень логирования, по умолчанию info
func ParseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return parsed
}
