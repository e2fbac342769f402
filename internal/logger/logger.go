package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger создает консольный логгер приложения
func InitLogger() zerolog.Logger {
	return log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
