package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. Development gets the console writer,
// everything else emits JSON.
func New(environment string) zerolog.Logger {
	if strings.ToLower(environment) == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(writer).With().Timestamp().Str("service", "quote-service").Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Str("service", "quote-service").Logger()
}
