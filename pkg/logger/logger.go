package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base zerolog.Logger
)

func init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("ENVIRONMENT"), os.Stdout)
}

// Configure replaces the package logger. Development gets console output and
// debug level unless LOG_LEVEL says otherwise.
func Configure(level, environment string, out io.Writer) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
		if environment == "development" {
			lvl = zerolog.DebugLevel
		}
	}

	var w io.Writer = out
	if environment == "development" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006/01/02 15:04:05"}
	}

	mu.Lock()
	base = zerolog.New(w).Level(lvl).With().Timestamp().CallerWithSkipFrameCount(3).Logger()
	mu.Unlock()
}

// L returns the underlying zerolog logger for structured fields.
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := base
	return &l
}

func Info(format string, v ...interface{}) {
	L().Info().Msgf(format, v...)
}

func Error(format string, v ...interface{}) {
	L().Error().Msgf(format, v...)
}

func Debug(format string, v ...interface{}) {
	L().Debug().Msgf(format, v...)
}

func Warn(format string, v ...interface{}) {
	L().Warn().Msgf(format, v...)
}

// LogUploadError records a failed upload step without failing the caller.
func LogUploadError(storageKey, action string, err error) {
	L().Warn().Str("storage_key", storageKey).Str("action", action).Err(err).Msg("upload step failed")
}
