package host

import (
	"io"
	"os"
	"strings"
	"time"

	gnarklogger "github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"

	"github.com/eon-protocol/zkattest"
)

type LoggerConfig struct {
	Level  string
	Format string
}

// NewLogger builds the process logger and routes gnark's own logging into it.
// Logs go to w so that stdout stays reserved for the fixed result lines.
func NewLogger(cfg LoggerConfig, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), zkattest.ConfigurationErrorf("invalid log level %q", cfg.Level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	switch strings.ToLower(cfg.Format) {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	case "json":
	default:
		return zerolog.Nop(), zkattest.ConfigurationErrorf("invalid log format %q", cfg.Format)
	}
	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	gnarklogger.Set(logger.Level(max(lvl, zerolog.WarnLevel)))
	return logger, nil
}
