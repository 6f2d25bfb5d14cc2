// Package host drives the attestation program end to end: input loading,
// execution or setup and proving, local verification and fixture emission.
package host

import (
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/eon-protocol/zkattest/fixtures"
)

const (
	ENV_FIXTURES_ROOT = "ZKATTEST_FIXTURES_ROOT"
	ENV_OUTPUT_DIR    = "ZKATTEST_OUTPUT_DIR"
	ENV_SRS_DIR       = "ZKATTEST_SRS_DIR"
	ENV_SRS_URL       = "ZKATTEST_SRS_URL"
	ENV_SRS_SHA256    = "ZKATTEST_SRS_SHA256"
	ENV_ACCELERATOR   = "ZKATTEST_ACCELERATOR"
	ENV_LOG_LEVEL     = "ZKATTEST_LOG_LEVEL"
	ENV_LOG_FORMAT    = "ZKATTEST_LOG_FORMAT"
)

// Datasets are generated, not checked in.
const DATASETS_HELP = "Datasets are read from $" + ENV_FIXTURES_ROOT + " (default " + fixtures.DEFAULT_ROOT + ").\n" +
	"Write them first with:\n\n  " + fixtures.GENERATE_COMMAND

type Config struct {
	FixturesRoot string
	OutputDir    string
	SRSDir       string
	SRSURL       string
	SRSSHA256    string
	Accelerator  string
	Log          LoggerConfig
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() Config {
	_ = godotenv.Load()
	return ConfigFromEnv()
}

func ConfigFromEnv() Config {
	return Config{
		FixturesRoot: getenv(ENV_FIXTURES_ROOT, fixtures.DEFAULT_ROOT),
		OutputDir:    getenv(ENV_OUTPUT_DIR, fixtures.DEFAULT_OUTPUT_DIR),
		SRSDir:       os.Getenv(ENV_SRS_DIR),
		SRSURL:       os.Getenv(ENV_SRS_URL),
		SRSSHA256:    os.Getenv(ENV_SRS_SHA256),
		Accelerator:  os.Getenv(ENV_ACCELERATOR),
		Log: LoggerConfig{
			Level:  getenv(ENV_LOG_LEVEL, "info"),
			Format: getenv(ENV_LOG_FORMAT, "console"),
		},
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// Bootstrap loads the configuration, builds the logger and returns an
// orchestrator writing result lines to out.
func Bootstrap(out, logs io.Writer) (*Orchestrator, error) {
	cfg := LoadConfig()
	logger, err := NewLogger(cfg.Log, logs)
	if err != nil {
		return nil, err
	}
	return NewOrchestrator(cfg, logger, out), nil
}
