package logger

import (
    "os"
    "time"

    "github.com/HamedShams/dora-pulse/internal/config"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
)

// New builds the process logger: human-readable console output at debug level
// in dev, structured JSON tagged with the service name everywhere else. The
// global zerolog logger is pointed at the same sink.
func New(cfg config.Config) zerolog.Logger {
    zerolog.TimeFieldFormat = time.RFC3339
    var logger zerolog.Logger
    if cfg.AppEnv == "dev" {
        output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
        logger = zerolog.New(output).With().Timestamp().Logger().Level(zerolog.DebugLevel)
    } else {
        logger = zerolog.New(os.Stdout).With().Timestamp().Str("svc", "dora-pulse").Logger().Level(zerolog.InfoLevel)
    }
    log.Logger = logger
    return logger
}
