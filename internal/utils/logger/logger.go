package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"artha/internal/app/server/config"
	"artha/internal/utils/logger/slogpretty"
)

// New builds the process logger for the given environment:
// local gets colored human output, dev gets JSON at debug, anything else JSON at info.
// A non-blank level (debug, info, warn, error) overrides the environment's default.
func New(env, level string) *slog.Logger {
	lvl, parseErr := parseLevel(level, defaultLevel(env))

	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = setupPrettySlog(lvl)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}),
		)
	}

	if parseErr != nil {
		log.Warn("ignoring LOG_LEVEL", slog.String("value", level), Err(parseErr))
	}

	return log
}

func defaultLevel(env string) slog.Level {
	switch env {
	case config.EnvLocal, config.EnvDev:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func parseLevel(value string, fallback slog.Level) (slog.Level, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(value)); err != nil {
		return fallback, err
	}
	return lvl, nil
}

// Err is a shorthand for attaching an error to a log record.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func setupPrettySlog(level slog.Level) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
