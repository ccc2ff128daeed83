package log

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/thanhminhmr/go-error/configuration"
	"github.com/thanhminhmr/go-error/errors"
	"go.uber.org/fx"
)

type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
}

func init() {
	configuration.SetDefault("LOG_LEVEL", "info")
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixNano
	zerolog.ErrorStackMarshaler = marshalStack
}

// marshalStack returns the traceback captured by an *errors.Error, for events
// built with Stack().
func marshalStack(err error) any {
	var e *errors.Error
	if !errors.As(err, &e) || len(e.Traceback()) == 0 {
		return nil
	}
	return e.Traceback()
}

func ConsoleLogger(lifecycle fx.Lifecycle, config *LoggerConfig) (*zerolog.Logger, context.Context) {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02T15:04:05.000000000Z07:00",
	}).Level(level).With().Timestamp().Caller().Logger()
	// the context is cancelled when the application stops
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return zerolog.Ctx(ctx), ctx
}
