package log

import (
	"github.com/rs/zerolog"
	"github.com/thanhminhmr/go-error/errors"
	"go.uber.org/dig"
	"go.uber.org/fx/fxevent"
)

// fxLogger logs the events of an fx application. Failures are logged with
// their root cause, as a structured object when it is an *errors.Error.
type fxLogger struct {
	logger *zerolog.Logger
}

func InitFxLogger(logger *zerolog.Logger) fxevent.Logger {
	return fxLogger{logger: logger}
}

type module struct {
	name  string
	trace []string
	stack []string
}

func (m module) MarshalZerologObject(event *zerolog.Event) {
	if m.name != "" {
		event.Str("module", m.name)
	}
	if len(m.trace) > 0 {
		event.Strs("moduleTrace", m.trace)
	}
	if len(m.stack) > 0 {
		event.Strs("stackTrace", m.stack)
	}
}

// failed starts an error event carrying the root cause of err.
func (l fxLogger) failed(err error) *zerolog.Event {
	cause := dig.RootCause(err)
	event := l.logger.Error()
	var e *errors.Error
	if errors.As(cause, &e) && e.Type() != nil {
		event.Str("type", e.Type().Name())
	}
	return event.AnErr("error", cause)
}

func (l fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.logger.Trace().Str("callee", e.FunctionName).Str("caller", e.CallerName).Msg("OnStart hook executing")
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.failed(e.Err).Str("callee", e.FunctionName).Str("caller", e.CallerName).Msg("OnStart hook failed")
		} else {
			l.logger.Trace().Str("callee", e.FunctionName).Str("caller", e.CallerName).Dur("runtime", e.Runtime).Msg("OnStart hook executed")
		}
	case *fxevent.OnStopExecuting:
		l.logger.Trace().Str("callee", e.FunctionName).Str("caller", e.CallerName).Msg("OnStop hook executing")
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.failed(e.Err).Str("callee", e.FunctionName).Str("caller", e.CallerName).Msg("OnStop hook failed")
		} else {
			l.logger.Trace().Str("callee", e.FunctionName).Str("caller", e.CallerName).Dur("runtime", e.Runtime).Msg("OnStop hook executed")
		}
	case *fxevent.Supplied:
		if e.Err != nil {
			l.failed(e.Err).Str("supplied", e.TypeName).
				EmbedObject(module{e.ModuleName, e.ModuleTrace, e.StackTrace}).
				Msg("Error encountered while applying options")
		} else {
			l.logger.Debug().Str("supplied", e.TypeName).EmbedObject(module{name: e.ModuleName}).Msg("Supplied")
		}
	case *fxevent.Provided:
		if e.Err != nil {
			l.failed(e.Err).Str("constructor", e.ConstructorName).Strs("types", e.OutputTypeNames).
				EmbedObject(module{e.ModuleName, e.ModuleTrace, e.StackTrace}).
				Msg("Error encountered while applying options")
		} else {
			l.logger.Debug().Str("constructor", e.ConstructorName).Strs("types", e.OutputTypeNames).
				EmbedObject(module{name: e.ModuleName}).Bool("private", e.Private).
				Msg("Provided")
		}
	case *fxevent.Replaced:
		if e.Err != nil {
			l.failed(e.Err).Strs("types", e.OutputTypeNames).
				EmbedObject(module{e.ModuleName, e.ModuleTrace, e.StackTrace}).
				Msg("Error encountered while replacing")
		} else {
			l.logger.Debug().Strs("types", e.OutputTypeNames).EmbedObject(module{name: e.ModuleName}).Msg("Replaced")
		}
	case *fxevent.Decorated:
		if e.Err != nil {
			l.failed(e.Err).Str("decorator", e.DecoratorName).Strs("types", e.OutputTypeNames).
				EmbedObject(module{e.ModuleName, e.ModuleTrace, e.StackTrace}).
				Msg("Error encountered while applying options")
		} else {
			l.logger.Debug().Str("decorator", e.DecoratorName).Strs("types", e.OutputTypeNames).
				EmbedObject(module{name: e.ModuleName}).
				Msg("Decorated")
		}
	case *fxevent.BeforeRun:
		l.logger.Trace().Str("name", e.Name).Str("kind", e.Kind).EmbedObject(module{name: e.ModuleName}).Msg("Before run")
	case *fxevent.Run:
		if e.Err != nil {
			l.failed(e.Err).Str("name", e.Name).Str("kind", e.Kind).EmbedObject(module{name: e.ModuleName}).
				Dur("runtime", e.Runtime).
				Msg("Run failed")
		} else {
			l.logger.Trace().Str("name", e.Name).Str("kind", e.Kind).EmbedObject(module{name: e.ModuleName}).
				Dur("runtime", e.Runtime).
				Msg("After run")
		}
	case *fxevent.Invoking:
		// the stack would make the logs hard to read
		l.logger.Debug().Str("function", e.FunctionName).EmbedObject(module{name: e.ModuleName}).Msg("Invoking")
	case *fxevent.Invoked:
		if e.Err != nil {
			l.failed(e.Err).Str("function", e.FunctionName).EmbedObject(module{name: e.ModuleName}).
				Str("stack", e.Trace).
				Msg("Invoke failed")
		}
	case *fxevent.Stopping:
		l.logger.Info().Stringer("signal", e.Signal).Msg("Received signal")
	case *fxevent.Stopped:
		if e.Err != nil {
			l.failed(e.Err).Msg("Stop failed")
		}
	case *fxevent.RollingBack:
		l.failed(e.StartErr).Msg("Start failed, rolling back")
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.failed(e.Err).Msg("Rollback failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.failed(e.Err).Msg("Start failed")
		} else {
			l.logger.Info().Msg("Started")
		}
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			l.failed(e.Err).Msg("Logger initialization failed")
		} else {
			l.logger.Info().Str("function", e.ConstructorName).Msg("Initialized logger")
		}
	}
}
