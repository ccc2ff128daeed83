package errors_test

import (
	"testing"

	"github.com/thanhminhmr/go-error/configuration"
	"github.com/thanhminhmr/go-error/errors"
)

func restoreConfig(t *testing.T) {
	t.Cleanup(func() {
		configuration.Reload()
		errors.Configure(&errors.Config{
			TracebackDepth: errors.DefaultTracebackDepth,
			MaxChainDepth:  errors.DefaultMaxChainDepth,
		})
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	restoreConfig(t)
	configuration.Reload()
	config, err := errors.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Debug || config.TracebackDepth != errors.DefaultTracebackDepth ||
		config.MaxChainDepth != errors.DefaultMaxChainDepth {
		t.Fatalf("unexpected config %+v", config)
	}
}

func TestLoadConfigEnvironment(t *testing.T) {
	restoreConfig(t)
	t.Setenv("ERROR_DEBUG", "true")
	t.Setenv("ERROR_TRACEBACK_DEPTH", "4")
	t.Setenv("ERROR_MAX_CHAIN_DEPTH", "8")
	configuration.Reload()
	config, err := errors.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	errors.Configure(config)
	if !errors.Debug() || errors.TracebackDepth() != 4 || errors.MaxChainDepth() != 8 {
		t.Fatalf("unexpected configuration %v %d %d", errors.Debug(), errors.TracebackDepth(), errors.MaxChainDepth())
	}
	e := mustNew(t, "boom")
	if len(e.Traceback()) == 0 || len(e.Traceback()) > 4 {
		t.Fatalf("expected a traceback of at most 4 frames, got %d", len(e.Traceback()))
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	restoreConfig(t)
	t.Setenv("ERROR_TRACEBACK_DEPTH", "0")
	configuration.Reload()
	config, err := errors.LoadConfig()
	if config != nil || err == nil {
		t.Fatalf("expected the configuration to be rejected, got %+v", config)
	}
}
