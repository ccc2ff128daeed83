package errors

import (
	"sync/atomic"

	"github.com/thanhminhmr/go-error/configuration"
)

const (
	DefaultTracebackDepth = 32
	DefaultMaxChainDepth  = 1 << 16
)

type Config struct {
	// Debug forces the capture of a traceback for every Error.
	Debug          bool `env:"ERROR_DEBUG"`
	TracebackDepth int  `env:"ERROR_TRACEBACK_DEPTH" validate:"min=1,max=256"`
	MaxChainDepth  int  `env:"ERROR_MAX_CHAIN_DEPTH" validate:"min=1,max=1048576"`
}

func init() {
	configuration.SetDefault("ERROR_DEBUG", "false")
	configuration.SetDefault("ERROR_TRACEBACK_DEPTH", "32")
	configuration.SetDefault("ERROR_MAX_CHAIN_DEPTH", "65536")
	tracebackDepth.Store(DefaultTracebackDepth)
	maxChainDepth.Store(DefaultMaxChainDepth)
}

var (
	debug          atomic.Bool
	tracebackDepth atomic.Int64
	maxChainDepth  atomic.Int64
)

// LoadConfig reads the Config from the environment.
func LoadConfig() (*Config, error) {
	var config Config
	if err := configuration.Load(&config); err != nil {
		return nil, Errorf("load error configuration", err)
	}
	return &config, nil
}

// Configure applies config to the whole process.
func Configure(config *Config) {
	SetDebug(config.Debug)
	if config.TracebackDepth > 0 {
		tracebackDepth.Store(int64(config.TracebackDepth))
	}
	if config.MaxChainDepth > 0 {
		maxChainDepth.Store(int64(config.MaxChainDepth))
	}
}

// SetDebug enables or disables the capture of a traceback for every Error.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

func Debug() bool {
	return debug.Load()
}

// TracebackDepth returns the maximum number of frames of a traceback.
func TracebackDepth() int {
	return int(tracebackDepth.Load())
}

// MaxChainDepth returns the maximum number of Errors walked in a wrap chain.
func MaxChainDepth() int {
	return int(maxChainDepth.Load())
}
