// Command errorsd serves an error type registry over HTTP.
//
// Configuration is read from the environment and the .env file:
//
//	HTTP_SERVER_PORT        listening port, 8080 by default
//	LOG_LEVEL               trace, debug, info, warn or error
//	ERROR_DEBUG             capture a traceback for every error
//	ERROR_TRACEBACK_DEPTH   maximum number of frames of a traceback
//	ERROR_MAX_CHAIN_DEPTH   maximum number of errors walked in a wrap chain
package main

import (
	"github.com/thanhminhmr/go-error/configuration"
	"github.com/thanhminhmr/go-error/errors"
	"github.com/thanhminhmr/go-error/http"
	"github.com/thanhminhmr/go-error/log"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.WithLogger(log.InitFxLogger),
		fx.Provide(
			configuration.Loader(&log.LoggerConfig{}),
			log.ConsoleLogger,
			configuration.Loader(&http.ServerConfig{}),
			configuration.Loader(&http.ServerExtraConfig{}),
			http.NewServer,
		),
		errors.Module,
		fx.Invoke(http.RegisterTypeRoutes),
	).Run()
}
