package http

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/thanhminhmr/go-error/errors"
	"github.com/thanhminhmr/go-error/log"
	"go.uber.org/fx"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewServer creates the router of the admin server. The server listens once
// the application starts, after every route is registered.
func NewServer(
	logger *zerolog.Logger,
	lifecycle fx.Lifecycle,
	config *ServerConfig,
	extraConfig *ServerExtraConfig,
) chi.Router {
	router := chi.NewRouter()
	router.Use(
		requestLogger(logger),
		recoverer,
		middleware.StripSlashes,
	)
	server := &adminServer{
		logger: logger,
		router: router,
		server: &http.Server{
			Addr:              net.JoinHostPort("", strconv.FormatUint(uint64(config.Port), 10)),
			Handler:           router,
			ReadHeaderTimeout: time.Duration(extraConfig.ReadHeaderTimeout) * time.Second,
			IdleTimeout:       time.Duration(extraConfig.IdleTimeout) * time.Second,
			MaxHeaderBytes:    int(extraConfig.MaxHeaderBytes),
		},
	}
	lifecycle.Append(fx.StartStopHook(server.start, server.stop))
	return router
}

type adminServer struct {
	logger *zerolog.Logger
	router *chi.Mux
	server *http.Server
}

func (s *adminServer) start() error {
	routes := 0
	err := chi.Walk(s.router, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		routes++
		s.logger.Debug().
			Stringer("handler", log.Func(handler)).
			Array("middlewares", log.Funcs(middlewares)).
			Msgf("Route: %s %s", method, route)
		return nil
	})
	if err != nil {
		return errors.Errorf("List routes failed", err)
	}
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return errors.Errorf("Listen on %s failed", s.server.Addr, err)
	}
	s.logger.Info().Str("addr", listener.Addr().String()).Int("routes", routes).Msg("Serving")
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("Serve failed")
		}
	}()
	return nil
}

func (s *adminServer) stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Errorf("Shutdown failed", err)
	}
	s.logger.Info().Msg("Shutdown complete")
	return nil
}

// requestLogger puts a logger tagged with a request id in the request context
// and logs every request with its response.
func requestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestLogger := logger.With().Str("request_id", fmt.Sprintf("%016x", rand.Uint64())).Logger()
			requestLogger.Info().Str("method", request.Method).Stringer("url", request.URL).Msg("Request")
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
			defer func() {
				requestLogger.Info().
					Int("status", wrapped.Status()).
					Int("bytes", wrapped.BytesWritten()).
					Dur("duration", time.Since(start)).
					Msg("Response")
			}()
			next.ServeHTTP(wrapped, request.WithContext(requestLogger.WithContext(request.Context())))
		})
	}
}

// recoverer turns a panic of a handler into an error response. The
// http.ErrAbortHandler sentinel is panicked again for net/http to abort the
// response.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		defer func() {
			value := recover()
			if value == http.ErrAbortHandler {
				panic(value)
			}
			recovered := errors.Recover(value)
			if recovered == nil {
				return
			}
			logger := zerolog.Ctx(request.Context())
			logger.Error().Stack().Err(recovered).Msg("Recovered from panic")
			if request.Header.Get("Connection") == "Upgrade" {
				return
			}
			if err := NewErrorResponse(recovered, http.StatusInternalServerError).Render(writer); err != nil {
				logger.Error().Err(err).Msg("Failed to render error")
			}
		}()
		next.ServeHTTP(writer, request)
	})
}
