package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/thanhminhmr/go-error/errors"
)

type ServerResponse interface {
	Render(writer http.ResponseWriter) error
}

type ServerErrorResponse struct {
	Status int
	Cause  error
}

// NewErrorResponse responds with the rendering of err. The status is the code
// of the *errors.Error when it is a valid HTTP status, then the status of its
// Type, and fallback otherwise.
func NewErrorResponse(err error, fallback int) *ServerErrorResponse {
	return &ServerErrorResponse{Status: errorStatus(err, fallback), Cause: err}
}

func errorStatus(err error, fallback int) int {
	var e *errors.Error
	if !errors.As(err, &e) {
		return fallback
	}
	if code, exists := e.Message().Code(); exists && isStatus(code) {
		return code
	}
	if code := e.Type().Code(); isStatus(code) {
		return code
	}
	switch e.Type() {
	case errors.ValidationError, errors.TypeError, errors.ArgumentError:
		return http.StatusBadRequest
	case errors.ConflictError:
		return http.StatusConflict
	}
	return fallback
}

func isStatus(code int) bool {
	return code >= 100 && code <= 599
}

func (e ServerErrorResponse) Render(writer http.ResponseWriter) error {
	header := writer.Header()
	header.Add("Content-Type", "text/plain; charset=utf-8")
	header.Add("X-Content-Type-Options", "nosniff")
	writer.WriteHeader(e.Status)
	_, err := writer.Write([]byte(e.Cause.Error()))
	return err
}

func (e ServerErrorResponse) Error() string {
	return e.Cause.Error()
}

func (e ServerErrorResponse) MarshalZerologObject(event *zerolog.Event) {
	// an *errors.Error marshals itself as an object
	event.AnErr("cause", e.Cause).Int("status", e.Status)
}

type ServerJsonResponse struct {
	Status   int
	Response any
}

func (r ServerJsonResponse) Render(writer http.ResponseWriter) error {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(r.Status)
	return json.NewEncoder(writer).Encode(r.Response)
}
