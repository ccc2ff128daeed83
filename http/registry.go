package http

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/thanhminhmr/go-error/errors"
	"github.com/thanhminhmr/go-error/helper"
)

// TypeView is the JSON representation of an *errors.Type.
type TypeView struct {
	Name    string `json:"name"`
	Code    int    `json:"code"`
	Message any    `json:"message,omitempty"`
}

func newTypeView(t *errors.Type) TypeView {
	return TypeView{Name: t.Name(), Code: t.Code(), Message: t.Message()}
}

type listTypesRequest struct{}

type typeNameRequest struct {
	Name string `url:"name" validate:"required"`
}

type createTypeRequest struct {
	Body struct {
		Name    string `json:"name" validate:"required,typename"`
		Code    *int   `json:"code"`
		Message any    `json:"message"`
	} `json:""`
}

// typeRoutes serves a Registry. The registry only holds weak references, so
// the Types created through the routes are pinned here until deleted.
type typeRoutes struct {
	registry *errors.Registry
	pinned   helper.SyncMap[string, *errors.Type]
}

// RegisterTypeRoutes mounts the administration routes of registry:
//
//	GET    /types         list the registered types
//	POST   /types         register a type
//	GET    /types/{name}  get a type
//	DELETE /types/{name}  delete a type
func RegisterTypeRoutes(router chi.Router, registry *errors.Registry) {
	routes := &typeRoutes{registry: registry}
	router.Route("/types", func(router chi.Router) {
		router.Get("/", ServerRequestParser[listTypesRequest](routes.list))
		router.Post("/", ServerRequestParser[createTypeRequest](routes.create))
		router.Get("/{name}", ServerRequestParser[typeNameRequest](routes.get))
		router.Delete("/{name}", ServerRequestParser[typeNameRequest](routes.delete))
	})
}

func (r *typeRoutes) list(_ context.Context, _ *listTypesRequest) ServerResponse {
	views := make([]TypeView, 0)
	r.registry.Range(func(t *errors.Type) bool {
		views = append(views, newTypeView(t))
		return true
	})
	slices.SortFunc(views, func(a, b TypeView) int {
		return strings.Compare(a.Name, b.Name)
	})
	return ServerJsonResponse{Status: http.StatusOK, Response: views}
}

func (r *typeRoutes) get(_ context.Context, request *typeNameRequest) ServerResponse {
	t, err := r.registry.Get(request.Name)
	if err != nil {
		return NewErrorResponse(err, http.StatusInternalServerError)
	}
	if t == nil {
		return &ServerErrorResponse{
			Cause:  errors.Errorf("error type %q not found", request.Name),
			Status: http.StatusNotFound,
		}
	}
	return ServerJsonResponse{Status: http.StatusOK, Response: newTypeView(t)}
}

func (r *typeRoutes) create(ctx context.Context, request *createTypeRequest) ServerResponse {
	code := errors.CodeUnset
	if request.Body.Code != nil {
		code = *request.Body.Code
	}
	t, err := r.registry.NewType(request.Body.Name, code, request.Body.Message)
	if err != nil {
		return NewErrorResponse(err, http.StatusInternalServerError)
	}
	r.pinned.Store(t.Name(), t)
	zerolog.Ctx(ctx).Info().Str("name", t.Name()).Int("code", t.Code()).Msg("Error type created")
	return ServerJsonResponse{Status: http.StatusCreated, Response: newTypeView(t)}
}

func (r *typeRoutes) delete(ctx context.Context, request *typeNameRequest) ServerResponse {
	r.pinned.Remove(request.Name)
	if !r.registry.Delete(request.Name) {
		return &ServerErrorResponse{
			Cause:  errors.Errorf("error type %q not found", request.Name),
			Status: http.StatusNotFound,
		}
	}
	zerolog.Ctx(ctx).Info().Str("name", request.Name).Msg("Error type deleted")
	return nil
}
