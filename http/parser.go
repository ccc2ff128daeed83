package http

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/thanhminhmr/go-error/errors"
	"github.com/thanhminhmr/go-error/internal"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ServerRequestHandler[ServerRequest any] func(ctx context.Context, request *ServerRequest) ServerResponse

// ServerRequestParser binds the request into a ServerRequest struct, validates
// it and calls handler. The fields of ServerRequest are bound by tag:
//
//	header, cookie, query, url, form  decoded by name with mapstructure
//	json:""                           the whole JSON body
//	multipart:""                      a multipart.Reader over the body
//	body:"<type>;<type>"              the raw body for these content types
//
// A nil ServerResponse responds with 204 No Content.
func ServerRequestParser[ServerRequest any](handler ServerRequestHandler[ServerRequest]) http.HandlerFunc {
	tags := checkServerRequestConfiguration[ServerRequest]()
	return func(writer http.ResponseWriter, request *http.Request) {
		var parsed ServerRequest
		serverRequestHandler(writer, request, &parsed, tags, func() ServerResponse {
			return handler(request.Context(), &parsed)
		})
	}
}

func serverRequestHandler(
	writer http.ResponseWriter,
	request *http.Request,
	parsed any,
	tags serverRequestConfiguration,
	handler func() ServerResponse,
) {
	logger := zerolog.Ctx(request.Context())
	if errorResponse := parseServerRequest(request, parsed, tags); errorResponse != nil {
		logger.Error().Object("response", errorResponse).Msg("Failed to parse request")
		if err := errorResponse.Render(writer); err != nil {
			logger.Error().Err(err).Msg("Failed to render error")
		}
		return
	}
	logger.Trace().Any("request", parsed).Msg("Request parsed")
	renderer := handler()
	if renderer == nil {
		logger.Trace().Msg("Empty response returned")
		writer.WriteHeader(http.StatusNoContent)
		return
	}
	logger.Trace().Any("response", renderer).Msg("Response returned")
	if err := renderer.Render(writer); err != nil {
		logger.Error().Err(err).Msg("Failed to render response")
	}
}

//region serverRequestConfiguration

type serverRequestConfiguration struct {
	flags            uint
	fieldIndexes     map[uint]int
	bodyContentTypes []string
}

const (
	tagHeader uint = 1 << iota
	tagCookie
	tagQuery
	tagUrl
	tagForm
	tagJson
	tagMultipart
	tagBody
)

// sourceTags may tag any number of fields.
var sourceTags = []struct {
	flag uint
	name string
}{
	{tagHeader, "header"},
	{tagCookie, "cookie"},
	{tagQuery, "query"},
	{tagUrl, "url"},
	{tagForm, "form"},
}

// wholeBodyTags tag at most one field each, of the given type if any.
var wholeBodyTags = []struct {
	flag      uint
	name      string
	fieldType reflect.Type
}{
	{tagJson, "json", nil},
	{tagMultipart, "multipart", reflect.TypeFor[multipart.Reader]()},
	{tagBody, "body", reflect.TypeFor[io.ReadCloser]()},
}

func checkServerRequestConfiguration[ServerRequest any]() serverRequestConfiguration {
	requestType := reflect.TypeFor[ServerRequest]()
	if requestType.Kind() != reflect.Struct {
		panic("BUG: ServerRequest must be a struct")
	}
	tags := serverRequestConfiguration{fieldIndexes: map[uint]int{}}
	for index := range requestType.NumField() {
		field := requestType.Field(index)
		for _, tag := range sourceTags {
			if _, exists := field.Tag.Lookup(tag.name); exists {
				tags.flags |= tag.flag
			}
		}
		for _, tag := range wholeBodyTags {
			value, exists := field.Tag.Lookup(tag.name)
			if !exists {
				continue
			}
			if tags.flags&tag.flag != 0 {
				panic("BUG: multiple " + tag.name + "-tagged fields are not allowed")
			}
			if tag.fieldType != nil && field.Type != tag.fieldType {
				panic("BUG: " + tag.name + "-tagged field must be a " + tag.fieldType.String())
			}
			if tag.flag == tagBody {
				tags.bodyContentTypes = strings.Split(value, ";")
			} else if value != "" {
				panic("BUG: " + tag.name + " tag value must be empty")
			}
			tags.flags |= tag.flag
			tags.fieldIndexes[tag.flag] = index
		}
	}
	return tags
}

//endregion serverRequestConfiguration

//region parseServerRequest

func failure(status int, err *errors.Error) *ServerErrorResponse {
	return &ServerErrorResponse{Status: status, Cause: err}
}

// sourceBinders run in order, before the body is read.
var sourceBinders = []struct {
	flag uint
	bind func(request *http.Request, parsed any) *errors.Error
}{
	{tagHeader, bindHeader},
	{tagCookie, bindCookie},
	{tagQuery, bindQuery},
	{tagUrl, bindUrl},
}

func parseServerRequest(request *http.Request, parsed any, tags serverRequestConfiguration) (errorResponse *ServerErrorResponse) {
	for _, binder := range sourceBinders {
		if tags.flags&binder.flag == 0 {
			continue
		}
		if err := binder.bind(request, parsed); err != nil {
			return failure(http.StatusInternalServerError, err)
		}
	}
	// validate once the body is bound
	defer func() {
		if errorResponse != nil {
			return
		}
		if err := internal.Validator.Struct(parsed); err != nil {
			errorResponse = NewErrorResponse(errors.ValidationError.Errorf("Request is not valid", err), http.StatusBadRequest)
		}
	}()
	switch request.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return parseServerRequestBody(request, parsed, tags)
	}
	return nil
}

func parseServerRequestBody(request *http.Request, parsed any, tags serverRequestConfiguration) *ServerErrorResponse {
	contentType := request.Header.Get("Content-Type")
	if contentType == "" {
		return failure(http.StatusUnsupportedMediaType, errors.Errorf("Content-Type is missing"))
	}
	contentType, parameters, err := mime.ParseMediaType(contentType)
	if err != nil {
		return failure(http.StatusBadRequest, errors.Errorf("Content-Type is invalid", err))
	}
	field := func(flag uint) reflect.Value {
		return reflect.ValueOf(parsed).Elem().Field(tags.fieldIndexes[flag])
	}
	switch {
	case tags.flags&tagForm != 0 && contentType == "application/x-www-form-urlencoded":
		if err := bindForm(request, parsed); err != nil {
			return failure(http.StatusBadRequest, err)
		}
	case tags.flags&tagJson != 0 && contentType == "application/json":
		if err := json.NewDecoder(request.Body).Decode(field(tagJson).Addr().Interface()); err != nil {
			return failure(http.StatusBadRequest, errors.Errorf("Decode json body failed", err))
		}
	case tags.flags&tagMultipart != 0 && contentType == "multipart/form-data":
		boundary, ok := parameters["boundary"]
		if !ok {
			return failure(http.StatusBadRequest, errors.Errorf("Boundary is missing in Content-Type of a multipart/form-data"))
		}
		field(tagMultipart).Set(reflect.ValueOf(*multipart.NewReader(request.Body, boundary)))
	case tags.flags&tagBody != 0 && slices.Contains(tags.bodyContentTypes, contentType):
		field(tagBody).Set(reflect.ValueOf(request.Body))
	default:
		return failure(http.StatusUnsupportedMediaType, errors.Errorf("Content-Type %q is unsupported", contentType))
	}
	return nil
}

func bindHeader(request *http.Request, parsed any) *errors.Error {
	if len(request.Header) == 0 {
		return nil
	}
	return bind("header", request.Header, parsed)
}

func bindCookie(request *http.Request, parsed any) *errors.Error {
	cookies := request.Cookies()
	if len(cookies) == 0 {
		return nil
	}
	cookieMap := map[string][]string{}
	for _, cookie := range cookies {
		cookieMap[cookie.Name] = append(cookieMap[cookie.Name], cookie.Value)
	}
	return bind("cookie", cookieMap, parsed)
}

func bindQuery(request *http.Request, parsed any) *errors.Error {
	values := request.URL.Query()
	if len(values) == 0 {
		return nil
	}
	return bind("query", values, parsed)
}

func bindUrl(request *http.Request, parsed any) *errors.Error {
	routeContext := chi.RouteContext(request.Context())
	if routeContext == nil || len(routeContext.URLParams.Keys) == 0 {
		return nil
	}
	urlParams := map[string]string{}
	for index, key := range routeContext.URLParams.Keys {
		urlParams[key] = routeContext.URLParams.Values[index]
	}
	return bind("url", urlParams, parsed)
}

func bindForm(request *http.Request, parsed any) *errors.Error {
	body, err := io.ReadAll(request.Body)
	if err != nil {
		return errors.Errorf("Read request body failed", err)
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return errors.Errorf("Parse form body failed", err)
	}
	return bind("form", values, parsed)
}

func bind(tag string, input any, output any) *errors.Error {
	decoder, err := internal.NewDecoder(tag, internal.DefaultDecodeHookFunc, output)
	if err != nil {
		return errors.Errorf("Create %s decoder failed", tag, err)
	}
	if err := decoder.Decode(input); err != nil {
		return errors.Errorf("Bind %s failed", tag, err)
	}
	return nil
}

//endregion parseServerRequest
