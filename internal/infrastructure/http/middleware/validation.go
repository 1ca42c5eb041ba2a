package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	nethttpmiddleware "github.com/oapi-codegen/nethttp-middleware"

	"github.com/rezkam/todolist/internal/infrastructure/http/response"
)

// ValidationConfig holds configuration for the OpenAPI validation middleware.
type ValidationConfig struct {
	// MultiError collects every violation instead of stopping at the first.
	MultiError bool
}

// NewValidator validates requests against spec and answers violations with
// a 400 VALIDATION_ERROR envelope. Security requirements in the document are
// not enforced here; Auth does that.
func NewValidator(spec *openapi3.T, config ValidationConfig) func(http.Handler) http.Handler {
	// The router mounts the API under /api without host matching.
	spec.Servers = openapi3.Servers{{URL: "/api"}}

	opts := &nethttpmiddleware.Options{
		Options: openapi3filter.Options{
			MultiError: config.MultiError,
			AuthenticationFunc: func(_ context.Context, _ *openapi3filter.AuthenticationInput) error {
				return nil
			},
		},
		ErrorHandlerWithOpts:  validationErrorHandler,
		SilenceServersWarning: true,
	}

	return nethttpmiddleware.OapiRequestValidatorWithOptions(spec, opts)
}

func validationErrorHandler(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, opts nethttpmiddleware.ErrorHandlerOpts) {
	if opts.StatusCode == http.StatusNotFound {
		response.NotFound(w, "route")
		return
	}
	if opts.StatusCode == http.StatusMethodNotAllowed {
		response.Error(w, "METHOD_NOT_ALLOWED", "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	details := validationDetails(err)
	slog.WarnContext(ctx, "request validation failed",
		"path", r.URL.Path,
		"method", r.Method,
		"invalid_field_count", len(details),
		"error", err.Error())

	status := opts.StatusCode
	if status == 0 {
		status = http.StatusBadRequest
	}
	response.JSON(w, status, response.ErrorResponse{
		Error: response.ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Details: details,
		},
	})
}

// validationDetails flattens kin-openapi errors into one field entry per
// violation. Body fields are named by their JSON pointer ("due_date"),
// parameters by their name ("page_size").
func validationDetails(err error) []response.ErrorField {
	details := []response.ErrorField{}

	if multi, ok := err.(openapi3.MultiError); ok {
		for _, e := range multi {
			details = append(details, validationDetails(e)...)
		}
		return details
	}

	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return append(details, response.ErrorField{Field: "request", Issue: err.Error()})
	}

	field := "body"
	if reqErr.Parameter != nil {
		field = reqErr.Parameter.Name
	}

	var schemaErr *openapi3.SchemaError
	schemaErrs, isMulti := reqErr.Err.(openapi3.MultiError)
	switch {
	case isMulti:
		for _, e := range schemaErrs {
			details = append(details, schemaDetail(field, reqErr.Parameter == nil, e))
		}
	case errors.As(reqErr.Err, &schemaErr):
		details = append(details, schemaDetail(field, reqErr.Parameter == nil, schemaErr))
	default:
		issue := reqErr.Reason
		if issue == "" && reqErr.Err != nil {
			issue = reqErr.Err.Error()
		}
		details = append(details, response.ErrorField{Field: field, Issue: issue})
	}
	return details
}

func schemaDetail(field string, inBody bool, err error) response.ErrorField {
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return response.ErrorField{Field: field, Issue: err.Error()}
	}
	if pointer := schemaErr.JSONPointer(); inBody && len(pointer) > 0 {
		field = strings.Join(pointer, ".")
	}
	return response.ErrorField{Field: field, Issue: schemaErr.Reason}
}
