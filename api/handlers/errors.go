package handlers

import (
	"fmt"
	"net/http"

	"github.com/EO-DataHub/eodhp-resource-services/api/services"
	"github.com/EO-DataHub/eodhp-resource-services/db"
	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// AppHandler is an HTTP handler that reports failure by returning an error
// instead of writing an error response itself.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// ErrorHandler is the one place failures become HTTP responses. Every route
// goes through it, so every error has the same envelope.
type ErrorHandler struct {
	// IncludeStackTrace adds the error's stack and cause to responses.
	// Only meant for development.
	IncludeStackTrace bool
}

func NewErrorHandler(includeStackTrace bool) *ErrorHandler {
	return &ErrorHandler{IncludeStackTrace: includeStackTrace}
}

// Wrap adapts fn to an http.HandlerFunc, sending any returned error to Handle.
func (h *ErrorHandler) Wrap(fn AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.Handle(w, r, err)
		}
	}
}

// Handle logs err and writes the error envelope for it.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())
	status, message := h.classify(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("Request failed")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("Request rejected")
	}

	response := models.ErrorResponse{
		Status:     models.StatusError,
		StatusCode: status,
		Message:    message,
	}
	if h.IncludeStackTrace {
		response.Stack = fmt.Sprintf("%+v", err)
	}

	WriteResponse(w, status, response)
}

// Recover turns a panic in next into a 500 error envelope.
func (h *ErrorHandler) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.Handle(w, r, errors.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *ErrorHandler) classify(err error) (int, string) {
	var httpErr *services.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode(), httpErr.Message
	}

	// Storage causes stay in the logs
	var loadErr *db.LoadFailure
	if errors.As(err, &loadErr) {
		return http.StatusInternalServerError, fmt.Sprintf("Error reading %s data", loadErr.Collection)
	}
	var saveErr *db.SaveFailure
	if errors.As(err, &saveErr) {
		return http.StatusInternalServerError, fmt.Sprintf("Error writing %s data", saveErr.Collection)
	}

	if h.IncludeStackTrace {
		return http.StatusInternalServerError, err.Error()
	}
	return http.StatusInternalServerError, "Something went wrong"
}

// RouteNotFound answers requests that match no route.
func RouteNotFound(w http.ResponseWriter, r *http.Request) error {
	return services.NewHTTPError(http.StatusNotFound,
		fmt.Sprintf("Can't find %s on this server!", r.URL.Path))
}

// MethodNotAllowed answers requests for a known path with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) error {
	return services.NewHTTPError(http.StatusMethodNotAllowed,
		fmt.Sprintf("Method %s not allowed on %s", r.Method, r.URL.Path))
}
