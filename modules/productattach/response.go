package productattach

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/productattach/pkg/attachment"
	"github.com/dmitrymomot/productattach/pkg/backendurl"
	"github.com/dmitrymomot/productattach/pkg/file"
	"github.com/dmitrymomot/productattach/pkg/logger"
	"github.com/dmitrymomot/productattach/pkg/scopeconfig"
	"github.com/dmitrymomot/productattach/pkg/storemanager"
)

// JSONResponse is the envelope of every JSON response.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body JSONResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, JSONResponse{Data: data})
}

// writeError maps err to a status and error code. Server errors are logged
// and their message is not exposed.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, code := classifyError(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", logger.Error(err))
		message = http.StatusText(status)
	}

	writeJSON(w, status, JSONResponse{Error: &ErrorDetail{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFromContext(r.Context()),
	}})
}

func classifyError(err error) (int, string) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr), errors.Is(err, file.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "file_too_large"
	case errors.Is(err, attachment.ErrNoUpload):
		return http.StatusBadRequest, "no_upload"
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, attachment.ErrExtensionNotAllowed):
		return http.StatusUnprocessableEntity, "extension_not_allowed"
	case errors.Is(err, attachment.ErrInvalidInput),
		errors.Is(err, attachment.ErrEmptyContent),
		errors.Is(err, attachment.ErrInvalidContent),
		errors.Is(err, file.ErrFilenameTooLong),
		errors.Is(err, file.ErrEmptyFilename),
		errors.Is(err, file.ErrInvalidPath):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, storemanager.ErrStoreNotFound):
		return http.StatusNotFound, "store_not_found"
	case errors.Is(err, scopeconfig.ErrQueryFailed), errors.Is(err, backendurl.ErrUnknownRoute):
		return http.StatusInternalServerError, "configuration_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
