package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/philly/member-admin/internal/platform/apperror"
	"github.com/philly/member-admin/internal/platform/logger"
	"github.com/philly/member-admin/internal/platform/result"
	"github.com/philly/member-admin/internal/platform/validator"
)

// maxBodyBytes bounds request payloads.
const maxBodyBytes = 1 << 20

var ErrInvalidBody = apperror.New(
	apperror.CodeBadRequest,
	apperror.BusinessCodeInvalidFormat,
	"invalid request body",
	http.StatusBadRequest,
)

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger    logger.Logger
	validator *validator.Validator
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger, validator *validator.Validator) *BaseHandler {
	return &BaseHandler{
		logger:    logger,
		validator: validator,
	}
}

// WriteError writes err as an error envelope.
func (h *BaseHandler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	writeResult(h, w, r, result.FromError[any](err))
}

// writeResult writes res with res.Code as the HTTP status. Server-side
// failures are logged with their cause, which never reaches the client.
func writeResult[T any](h *BaseHandler, w http.ResponseWriter, r *http.Request, res result.Result[T]) {
	if res.Code >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			"path", r.URL.Path,
			"status_code", res.Code,
			"error", res.Err,
		)
	}

	if err := result.Write(w, res); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", res.Code,
		)
	}
}

// decodeJSON reads a JSON body into dst and validates it. Values are kept
// exactly as sent.
func (h *BaseHandler) decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.From(ErrInvalidBody, errors.New("empty body"))
		}
		return apperror.From(ErrInvalidBody, err)
	}
	return h.validator.Struct(dst)
}

// pathParam binds a required simple-style path parameter.
func pathParam(r *http.Request, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &value,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeBadRequest, apperror.BusinessCodeInvalidFormat,
			fmt.Sprintf("invalid format for parameter %s", name), http.StatusBadRequest)
	}
	return value, nil
}
