package http

import (
	"errors"
	"log/slog"
	"net/http"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/generated/servers"
	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidState        = "INVALID_STATE"
	CodeGeocode             = "GEOCODE_ERROR"
	CodeGeocoderUnavailable = "GEOCODER_UNAVAILABLE"
	CodeOutOfRange          = "OUT_OF_RANGE"
	CodeStorage             = "STORAGE_ERROR"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeInternal            = "INTERNAL_ERROR"
)

// NewErrorHandler returns the echo error handler that renders every failure
// as a servers.Error payload.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Any("error", err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", slog.Any("error", writeErr))
		}
	}
}

func errorResponse(err error) (int, servers.Error) {
	var stockErr *driver.InsufficientStockError
	if errors.As(err, &stockErr) {
		return http.StatusBadRequest, servers.Error{
			Code:      CodeInsufficientStock,
			Message:   stockErr.Error(),
			ProductId: &stockErr.ProductID,
			Available: &stockErr.Available,
			Requested: &stockErr.Requested,
		}
	}

	var fenceErr *services.GeofenceViolationError
	if errors.As(err, &fenceErr) {
		return http.StatusBadRequest, servers.Error{
			Code:     CodeOutOfRange,
			Message:  fenceErr.Error(),
			Distance: &fenceErr.Distance,
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code := CodeValidation
		switch {
		case httpErr.Code == http.StatusNotFound:
			code = CodeNotFound
		case httpErr.Code >= http.StatusInternalServerError:
			code = CodeInternal
		}
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok && m != "" {
			message = m
		}
		return httpErr.Code, servers.Error{Code: code, Message: message}
	}

	switch {
	case errors.Is(err, ports.ErrGeocoderUnavailable):
		return http.StatusServiceUnavailable, servers.Error{Code: CodeGeocoderUnavailable, Message: err.Error()}
	case errors.Is(err, ports.ErrGeocodingFailed):
		return http.StatusBadRequest, servers.Error{Code: CodeGeocode, Message: err.Error()}
	case errors.Is(err, ports.ErrPhotoRejected):
		return http.StatusBadRequest, servers.Error{Code: CodeStorage, Message: err.Error()}
	case errors.Is(err, ports.ErrStorage):
		return http.StatusInternalServerError, servers.Error{Code: CodeStorage, Message: "failed to store photo"}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, servers.Error{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusBadRequest, servers.Error{Code: CodeInvalidState, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, servers.Error{Code: CodeValidation, Message: err.Error()}
	default:
		return http.StatusInternalServerError, servers.Error{Code: CodeInternal, Message: "internal server error"}
	}
}
