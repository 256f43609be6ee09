package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "devconnector/internal/errors"
)

// ErrorHandler writes every error returned by a handler or middleware as JSON.
// Domain errors get their fixed status and body; anything unclassified is
// logged and answered with a generic server error.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolve(err)
		if status == http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), err.Error(),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", slog.Any("error", err))
		}
	}
}

func resolve(err error) (int, interface{}) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return http.StatusInternalServerError, apperrors.ServerError
		}
		return he.Code, apperrors.ErrorResponse{Errors: []apperrors.ErrorMessage{{Msg: fmt.Sprint(he.Message)}}}
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	return httpErr.StatusCode, httpErr.Body
}

// errBadBody is returned when the request body is not valid JSON.
var errBadBody = echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")

// bindAndValidate decodes the request into req and runs its validation rules.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errBadBody
	}
	return c.Validate(req)
}
