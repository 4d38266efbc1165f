package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joseph-ayodele/contracts-extractor/internal/async"
	"github.com/joseph-ayodele/contracts-extractor/internal/common"
)

// httpStatus maps application errors to HTTP status codes.
func httpStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, common.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, async.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	}
	switch common.CodeOf(err) {
	case common.CodeInput:
		return http.StatusBadRequest
	case common.CodeConfig:
		return http.StatusServiceUnavailable
	case common.CodeTransport, common.CodeParse:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func errorJSON(c echo.Context, err error) error {
	return c.JSON(httpStatus(err), map[string]string{"error": err.Error()})
}
