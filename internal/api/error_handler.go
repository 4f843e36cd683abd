package api

import (
	"errors"
	"net/http"

	"github.com/dcervantes/powerpick/internal/domain"
	"github.com/dcervantes/powerpick/internal/pkg/constants"
	"github.com/labstack/echo/v4"
)

func httpErrorHandler(err error, c echo.Context) {
	msg := err.Error()
	code := http.StatusInternalServerError
	for e := err; e != nil; e = errors.Unwrap(e) {
		if ce, ok := e.(*constants.CodedError); ok {
			code = ce.Code()
			break
		}
	}
	if code == http.StatusInternalServerError {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}
	}

	_ = c.JSON(code, domain.ErrorResponse{
		Message: msg,
		Code:    code,
	})
}
