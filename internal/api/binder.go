package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/dcervantes/powerpick/internal/pkg/constants"
	"github.com/labstack/echo/v4"
)

// Binder decodes request bodies with sonic instead of encoding/json.
type Binder struct{}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return constants.ErrBadRequest
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", constants.ErrBadRequest)
	}
	if err := sonic.Unmarshal(body, i); err != nil {
		return constants.NewCodedError(http.StatusBadRequest, fmt.Sprintf("malformed json: %s", err.Error()))
	}
	return nil
}
