package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dcervantes/powerpick/internal/domain/dto"
)

// DedupePlans collapses language variants and renamed duplicates without
// running the full evaluation pipeline.
func (c *Controller) DedupePlans(ctx echo.Context) error {
	var req dto.DedupeRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, c.dedup.Deduplicate(req.Plans))
}
