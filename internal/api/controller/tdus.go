package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dcervantes/powerpick/internal/domain"
	"github.com/dcervantes/powerpick/internal/pkg/constants"
	"github.com/dcervantes/powerpick/internal/pkg/loader"
)

// ListTDUs returns the loaded delivery tariffs. With a zip query parameter
// it narrows the answer to the matching service area and its local tax.
func (c *Controller) ListTDUs(ctx echo.Context) error {
	rates := c.tduRates()
	if rates == nil {
		return constants.ErrDatasetNotLoaded
	}

	zip := ctx.QueryParams().Get("zip")
	if zip == "" {
		return ctx.JSON(http.StatusOK, rates)
	}

	tdu, err := loader.ResolveTDUByZip(rates, zip)
	if err != nil {
		return err
	}

	type response struct {
		TDU *domain.TDURate `json:"tdu"`
		Tax domain.TaxInfo  `json:"tax"`
	}

	return ctx.JSON(http.StatusOK, response{
		TDU: tdu,
		Tax: loader.ResolveTax(c.localTaxes(), zip),
	})
}
