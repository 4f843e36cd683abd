package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dcervantes/powerpick/internal/domain"
	"github.com/dcervantes/powerpick/internal/domain/dto"
	"github.com/dcervantes/powerpick/internal/pkg/constants"
	"github.com/dcervantes/powerpick/internal/pkg/loader"
	"github.com/dcervantes/powerpick/internal/service/ranker"
	"github.com/dcervantes/powerpick/internal/service/usage"
)

// RankPlans evaluates and orders the plans supplied in the request body.
func (c *Controller) RankPlans(ctx echo.Context) error {
	var req dto.RankRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	in, err := c.buildRankInput(req.Plans, &req)
	if err != nil {
		return err
	}

	out, err := c.ranker.Rank(*in)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, out)
}

// RankDatasetPlans ranks the plans loaded at startup; the usage profile and
// location arrive as query parameters instead of a body.
func (c *Controller) RankDatasetPlans(ctx echo.Context) error {
	if c.dataset == nil || c.dataset.Plans == nil || len(c.dataset.Plans.Plans) == 0 {
		return constants.ErrDatasetNotLoaded
	}

	req := dto.RankRequest{
		HomeSize: ctx.QueryParams().Get("home_size"),
		TDUArea:  ctx.QueryParams().Get("tdu_area"),
		Zip:      ctx.QueryParams().Get("zip"),
	}
	if avg := ctx.QueryParams().Get("avg_monthly_kwh"); avg != "" {
		v, err := strconv.ParseFloat(avg, 64)
		if err != nil {
			return constants.NewCodedError(http.StatusBadRequest, "avg_monthly_kwh must be a number")
		}
		req.AvgMonthlyKWh = &v
	}

	in, err := c.buildRankInput(c.dataset.Plans.Plans, &req)
	if err != nil {
		return err
	}

	// only plans for the resolved service area are comparable
	filtered := make([]*domain.Plan, 0, len(in.Plans))
	for _, p := range in.Plans {
		if p.TDUArea == in.TDU.Code {
			filtered = append(filtered, p)
		}
	}
	in.Plans = filtered

	out, err := c.ranker.Rank(*in)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, out)
}

// buildRankInput resolves the usage profile, TDU record and tax rate from
// whichever combination of fields the request carried.
func (c *Controller) buildRankInput(plans []*domain.Plan, req *dto.RankRequest) (*ranker.RankInput, error) {
	pattern := req.UsagePattern
	if len(pattern) == 0 {
		switch {
		case req.AvgMonthlyKWh != nil:
			pattern = c.usage.EstimatePattern(*req.AvgMonthlyKWh)
		case req.HomeSize != "":
			pattern = c.usage.EstimateFromHomeSize(req.HomeSize)
		default:
			pattern = c.usage.EstimatePattern(usage.DefaultAverageKWh)
		}
	}

	tdu := req.TDU
	var err error
	if tdu == nil {
		switch {
		case req.TDUArea != "":
			tdu, err = loader.ResolveTDU(c.tduRates(), req.TDUArea)
		case req.Zip != "":
			tdu, err = loader.ResolveTDUByZip(c.tduRates(), req.Zip)
		default:
			err = constants.ErrMissingTDURate
		}
		if err != nil {
			return nil, err
		}
	}

	taxRate := 0.0
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	} else if req.Zip != "" {
		taxRate = loader.ResolveTax(c.localTaxes(), req.Zip).Rate
	}

	return &ranker.RankInput{
		Plans:         plans,
		Usage:         pattern,
		TDU:           tdu,
		TaxRate:       taxRate,
		ReferenceDate: time.Now(),
		ContractStart: req.ParsedContractStart(),
	}, nil
}

func (c *Controller) tduRates() *domain.TDURatesData {
	if c.dataset == nil {
		return nil
	}
	return c.dataset.TDURates
}

func (c *Controller) localTaxes() *domain.LocalTaxesData {
	if c.dataset == nil {
		return nil
	}
	return c.dataset.LocalTaxes
}
