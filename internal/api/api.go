package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dcervantes/powerpick/internal/api/controller"
	"github.com/dcervantes/powerpick/internal/pkg/loader"
	"github.com/dcervantes/powerpick/internal/pkg/logger"
	"github.com/dcervantes/powerpick/internal/service/contract"
	"github.com/dcervantes/powerpick/internal/service/cost"
	"github.com/dcervantes/powerpick/internal/service/dedup"
	"github.com/dcervantes/powerpick/internal/service/etf"
	"github.com/dcervantes/powerpick/internal/service/ranker"
	"github.com/dcervantes/powerpick/internal/service/usage"
)

type APIService struct {
	router *echo.Echo
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(dataset *loader.Dataset, corsOrigins []string) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.Use(middleware.Logger())
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type"},
	}))

	usageService := usage.NewService()
	dedupService := dedup.NewService()
	rankerService := ranker.NewService(cost.NewService(), etf.NewService(), contract.NewService(), dedupService)

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(usageService, rankerService, dedupService, dataset)

	plans := api.Group("/plans")
	plans.POST("/rank", cntrl.RankPlans)
	plans.GET("/rank", cntrl.RankDatasetPlans)
	plans.POST("/dedupe", cntrl.DedupePlans)

	api.GET("/tdus", cntrl.ListTDUs)

	return svc, nil
}
