package controller

import (
	"github.com/dcervantes/powerpick/internal/pkg/loader"
	"github.com/dcervantes/powerpick/internal/service/dedup"
	"github.com/dcervantes/powerpick/internal/service/ranker"
	"github.com/dcervantes/powerpick/internal/service/usage"
)

type Controller struct {
	usage   *usage.Service
	ranker  *ranker.Service
	dedup   *dedup.Service
	dataset *loader.Dataset
}

func NewController(usageSvc *usage.Service, rankerSvc *ranker.Service, dedupSvc *dedup.Service, dataset *loader.Dataset) *Controller {
	return &Controller{usage: usageSvc, ranker: rankerSvc, dedup: dedupSvc, dataset: dataset}
}
