package handler

import (
	"github.com/planlog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db     *gorm.DB
	plans  *service.PlanService
	labels *service.LabelService
	logs   *service.ProgressLogService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB) *API {
	return &API{
		db:     db,
		plans:  service.NewPlanService(db),
		labels: service.NewLabelService(db),
		logs:   service.NewProgressLogService(db),
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}
