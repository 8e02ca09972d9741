package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listing-checkout/internal/catalog"
	"listing-checkout/internal/dto"
	"listing-checkout/internal/pricing"
)

type CatalogHandler struct {
	watcher *catalog.Watcher
}

func NewCatalogHandler(watcher *catalog.Watcher) *CatalogHandler {
	return &CatalogHandler{
		watcher: watcher,
	}
}

// GetPlans serves the current catalog snapshot with each plan's available
// durations and payable amounts. An unavailable catalog is an empty list,
// not an error.
func (h *CatalogHandler) GetPlans(c echo.Context) error {
	snapshot := h.watcher.Snapshot()

	plans := make([]dto.PlanWithDurations, 0, len(snapshot))
	for _, plan := range snapshot {
		durations := pricing.AvailableDurations(plan)
		options := make([]dto.DurationOption, 0, len(durations))
		for _, d := range durations {
			options = append(options, dto.DurationOption{
				ID:     d.ID,
				Label:  d.Label,
				Amount: pricing.Amount(plan.BasePrice, d.Multiplier),
			})
		}
		plans = append(plans, dto.PlanWithDurations{Plan: plan, Durations: options})
	}

	return c.JSON(http.StatusOK, dto.PlansResponse{Plans: plans})
}
