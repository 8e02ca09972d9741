package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listing-checkout/internal/checkout"
	"listing-checkout/internal/dto"
	"listing-checkout/internal/middleware"
)

// VerificationRedirect is where the buyer goes after continuing checkout.
const VerificationRedirect = "/verification"

type CheckoutHandler struct {
	checkoutService *checkout.Service
}

func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) GetSelection(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	sel, state, summary, err := h.checkoutService.Current(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, selectionResponse(sel, state, summary))
}

func (h *CheckoutHandler) ChoosePlan(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.ChoosePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	sel, summary, err := h.checkoutService.ChoosePlan(ctx, userID, req.PlanID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, selectionResponse(sel, sel.State(), summary))
}

func (h *CheckoutHandler) ChooseDuration(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.ChooseDurationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	sel, summary, err := h.checkoutService.ChooseDuration(ctx, userID, req.DurationID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, selectionResponse(sel, sel.State(), summary))
}

func (h *CheckoutHandler) Continue(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	summary, err := h.checkoutService.Continue(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ContinueResponse{
		Summary: *summaryDTO(summary),
		Next:    VerificationRedirect,
	})
}

// Abandon drops the in-memory selection. The persisted session is left
// alone; it is overwritten on the next continuation.
func (h *CheckoutHandler) Abandon(c echo.Context) error {
	h.checkoutService.Abandon(middleware.UserID(c))
	return c.NoContent(http.StatusNoContent)
}

func selectionResponse(sel checkout.Selection, state checkout.State, summary *checkout.Summary) dto.SelectionResponse {
	return dto.SelectionResponse{
		PlanID:     sel.PlanID,
		DurationID: sel.DurationID,
		State:      string(state),
		Summary:    summaryDTO(summary),
	}
}

func summaryDTO(summary *checkout.Summary) *dto.Summary {
	if summary == nil {
		return nil
	}
	return &dto.Summary{
		PlanID:        summary.Plan.ID,
		PlanName:      summary.Plan.Name,
		DurationID:    summary.Duration.ID,
		DurationLabel: summary.Duration.Label,
		PayableAmount: summary.PayableAmount,
	}
}
