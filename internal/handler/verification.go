package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"listing-checkout/internal/dto"
	"listing-checkout/internal/middleware"
	"listing-checkout/internal/verification"
)

// DashboardRedirect is where the buyer lands after a submitted
// verification.
const DashboardRedirect = "/dashboard"

type VerificationHandler struct {
	orchestrator *verification.Orchestrator
}

func NewVerificationHandler(orchestrator *verification.Orchestrator) *VerificationHandler {
	return &VerificationHandler{
		orchestrator: orchestrator,
	}
}

func (h *VerificationHandler) GetSlots(c echo.Context) error {
	userID := middleware.UserID(c)

	slots := h.orchestrator.Slots(userID)
	out := make([]dto.SlotState, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.SlotState{
			ID:          string(s.ID),
			Title:       s.Title,
			Instruction: s.Instruction,
			Bound:       s.Bound,
			Preview:     s.Preview,
		})
	}

	return c.JSON(http.StatusOK, dto.SlotsResponse{Slots: out})
}

// BindDocument attaches an uploaded file to one of the three slots. Any
// file is accepted as-is.
func (h *VerificationHandler) BindDocument(c echo.Context) error {
	userID := middleware.UserID(c)
	slot := verification.SlotID(c.Param("slot"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read uploaded file: %w", err)
	}

	bound, err := h.orchestrator.BindFile(userID, slot, data)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SlotState{
		ID:          string(bound.ID),
		Title:       bound.Title,
		Instruction: bound.Instruction,
		Bound:       bound.Bound,
		Preview:     bound.Preview,
	})
}

func (h *VerificationHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	doc, err := h.orchestrator.Submit(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SubmitResponse{
		Status:  string(doc.Status),
		Message: "Documentos enviados, los revisaremos pronto",
		Next:    DashboardRedirect,
	})
}
