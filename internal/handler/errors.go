package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"listing-checkout/internal/checkout"
	"listing-checkout/internal/dto"
	"listing-checkout/internal/middleware"
	"listing-checkout/internal/payment"
	"listing-checkout/internal/verification"
)

// respondError maps the flow's failure kinds onto HTTP responses with
// their fixed user-facing texts. Anything unmapped bubbles up to echo as
// an internal error.
func respondError(c echo.Context, err error) error {
	var verr *payment.ValidationError
	var uerr *verification.UploadError
	var rerr *verification.RecordInsertError

	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:  "Revisa los datos de tu tarjeta",
			Fields: verr.Fields,
		})
	case errors.Is(err, verification.ErrAuthRequired):
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:    "Inicia sesión para continuar",
			Redirect: middleware.SignInRedirect,
		})
	case errors.Is(err, verification.ErrIncompleteSubmission):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Sube los tres documentos para continuar",
		})
	case errors.As(err, &uerr):
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error: "No pudimos subir tus documentos, inténtalo de nuevo",
		})
	case errors.As(err, &rerr):
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error: "Algo salió mal, inténtalo de nuevo",
		})
	case errors.Is(err, checkout.ErrNoPlanSelected):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Selecciona un plan para continuar",
		})
	case errors.Is(err, checkout.ErrPlanNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Ese plan ya no está disponible",
		})
	case errors.Is(err, payment.ErrProcessing):
		return c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: "Tu pago ya se está procesando",
		})
	case errors.Is(err, verification.ErrUnknownSlot):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "unknown document slot",
		})
	default:
		return err
	}
}
