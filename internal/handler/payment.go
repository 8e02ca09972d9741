package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"listing-checkout/internal/dto"
	"listing-checkout/internal/middleware"
	"listing-checkout/internal/payment"
)

type PaymentHandler struct {
	orchestrator *payment.Orchestrator
	log          *zap.Logger
}

func NewPaymentHandler(orchestrator *payment.Orchestrator, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		orchestrator: orchestrator,
		log:          log,
	}
}

// Pay submits the chosen payment method. The request context doubles as
// the cancellation signal: a buyer closing the payment dialog aborts the
// request, and the in-flight settlement resolves to cancelled with no
// observable effect.
func (h *PaymentHandler) Pay(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	method, err := payment.ParseMethod(req.Method)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var card *payment.CardInput
	if req.Card != nil {
		card = &payment.CardInput{
			Number:     req.Card.Number,
			HolderName: req.Card.HolderName,
			Expiry:     req.Card.Expiry,
			CVC:        req.Card.CVC,
		}
	}

	result, err := h.orchestrator.Submit(ctx, userID, method, card, func(r payment.Result) {
		h.log.Info("payment settled", zap.String("user", userID), zap.String("result", string(r)))
	})
	if err != nil {
		return respondError(c, err)
	}

	resp := dto.PaymentResponse{Result: string(result)}
	if result == payment.ResultSucceeded {
		resp.Next = VerificationRedirect
	}
	if method == payment.MethodInstantTransfer {
		resp.TransferReference = payment.TransferReference
		resp.TransferValidFor = payment.TransferValidity.String()
	}

	return c.JSON(http.StatusOK, resp)
}
