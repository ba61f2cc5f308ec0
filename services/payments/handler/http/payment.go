package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iskolardev/paygate/internal/pkg/logger"
	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/internal/utils"
	"github.com/iskolardev/paygate/services/payments"
)

// PaymentHandler handles HTTP requests for payment operations
type PaymentHandler struct {
	paymentUC payments.PaymentUseCase
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUC payments.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
	}
}

// Checkout handles checkout creation requests. The payment method type
// comes from the path so callers cannot smuggle one in the body.
func (h *PaymentHandler) Checkout(c echo.Context) error {
	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Invalid request payload for checkout",
			logger.Err(err),
			logger.String("endpoint", "Checkout"),
		)
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	req.PaymentMethodType = c.Param("type")

	resp, err := h.paymentUC.InitiateCheckout(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidAmount),
			errors.Is(err, payments.ErrInvalidPaymentMethod):
			return utils.BadRequestResponse(c, err.Error())
		case payments.IsGatewayError(err):
			logger.Warn("Provider rejected checkout request",
				logger.Err(err),
				logger.String("payment_method_type", req.PaymentMethodType),
			)
			return utils.ErrorResponseHandler(c, http.StatusBadGateway, "Payment provider rejected the request")
		case errors.Is(err, payments.ErrMissingRedirectURL):
			logger.ErrorLog("Provider returned unusable checkout session",
				logger.Err(err),
			)
			return utils.InternalServerErrorResponse(c, "Failed to create checkout session")
		default:
			logger.ErrorLog("Failed to initiate checkout",
				logger.Err(err),
			)
			return utils.InternalServerErrorResponse(c, "Failed to create checkout session")
		}
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Checkout session created", resp)
}

// GetTransaction handles transaction retrieval requests
func (h *PaymentHandler) GetTransaction(c echo.Context) error {
	externalID := c.Param("id")
	if externalID == "" {
		return utils.BadRequestResponse(c, "Invalid transaction ID")
	}

	tx, err := h.paymentUC.GetTransaction(c.Request().Context(), externalID)
	if err != nil {
		if errors.Is(err, payments.ErrTransactionNotFound) {
			return utils.NotFoundResponse(c, "Transaction not found")
		}
		logger.ErrorLog("Failed to retrieve transaction",
			logger.Err(err),
			logger.String("external_id", externalID),
		)
		return utils.InternalServerErrorResponse(c, "Failed to retrieve transaction")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Transaction retrieved successfully", tx)
}
