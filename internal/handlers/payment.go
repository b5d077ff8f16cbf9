// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/petpalooza-backend/internal/i18n"
	"github.com/javajoker/petpalooza-backend/internal/services"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// POST /orders/payment-intent/
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req services.OrderPaymentIntentRequest
	if !bindJSON(c, &req) {
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	response, err := h.paymentService.CreateOrderPaymentIntent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	utils.SuccessResponse(c, response)
}

// POST /orders/confirm-payment/
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ConfirmPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	response, err := h.paymentService.ConfirmOrderPayment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	message := i18n.T(lang, i18n.KeyPaymentPending)
	if response.Paid {
		message = i18n.T(lang, i18n.KeyPaymentSuccess)
	}
	utils.SuccessResponse(c, gin.H{
		"message": message,
		"payment": response,
	})
}
