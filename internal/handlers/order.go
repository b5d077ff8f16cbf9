// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/petpalooza-backend/internal/i18n"
	"github.com/javajoker/petpalooza-backend/internal/services"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

type OrderHandler struct {
	orderService   *services.OrderService
	storageService *services.StorageService
}

func NewOrderHandler(orderService *services.OrderService, storageService *services.StorageService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		storageService: storageService,
	}
}

// POST /orders/create/
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), optionalUserID(c), &req)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	resolveOne(c, h.storageService, order)
	utils.CreatedResponse(c, order)
}

// GET /orders/by-token/?token=
func (h *OrderHandler) GetByToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderTokenRequired), nil)
		return
	}

	order, err := h.orderService.GetByToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	resolveOne(c, h.storageService, order)
	utils.SuccessResponse(c, order)
}
