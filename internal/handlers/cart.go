// internal/handlers/cart.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/petpalooza-backend/internal/models"
	"github.com/javajoker/petpalooza-backend/internal/services"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

const CartTokenHeader = "X-Cart-Token"

type CartHandler struct {
	cartService    *services.CartService
	storageService *services.StorageService
}

func NewCartHandler(cartService *services.CartService, storageService *services.StorageService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		storageService: storageService,
	}
}

// cartToken reads the bearer cart token from the header, falling back to ?token=.
func cartToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(CartTokenHeader)); token != "" {
		return token
	}
	return strings.TrimSpace(c.Query("token"))
}

func (h *CartHandler) respondCart(c *gin.Context, cart *models.Cart) {
	c.Header(CartTokenHeader, cart.Token)
	resolveOne(c, h.storageService, cart)
	utils.SuccessResponse(c, cart)
}

// GET /cart/
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.ResolveCart(c.Request.Context(), cartToken(c), optionalUserID(c))
	if err != nil {
		respondError(c, err, "cart")
		return
	}
	h.respondCart(c, cart)
}

// POST /cart/add/
func (h *CartHandler) AddItem(c *gin.Context) {
	var req services.AddToCartRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), cartToken(c), optionalUserID(c), &req)
	if err != nil {
		respondError(c, err, "product")
		return
	}
	h.respondCart(c, cart)
}

// POST /cart/clear/
func (h *CartHandler) Clear(c *gin.Context) {
	ctx := c.Request.Context()
	cart, err := h.cartService.ResolveCart(ctx, cartToken(c), optionalUserID(c))
	if err != nil {
		respondError(c, err, "cart")
		return
	}

	cart, err = h.cartService.Clear(ctx, cart)
	if err != nil {
		respondError(c, err, "cart")
		return
	}
	h.respondCart(c, cart)
}

// GET /cart/:id/
func (h *CartHandler) GetItem(c *gin.Context) {
	id, ok := parseID(c, "id", "cart_item")
	if !ok {
		return
	}

	item, err := h.cartService.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "cart_item")
		return
	}
	if item.Product != nil {
		resolveOne(c, h.storageService, item.Product)
	}
	utils.SuccessResponse(c, item)
}

// PATCH /cart/:id/
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id", "cart_item")
	if !ok {
		return
	}

	var req services.UpdateCartItemRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.UpdateItemQuantity(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "cart_item")
		return
	}
	h.respondCart(c, cart)
}

// DELETE /cart/:id/
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := parseID(c, "id", "cart_item")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "cart_item")
		return
	}
	h.respondCart(c, cart)
}
