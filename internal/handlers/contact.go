// internal/handlers/contact.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/petpalooza-backend/internal/i18n"
	"github.com/javajoker/petpalooza-backend/internal/services"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// POST /contact/messages/
func (h *ContactHandler) CreateMessage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateContactMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.contactService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "content")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyContactReceived),
		"contact": msg,
	})
}

// GET /contact/messages/list/ (staff)
func (h *ContactHandler) ListMessages(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	messages, total, err := h.contactService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "content")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(messages, total, params))
}
