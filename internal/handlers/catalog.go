// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/petpalooza-backend/internal/models"
	"github.com/javajoker/petpalooza-backend/internal/services"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	storageService *services.StorageService
}

func NewCatalogHandler(catalogService *services.CatalogService, storageService *services.StorageService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		storageService: storageService,
	}
}

// GET /pet-categories/?pet_type=
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context(), c.Query("pet_type"))
	if err != nil {
		respondError(c, err, "category")
		return
	}
	resolveAll(c, h.storageService, categories)
	utils.SuccessResponse(c, categories)
}

// GET /pet-categories/:id/
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}
	category, err := h.catalogService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "category")
		return
	}
	resolveOne(c, h.storageService, category)
	utils.SuccessResponse(c, category)
}

// GET /pet-products/?pet_type=&page=&limit=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), c.Query("pet_type"), params)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	summaries := make([]models.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, products[i].Summary())
	}
	resolveAll(c, h.storageService, summaries)

	utils.PaginatedResponse(c, utils.CreatePaginationResult(summaries, total, params))
}

// GET /pet-products/:id/
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "product")
		return
	}
	summary := product.Summary()
	resolveOne(c, h.storageService, &summary)
	utils.SuccessResponse(c, summary)
}

// GET /pet-banners/?pet_type=
func (h *CatalogHandler) ListBanners(c *gin.Context) {
	banners, err := h.catalogService.ListBanners(c.Request.Context(), c.Query("pet_type"))
	if err != nil {
		respondError(c, err, "banner")
		return
	}
	resolveAll(c, h.storageService, banners)
	utils.SuccessResponse(c, banners)
}

// GET /pet-banners/:id/
func (h *CatalogHandler) GetBanner(c *gin.Context) {
	id, ok := parseID(c, "id", "banner")
	if !ok {
		return
	}
	banner, err := h.catalogService.GetBanner(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "banner")
		return
	}
	resolveOne(c, h.storageService, banner)
	utils.SuccessResponse(c, banner)
}

// GET /pet-page/?pet_type=&page=
func (h *CatalogHandler) GetPetPage(c *gin.Context) {
	page, err := h.catalogService.GetPetPage(c.Request.Context(), c.Query("pet_type"), c.DefaultQuery("page", "1"))
	if err != nil {
		respondError(c, err, "product")
		return
	}
	resolveOne(c, h.storageService, page)
	utils.SuccessResponse(c, page)
}

// GET /pet-product/:id/
func (h *CatalogHandler) GetProductDetail(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	product, err := h.catalogService.GetProductDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "product")
		return
	}
	detail := product.Detail()
	resolveOne(c, h.storageService, &detail)
	utils.SuccessResponse(c, detail)
}

// POST /pet-product/:id/reviews/
func (h *CatalogHandler) CreateReview(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	var req services.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.catalogService.CreateReview(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "product")
		return
	}
	utils.CreatedResponse(c, review)
}
