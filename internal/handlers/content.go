// internal/handlers/content.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/petpalooza-backend/internal/models"
	"github.com/javajoker/petpalooza-backend/internal/services"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

// ContentHandler serves the read-only storefront pages (about, home, core and
// pet services) plus staff management of the carousel banners.
type ContentHandler struct {
	contentService *services.ContentService
	storageService *services.StorageService
}

func NewContentHandler(contentService *services.ContentService, storageService *services.StorageService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		storageService: storageService,
	}
}

func listMedia[T any, PT mediaList[T]](storage *services.StorageService, fetch func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := fetch(c.Request.Context())
		if err != nil {
			respondError(c, err, "content")
			return
		}
		resolveAll[T, PT](c, storage, items)
		utils.SuccessResponse(c, items)
	}
}

func getMedia[T any, PT mediaList[T]](storage *services.StorageService, fetch func(context.Context, uint) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id", "content")
		if !ok {
			return
		}
		item, err := fetch(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "content")
			return
		}
		resolveOne(c, storage, PT(item))
		utils.SuccessResponse(c, item)
	}
}

// latestMedia serves a "latest row is the page" resource. An empty table
// answers 204 when noContent is set, otherwise a null payload.
func latestMedia[T any, PT mediaList[T]](storage *services.StorageService, fetch func(context.Context) (*T, bool, error), noContent bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, found, err := fetch(c.Request.Context())
		if err != nil {
			respondError(c, err, "content")
			return
		}
		if !found {
			if noContent {
				utils.NoContentResponse(c)
				return
			}
			utils.SuccessResponse(c, nil)
			return
		}
		resolveOne(c, storage, PT(item))
		utils.SuccessResponse(c, item)
	}
}

// About

func (h *ContentHandler) ListAboutPages() gin.HandlerFunc {
	return listMedia[models.AboutPage](h.storageService, h.contentService.ListAboutPages)
}

func (h *ContentHandler) GetAboutPage() gin.HandlerFunc {
	return getMedia[models.AboutPage](h.storageService, h.contentService.GetAboutPage)
}

func (h *ContentHandler) ListAboutCards() gin.HandlerFunc {
	return listMedia[models.AboutCard](h.storageService, h.contentService.ListAboutCards)
}

func (h *ContentHandler) GetAboutCard() gin.HandlerFunc {
	return getMedia[models.AboutCard](h.storageService, h.contentService.GetAboutCard)
}

func (h *ContentHandler) ListAboutHighlights() gin.HandlerFunc {
	return listMedia[models.AboutHighlight](h.storageService, h.contentService.ListAboutHighlights)
}

func (h *ContentHandler) GetAboutHighlight() gin.HandlerFunc {
	return getMedia[models.AboutHighlight](h.storageService, h.contentService.GetAboutHighlight)
}

// Home

func (h *ContentHandler) ListHomeCategories() gin.HandlerFunc {
	return listMedia[models.HomeCategory](h.storageService, h.contentService.ListHomeCategories)
}

func (h *ContentHandler) GetHomeCategory() gin.HandlerFunc {
	return getMedia[models.HomeCategory](h.storageService, h.contentService.GetHomeCategory)
}

func (h *ContentHandler) ListPromoBanners() gin.HandlerFunc {
	return listMedia[models.PromoBanner](h.storageService, h.contentService.ListPromoBanners)
}

func (h *ContentHandler) GetPromoBanner() gin.HandlerFunc {
	return getMedia[models.PromoBanner](h.storageService, h.contentService.GetPromoBanner)
}

func (h *ContentHandler) ListOfferStrips() gin.HandlerFunc {
	return listMedia[models.OfferStrip](h.storageService, h.contentService.ListOfferStrips)
}

func (h *ContentHandler) GetOfferStrip() gin.HandlerFunc {
	return getMedia[models.OfferStrip](h.storageService, h.contentService.GetOfferStrip)
}

func (h *ContentHandler) ListPetServices() gin.HandlerFunc {
	return listMedia[models.PetService](h.storageService, h.contentService.ListPetServices)
}

func (h *ContentHandler) GetPetService() gin.HandlerFunc {
	return getMedia[models.PetService](h.storageService, h.contentService.GetPetService)
}

func (h *ContentHandler) ListCarouselBanner1() gin.HandlerFunc {
	return listMedia[models.CarouselBanner1](h.storageService, h.contentService.ListCarouselBanner1)
}

func (h *ContentHandler) GetCarouselBanner1() gin.HandlerFunc {
	return getMedia[models.CarouselBanner1](h.storageService, h.contentService.GetCarouselBanner1)
}

func (h *ContentHandler) ListCarouselBanner2() gin.HandlerFunc {
	return listMedia[models.CarouselBanner2](h.storageService, h.contentService.ListCarouselBanner2)
}

func (h *ContentHandler) GetCarouselBanner2() gin.HandlerFunc {
	return getMedia[models.CarouselBanner2](h.storageService, h.contentService.GetCarouselBanner2)
}

func (h *ContentHandler) ListCarouselBanner3() gin.HandlerFunc {
	return listMedia[models.CarouselBanner3](h.storageService, h.contentService.ListCarouselBanner3)
}

func (h *ContentHandler) GetCarouselBanner3() gin.HandlerFunc {
	return getMedia[models.CarouselBanner3](h.storageService, h.contentService.GetCarouselBanner3)
}

// Core

// GET /mega-menus/
func (h *ContentHandler) ListMegaMenus(c *gin.Context) {
	menus, err := h.contentService.ListMegaMenus(c.Request.Context())
	if err != nil {
		respondError(c, err, "mega_menu")
		return
	}
	resolveAll(c, h.storageService, menus)
	utils.SuccessResponse(c, menus)
}

// GET /mega-menus/:key/
func (h *ContentHandler) GetMegaMenu(c *gin.Context) {
	menu, err := h.contentService.GetMegaMenu(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err, "mega_menu")
		return
	}
	resolveOne(c, h.storageService, menu)
	utils.SuccessResponse(c, menu)
}

// GET /site-settings/ answers an empty object until settings exist.
func (h *ContentHandler) GetSiteSettings(c *gin.Context) {
	settings, found, err := h.contentService.GetActiveSiteSettings(c.Request.Context())
	if err != nil {
		respondError(c, err, "content")
		return
	}
	if !found {
		utils.SuccessResponse(c, gin.H{})
		return
	}
	resolveOne(c, h.storageService, settings)
	utils.SuccessResponse(c, settings)
}

// Pet services

func (h *ContentHandler) LatestPetServiceLanding() gin.HandlerFunc {
	return latestMedia[models.PetServiceLanding](h.storageService, h.contentService.LatestPetServiceLanding, true)
}

func (h *ContentHandler) GetPetServiceLanding() gin.HandlerFunc {
	return getMedia[models.PetServiceLanding](h.storageService, h.contentService.GetPetServiceLanding)
}

func (h *ContentHandler) LatestPetServicesPage() gin.HandlerFunc {
	return latestMedia[models.PetServicesPage](h.storageService, h.contentService.LatestPetServicesPage, true)
}

func (h *ContentHandler) GetPetServicesPage() gin.HandlerFunc {
	return getMedia[models.PetServicesPage](h.storageService, h.contentService.GetPetServicesPage)
}

// GET /servicecards/
func (h *ContentHandler) ListServiceCards(c *gin.Context) {
	cards, err := h.contentService.ListServiceCards(c.Request.Context())
	if err != nil {
		respondError(c, err, "content")
		return
	}
	utils.SuccessResponse(c, cards)
}

// GET /servicecards/:id/
func (h *ContentHandler) GetServiceCard(c *gin.Context) {
	id, ok := parseID(c, "id", "content")
	if !ok {
		return
	}
	card, err := h.contentService.GetServiceCard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "content")
		return
	}
	utils.SuccessResponse(c, card)
}

func (h *ContentHandler) LatestConsultPage() gin.HandlerFunc {
	return latestMedia[models.ConsultPage](h.storageService, h.contentService.LatestConsultPage, false)
}

func (h *ContentHandler) GetConsultPage() gin.HandlerFunc {
	return getMedia[models.ConsultPage](h.storageService, h.contentService.GetConsultPage)
}

func (h *ContentHandler) ListVetDoctors() gin.HandlerFunc {
	return listMedia[models.VetDoctor](h.storageService, h.contentService.ListVetDoctors)
}

func (h *ContentHandler) GetVetDoctor() gin.HandlerFunc {
	return getMedia[models.VetDoctor](h.storageService, h.contentService.GetVetDoctor)
}

func (h *ContentHandler) LatestBookingService() gin.HandlerFunc {
	return latestMedia[models.BookingService](h.storageService, h.contentService.LatestBookingService, false)
}

func (h *ContentHandler) GetBookingService() gin.HandlerFunc {
	return getMedia[models.BookingService](h.storageService, h.contentService.GetBookingService)
}

// Staff banner management

// POST /admin/carousal-banner2, PUT /admin/carousal-banner2/:id
func (h *ContentHandler) SaveCarouselBanner2(c *gin.Context) {
	id, ok := optionalPathID(c)
	if !ok {
		return
	}

	var req services.Banner2Request
	if !bindJSON(c, &req) {
		return
	}

	banner, err := h.contentService.SaveCarouselBanner2(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "content")
		return
	}
	resolveOne(c, h.storageService, banner)
	respondSaved(c, id, banner)
}

// POST /admin/carousal-banner3, PUT /admin/carousal-banner3/:id
func (h *ContentHandler) SaveCarouselBanner3(c *gin.Context) {
	id, ok := optionalPathID(c)
	if !ok {
		return
	}

	var req services.Banner3Request
	if !bindJSON(c, &req) {
		return
	}

	banner, err := h.contentService.SaveCarouselBanner3(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "content")
		return
	}
	resolveOne(c, h.storageService, banner)
	respondSaved(c, id, banner)
}

// DELETE /admin/carousal-banner2/:id
func (h *ContentHandler) DeleteCarouselBanner2(c *gin.Context) {
	id, ok := parseID(c, "id", "content")
	if !ok {
		return
	}
	if err := h.contentService.DeleteCarouselBanner2(c.Request.Context(), id); err != nil {
		respondError(c, err, "content")
		return
	}
	utils.NoContentResponse(c)
}

// DELETE /admin/carousal-banner3/:id
func (h *ContentHandler) DeleteCarouselBanner3(c *gin.Context) {
	id, ok := parseID(c, "id", "content")
	if !ok {
		return
	}
	if err := h.contentService.DeleteCarouselBanner3(c.Request.Context(), id); err != nil {
		respondError(c, err, "content")
		return
	}
	utils.NoContentResponse(c)
}

// optionalPathID returns 0 for routes without an :id segment.
func optionalPathID(c *gin.Context) (uint, bool) {
	if c.Param("id") == "" {
		return 0, true
	}
	return parseID(c, "id", "content")
}

func respondSaved(c *gin.Context, id uint, data interface{}) {
	if id == 0 {
		utils.CreatedResponse(c, data)
		return
	}
	utils.SuccessResponse(c, data)
}
