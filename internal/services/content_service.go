// internal/services/content_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/petpalooza-backend/internal/models"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

// ContentService serves the storefront's editorial content: about, home,
// navigation and pet-services pages. None of it touches carts or orders.
type ContentService struct {
	db *gorm.DB
}

// Banner2Request is the staff payload for carousel banner 2.
type Banner2Request struct {
	LeftImage    string `json:"left_image" validate:"max=512"`
	RightImage   string `json:"right_image" validate:"max=512"`
	RibbonText   string `json:"ribbon_text" validate:"max=255"`
	OverlayTitle string `json:"overlay_title"`
	OverlayBody  string `json:"overlay_body"`
	ButtonText   string `json:"button_text" validate:"max=128"`
	ButtonLink   string `json:"button_link" validate:"max=500"`
	SortOrder    int    `json:"order" validate:"min=0"`
	Active       *bool  `json:"active"`
}

// Banner3Request is the staff payload for carousel banner 3.
type Banner3Request struct {
	LeftImage1  string `json:"left_image_1" validate:"max=512"`
	LeftImage2  string `json:"left_image_2" validate:"max=512"`
	RightImage  string `json:"right_image" validate:"max=512"`
	DiamondText string `json:"diamond_text" validate:"max=255"`
	SaveText    string `json:"save_text" validate:"max=128"`
	ButtonText  string `json:"button_text" validate:"max=128"`
	ButtonLink  string `json:"button_link" validate:"max=512"`
	BgColor     string `json:"bg_color" validate:"max=20"`
	SortOrder   int    `json:"order" validate:"min=0"`
	Active      *bool  `json:"active"`
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

// Query specs shared by the list and detail endpoints of each content type.
type listSpec struct {
	where []interface{}
	order string
}

func (l listSpec) apply(db *gorm.DB) *gorm.DB {
	if len(l.where) > 0 {
		db = db.Where(l.where[0], l.where[1:]...)
	}
	if l.order != "" {
		db = db.Order(l.order)
	}
	return db
}

var (
	aboutPageSpec      = listSpec{where: []interface{}{"is_active = ?", true}, order: "sort_order, id"}
	aboutCardSpec      = listSpec{order: "sort_order, id"}
	aboutHighlightSpec = listSpec{where: []interface{}{"is_active = ?", true}, order: "sort_order, id"}
	homeCategorySpec   = listSpec{order: "id"}
	promoBannerSpec    = listSpec{order: "id"}
	offerStripSpec     = listSpec{order: "sort_order, id"}
	petServiceSpec     = listSpec{order: "sort_order, id"}
	banner1Spec        = listSpec{where: []interface{}{"is_active = ?", true}, order: "created_at DESC, id DESC"}
	banner2Spec        = listSpec{where: []interface{}{"active = ?", true}, order: "sort_order, created_at DESC, id DESC"}
	banner3Spec        = listSpec{where: []interface{}{"active = ?", true}, order: "sort_order, created_at DESC, id DESC"}
	serviceCardSpec    = listSpec{order: "sort_order, id"}
	vetDoctorSpec      = listSpec{order: "sort_order, id"}
	latestSpec         = listSpec{order: "created_at DESC, id DESC"}
)

func listAll[T any](ctx context.Context, db *gorm.DB, spec listSpec) ([]T, error) {
	var out []T
	if err := spec.apply(db.WithContext(ctx)).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func getOne[T any](ctx context.Context, db *gorm.DB, spec listSpec, id uint) (*T, error) {
	var out T
	q := db.WithContext(ctx)
	if len(spec.where) > 0 {
		q = q.Where(spec.where[0], spec.where[1:]...)
	}
	if err := q.First(&out, id).Error; err != nil {
		return nil, notFoundOr(err, "content")
	}
	return &out, nil
}

// latest returns the newest row, reporting false when the table is empty.
func latest[T any](ctx context.Context, db *gorm.DB) (*T, bool, error) {
	var out T
	err := latestSpec.apply(db.WithContext(ctx)).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch content: %w", err)
	}
	return &out, true, nil
}

// About

func (s *ContentService) ListAboutPages(ctx context.Context) ([]models.AboutPage, error) {
	return listAll[models.AboutPage](ctx, s.db, aboutPageSpec)
}

func (s *ContentService) GetAboutPage(ctx context.Context, id uint) (*models.AboutPage, error) {
	return getOne[models.AboutPage](ctx, s.db, aboutPageSpec, id)
}

func (s *ContentService) ListAboutCards(ctx context.Context) ([]models.AboutCard, error) {
	return listAll[models.AboutCard](ctx, s.db, aboutCardSpec)
}

func (s *ContentService) GetAboutCard(ctx context.Context, id uint) (*models.AboutCard, error) {
	return getOne[models.AboutCard](ctx, s.db, aboutCardSpec, id)
}

func (s *ContentService) ListAboutHighlights(ctx context.Context) ([]models.AboutHighlight, error) {
	return listAll[models.AboutHighlight](ctx, s.db, aboutHighlightSpec)
}

func (s *ContentService) GetAboutHighlight(ctx context.Context, id uint) (*models.AboutHighlight, error) {
	return getOne[models.AboutHighlight](ctx, s.db, aboutHighlightSpec, id)
}

// Home

func (s *ContentService) ListHomeCategories(ctx context.Context) ([]models.HomeCategory, error) {
	return listAll[models.HomeCategory](ctx, s.db, homeCategorySpec)
}

func (s *ContentService) GetHomeCategory(ctx context.Context, id uint) (*models.HomeCategory, error) {
	return getOne[models.HomeCategory](ctx, s.db, homeCategorySpec, id)
}

func (s *ContentService) ListPromoBanners(ctx context.Context) ([]models.PromoBanner, error) {
	return listAll[models.PromoBanner](ctx, s.db, promoBannerSpec)
}

func (s *ContentService) GetPromoBanner(ctx context.Context, id uint) (*models.PromoBanner, error) {
	return getOne[models.PromoBanner](ctx, s.db, promoBannerSpec, id)
}

func (s *ContentService) ListOfferStrips(ctx context.Context) ([]models.OfferStrip, error) {
	return listAll[models.OfferStrip](ctx, s.db, offerStripSpec)
}

func (s *ContentService) GetOfferStrip(ctx context.Context, id uint) (*models.OfferStrip, error) {
	return getOne[models.OfferStrip](ctx, s.db, offerStripSpec, id)
}

func (s *ContentService) ListPetServices(ctx context.Context) ([]models.PetService, error) {
	return listAll[models.PetService](ctx, s.db, petServiceSpec)
}

func (s *ContentService) GetPetService(ctx context.Context, id uint) (*models.PetService, error) {
	return getOne[models.PetService](ctx, s.db, petServiceSpec, id)
}

func (s *ContentService) ListCarouselBanner1(ctx context.Context) ([]models.CarouselBanner1, error) {
	return listAll[models.CarouselBanner1](ctx, s.db, banner1Spec)
}

func (s *ContentService) GetCarouselBanner1(ctx context.Context, id uint) (*models.CarouselBanner1, error) {
	return getOne[models.CarouselBanner1](ctx, s.db, banner1Spec, id)
}

// ListCarouselBanner2 returns the active banners; the /active/ route shares it.
func (s *ContentService) ListCarouselBanner2(ctx context.Context) ([]models.CarouselBanner2, error) {
	return listAll[models.CarouselBanner2](ctx, s.db, banner2Spec)
}

func (s *ContentService) GetCarouselBanner2(ctx context.Context, id uint) (*models.CarouselBanner2, error) {
	return getOne[models.CarouselBanner2](ctx, s.db, banner2Spec, id)
}

func (s *ContentService) ListCarouselBanner3(ctx context.Context) ([]models.CarouselBanner3, error) {
	return listAll[models.CarouselBanner3](ctx, s.db, banner3Spec)
}

func (s *ContentService) GetCarouselBanner3(ctx context.Context, id uint) (*models.CarouselBanner3, error) {
	return getOne[models.CarouselBanner3](ctx, s.db, banner3Spec, id)
}

// Staff banner management. Inactive rows stay reachable here.

func (s *ContentService) SaveCarouselBanner2(ctx context.Context, id uint, req *Banner2Request) (*models.CarouselBanner2, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	banner := models.CarouselBanner2{Active: true}
	if id != 0 {
		if err := s.db.WithContext(ctx).First(&banner, id).Error; err != nil {
			return nil, notFoundOr(err, "content")
		}
	}
	banner.LeftImage = req.LeftImage
	banner.RightImage = req.RightImage
	banner.RibbonText = req.RibbonText
	banner.OverlayTitle = req.OverlayTitle
	banner.OverlayBody = req.OverlayBody
	banner.ButtonText = req.ButtonText
	banner.ButtonLink = req.ButtonLink
	banner.SortOrder = req.SortOrder
	if req.Active != nil {
		banner.Active = *req.Active
	}
	if err := s.db.WithContext(ctx).Save(&banner).Error; err != nil {
		return nil, fmt.Errorf("failed to save banner: %w", err)
	}
	return &banner, nil
}

func (s *ContentService) SaveCarouselBanner3(ctx context.Context, id uint, req *Banner3Request) (*models.CarouselBanner3, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	banner := models.CarouselBanner3{Active: true, BgColor: "#98FB98"}
	if id != 0 {
		if err := s.db.WithContext(ctx).First(&banner, id).Error; err != nil {
			return nil, notFoundOr(err, "content")
		}
	}
	banner.LeftImage1 = req.LeftImage1
	banner.LeftImage2 = req.LeftImage2
	banner.RightImage = req.RightImage
	banner.DiamondText = req.DiamondText
	banner.SaveText = req.SaveText
	banner.ButtonText = req.ButtonText
	banner.ButtonLink = req.ButtonLink
	if req.BgColor != "" {
		banner.BgColor = req.BgColor
	}
	banner.SortOrder = req.SortOrder
	if req.Active != nil {
		banner.Active = *req.Active
	}
	if err := s.db.WithContext(ctx).Save(&banner).Error; err != nil {
		return nil, fmt.Errorf("failed to save banner: %w", err)
	}
	return &banner, nil
}

func (s *ContentService) DeleteCarouselBanner2(ctx context.Context, id uint) error {
	return deleteByID[models.CarouselBanner2](ctx, s.db, id)
}

func (s *ContentService) DeleteCarouselBanner3(ctx context.Context, id uint) error {
	return deleteByID[models.CarouselBanner3](ctx, s.db, id)
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint) error {
	var zero T
	res := db.WithContext(ctx).Delete(&zero, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete content: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: content", ErrNotFound)
	}
	return nil
}

// Core

func (s *ContentService) megaMenuQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, title")
		}).
		Preload("Sections.Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, name")
		}).
		Preload("Brands", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, name")
		})
}

func (s *ContentService) ListMegaMenus(ctx context.Context) ([]models.MegaMenu, error) {
	var menus []models.MegaMenu
	if err := s.megaMenuQuery(ctx).Order("sort_order, title").Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch mega menus: %w", err)
	}
	if menus == nil {
		menus = []models.MegaMenu{}
	}
	return menus, nil
}

func (s *ContentService) GetMegaMenu(ctx context.Context, key string) (*models.MegaMenu, error) {
	var menu models.MegaMenu
	if err := s.megaMenuQuery(ctx).Where(&models.MegaMenu{Key: key}).First(&menu).Error; err != nil {
		return nil, notFoundOr(err, "mega_menu")
	}
	return &menu, nil
}

// GetActiveSiteSettings returns the single settings row; false means none is configured.
func (s *ContentService) GetActiveSiteSettings(ctx context.Context) (*models.SiteSettings, bool, error) {
	var settings models.SiteSettings
	err := s.db.WithContext(ctx).Order("id").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch site settings: %w", err)
	}
	return &settings, true, nil
}

// Pet services

func (s *ContentService) LatestPetServiceLanding(ctx context.Context) (*models.PetServiceLanding, bool, error) {
	return latest[models.PetServiceLanding](ctx, s.db)
}

func (s *ContentService) GetPetServiceLanding(ctx context.Context, id uint) (*models.PetServiceLanding, error) {
	return getOne[models.PetServiceLanding](ctx, s.db, listSpec{}, id)
}

func (s *ContentService) LatestPetServicesPage(ctx context.Context) (*models.PetServicesPage, bool, error) {
	page, ok, err := latest[models.PetServicesPage](ctx, s.db)
	if err != nil || !ok {
		return page, ok, err
	}
	if err := s.loadCards(ctx, page); err != nil {
		return nil, false, err
	}
	return page, true, nil
}

func (s *ContentService) GetPetServicesPage(ctx context.Context, id uint) (*models.PetServicesPage, error) {
	page, err := getOne[models.PetServicesPage](ctx, s.db, listSpec{}, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadCards(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *ContentService) loadCards(ctx context.Context, page *models.PetServicesPage) error {
	cards, err := listAll[models.ServiceCard](ctx, s.db.Where("page_id = ?", page.ID), serviceCardSpec)
	if err != nil {
		return err
	}
	page.Cards = cards
	return nil
}

func (s *ContentService) ListServiceCards(ctx context.Context) ([]models.ServiceCard, error) {
	return listAll[models.ServiceCard](ctx, s.db, serviceCardSpec)
}

func (s *ContentService) GetServiceCard(ctx context.Context, id uint) (*models.ServiceCard, error) {
	return getOne[models.ServiceCard](ctx, s.db, serviceCardSpec, id)
}

func (s *ContentService) LatestConsultPage(ctx context.Context) (*models.ConsultPage, bool, error) {
	return latest[models.ConsultPage](ctx, s.db)
}

func (s *ContentService) GetConsultPage(ctx context.Context, id uint) (*models.ConsultPage, error) {
	return getOne[models.ConsultPage](ctx, s.db, listSpec{}, id)
}

func (s *ContentService) ListVetDoctors(ctx context.Context) ([]models.VetDoctor, error) {
	return listAll[models.VetDoctor](ctx, s.db, vetDoctorSpec)
}

func (s *ContentService) GetVetDoctor(ctx context.Context, id uint) (*models.VetDoctor, error) {
	return getOne[models.VetDoctor](ctx, s.db, vetDoctorSpec, id)
}

func (s *ContentService) LatestBookingService(ctx context.Context) (*models.BookingService, bool, error) {
	return latest[models.BookingService](ctx, s.db)
}

func (s *ContentService) GetBookingService(ctx context.Context, id uint) (*models.BookingService, error) {
	return getOne[models.BookingService](ctx, s.db, listSpec{}, id)
}
