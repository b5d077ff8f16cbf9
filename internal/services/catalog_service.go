// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/petpalooza-backend/internal/config"
	"github.com/javajoker/petpalooza-backend/internal/models"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

type CatalogService struct {
	db  *gorm.DB
	cfg config.ShopConfig
}

type CreateReviewRequest struct {
	Name   string `json:"name" validate:"required,max=120"`
	Email  string `json:"email" validate:"required,email,max=255"`
	Rating int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Review string `json:"review"`
}

type CreateProductRequest struct {
	PetType       string           `json:"pet_type" validate:"required,pet_type"`
	Title         string           `json:"title" validate:"required,max=220"`
	Brand         string           `json:"brand" validate:"max=120"`
	Image         string           `json:"image" validate:"max=512"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	MRP           *decimal.Decimal `json:"mrp"`
	QuantityValue *decimal.Decimal `json:"quantity_value"`
	QuantityUnit  string           `json:"quantity_unit" validate:"omitempty,oneof=kg g ml l pcs inch pack other"`
	SortOrder     int              `json:"order" validate:"min=0"`
	RelatedIDs    []uint           `json:"related_ids"`
}

type UpdateProductRequest struct {
	PetType       *string          `json:"pet_type" validate:"omitempty,pet_type"`
	Title         *string          `json:"title" validate:"omitempty,max=220"`
	Brand         *string          `json:"brand" validate:"omitempty,max=120"`
	Image         *string          `json:"image" validate:"omitempty,max=512"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	MRP           *decimal.Decimal `json:"mrp"`
	QuantityValue *decimal.Decimal `json:"quantity_value"`
	QuantityUnit  *string          `json:"quantity_unit" validate:"omitempty,oneof=kg g ml l pcs inch pack other"`
	SortOrder     *int             `json:"order" validate:"omitempty,min=0"`
	IsActive      *bool            `json:"is_active"`
	RelatedIDs    []uint           `json:"related_ids"`
}

// SidebarBlock groups categories for the pet page sidebar.
type SidebarBlock struct {
	ID    int               `json:"id"`
	Title string            `json:"title"`
	Items []models.Category `json:"items"`
}

type PetPagePagination struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}

// PetPage is the combined payload behind a pet landing page.
type PetPage struct {
	Title      string                  `json:"title"`
	Promos     []models.Category       `json:"promos"`
	Sidebar    []SidebarBlock          `json:"sidebar"`
	Products   []models.ProductSummary `json:"products"`
	Banner     *models.Banner          `json:"banner"`
	Pagination PetPagePagination       `json:"pagination"`
}

func NewCatalogService(db *gorm.DB, cfg config.ShopConfig) *CatalogService {
	if cfg.PetPageSize <= 0 {
		cfg.PetPageSize = 9
	}
	if cfg.DefaultPetType == "" {
		cfg.DefaultPetType = string(models.PetTypeDog)
	}
	return &CatalogService{db: db, cfg: cfg}
}

// PetTypeOrDefault falls back to the configured pet type for an empty filter.
func (s *CatalogService) PetTypeOrDefault(petType string) string {
	if petType = strings.TrimSpace(petType); petType == "" {
		return s.cfg.DefaultPetType
	}
	return petType
}

func (s *CatalogService) ListCategories(ctx context.Context, petType string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).
		Where("pet_type = ?", s.PetTypeOrDefault(petType)).
		Order("sort_order, id").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFoundOr(err, "category")
	}
	return &category, nil
}

func (s *CatalogService) activeProducts(ctx context.Context, petType string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Product{}).
		Where("pet_type = ? AND is_active = ?", s.PetTypeOrDefault(petType), true)
}

// ListProducts returns one page of active products for a pet type, ordered by rank then newest.
func (s *CatalogService) ListProducts(ctx context.Context, petType string, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.activeProducts(ctx, petType)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	if err := utils.ApplyPagination(query.Order("sort_order ASC, created_at DESC, id DESC"), params).
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, total, nil
}

// GetProduct returns an active product.
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).
		First(&product).Error; err != nil {
		return nil, notFoundOr(err, "product")
	}
	return &product, nil
}

// GetProductDetail loads an active product with its related products and reviews.
func (s *CatalogService) GetProductDetail(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).
		Preload("Related", "is_active = ?", true).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error; err != nil {
		return nil, notFoundOr(err, "product")
	}
	return &product, nil
}

func (s *CatalogService) ListBanners(ctx context.Context, petType string) ([]models.Banner, error) {
	var banners []models.Banner
	if err := s.db.WithContext(ctx).
		Where("pet_type = ?", s.PetTypeOrDefault(petType)).
		Order("id").
		Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch banners: %w", err)
	}
	if banners == nil {
		banners = []models.Banner{}
	}
	return banners, nil
}

func (s *CatalogService) GetBanner(ctx context.Context, id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := s.db.WithContext(ctx).First(&banner, id).Error; err != nil {
		return nil, notFoundOr(err, "banner")
	}
	return &banner, nil
}

// GetPetPage assembles promos, sidebar, one page of products and the banner for
// a pet type. Out-of-range pages are pinned to the last page.
func (s *CatalogService) GetPetPage(ctx context.Context, petType, rawPage string) (*PetPage, error) {
	petType = s.PetTypeOrDefault(petType)

	categories, err := s.ListCategories(ctx, petType)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.activeProducts(ctx, petType).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	size := s.cfg.PetPageSize
	page := utils.ClampPage(rawPage, total, size)

	var products []models.Product
	if err := s.activeProducts(ctx, petType).
		Order("sort_order ASC, created_at DESC, id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	var banner *models.Banner
	var b models.Banner
	err = s.db.WithContext(ctx).Where("pet_type = ?", petType).First(&b).Error
	switch {
	case err == nil:
		banner = &b
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to fetch banner: %w", err)
	}

	summaries := make([]models.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, products[i].Summary())
	}

	totalPages := utils.TotalPages(total, size)
	if totalPages == 0 {
		totalPages = 1
	}

	return &PetPage{
		Title:  capitalize(petType),
		Promos: categories,
		Sidebar: []SidebarBlock{{
			ID:    0,
			Title: "Categories",
			Items: categories,
		}},
		Products: summaries,
		Banner:   banner,
		Pagination: PetPagePagination{
			Page:       page,
			TotalPages: totalPages,
			TotalItems: total,
		},
	}, nil
}

// CreateReview stores a review and refreshes the product's rating summary in the same transaction.
func (s *CatalogService) CreateReview(ctx context.Context, productID uint, req *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	rating := req.Rating
	if rating == 0 {
		rating = 5
	}

	review := &models.Review{
		ProductID: productID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Rating:    rating,
		Body:      req.Review,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
			return notFoundOr(err, "product")
		}

		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		var stats struct {
			Count int64
			Avg   float64
		}
		if err := tx.Model(&models.Review{}).
			Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
			Where("product_id = ?", productID).
			Scan(&stats).Error; err != nil {
			return fmt.Errorf("failed to aggregate reviews: %w", err)
		}

		newRating := product.Rating
		if stats.Count > 0 {
			newRating = int(math.RoundToEven(stats.Avg))
		}
		return tx.Model(&product).Updates(map[string]interface{}{
			"rating":       newRating,
			"rating_count": stats.Count,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	product := &models.Product{
		PetType:       models.PetType(req.PetType),
		Title:         req.Title,
		Brand:         req.Brand,
		Image:         req.Image,
		Description:   req.Description,
		Price:         req.Price.Round(2),
		MRP:           req.MRP,
		QuantityValue: decimal.NewFromInt(1),
		QuantityUnit:  models.UnitPieces,
		Rating:        5,
		IsActive:      true,
		SortOrder:     req.SortOrder,
	}
	if req.QuantityValue != nil {
		product.QuantityValue = *req.QuantityValue
	}
	if req.QuantityUnit != "" {
		product.QuantityUnit = models.UnitType(req.QuantityUnit)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		if req.RelatedIDs != nil {
			return setRelated(tx, product.ID, req.RelatedIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("product_id", product.ID).Info("Product created")
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFoundOr(err, "product")
	}

	updates := map[string]interface{}{}
	if req.PetType != nil {
		updates["pet_type"] = *req.PetType
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		updates["price"] = req.Price.Round(2)
	}
	if req.MRP != nil {
		updates["mrp"] = *req.MRP
	}
	if req.QuantityValue != nil {
		updates["quantity_value"] = *req.QuantityValue
	}
	if req.QuantityUnit != nil {
		updates["quantity_unit"] = *req.QuantityUnit
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
		}
		if req.RelatedIDs != nil {
			return setRelated(tx, product.ID, req.RelatedIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	return &product, nil
}

// DeactivateProduct hides a product from the storefront. Existing orders keep their snapshots.
func (s *CatalogService) DeactivateProduct(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product", ErrNotFound)
	}
	return nil
}

// SetRelatedProducts replaces a product's related set. Links are stored in both directions.
func (s *CatalogService) SetRelatedProducts(ctx context.Context, id uint, relatedIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return setRelated(tx, id, relatedIDs)
	})
}

func setRelated(tx *gorm.DB, id uint, relatedIDs []uint) error {
	if err := tx.Where("product_id = ? OR related_id = ?", id, id).
		Delete(&models.ProductRelation{}).Error; err != nil {
		return fmt.Errorf("failed to clear related products: %w", err)
	}

	seen := map[uint]bool{id: true}
	var ids []uint
	for _, rid := range relatedIDs {
		if !seen[rid] {
			seen[rid] = true
			ids = append(ids, rid)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var existing []uint
	if err := tx.Model(&models.Product{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return fmt.Errorf("failed to check related products: %w", err)
	}
	if len(existing) != len(ids) {
		return fmt.Errorf("%w: unknown related product", ErrValidation)
	}

	links := make([]models.ProductRelation, 0, len(ids)*2)
	for _, rid := range ids {
		links = append(links,
			models.ProductRelation{ProductID: id, RelatedID: rid},
			models.ProductRelation{ProductID: rid, RelatedID: id},
		)
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to link related products: %w", err)
	}
	return nil
}

func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, resource)
	}
	return fmt.Errorf("failed to load %s: %w", resource, err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func (p *PetPage) ResolveMedia(resolve models.MediaResolver) {
	for i := range p.Promos {
		p.Promos[i].ResolveMedia(resolve)
	}
	for i := range p.Sidebar {
		for j := range p.Sidebar[i].Items {
			p.Sidebar[i].Items[j].ResolveMedia(resolve)
		}
	}
	for i := range p.Products {
		p.Products[i].ResolveMedia(resolve)
	}
	if p.Banner != nil {
		p.Banner.ResolveMedia(resolve)
	}
}
