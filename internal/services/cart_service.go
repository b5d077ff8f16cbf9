// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/petpalooza-backend/internal/models"
)

type CartService struct {
	db *gorm.DB
}

// AddToCartRequest mirrors the storefront payload; quantity defaults to 1.
type AddToCartRequest struct {
	ProductID *uint `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// ResolveCart returns the active cart for token, or a fresh one when the token
// is empty, unknown or points at a closed cart. An authenticated caller is
// attached to a cart that has no owner yet.
func (s *CartService) ResolveCart(ctx context.Context, token string, userID *uint) (*models.Cart, error) {
	db := s.db.WithContext(ctx)

	var cart models.Cart
	found := false
	if token != "" {
		err := db.Where("token = ? AND is_active = ?", token, true).First(&cart).Error
		switch {
		case err == nil:
			found = true
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("failed to look up cart: %w", err)
		}
	}

	if !found {
		cart = models.Cart{IsActive: true, UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
		logrus.WithField("cart_id", cart.ID).Debug("Created cart")
	} else if userID != nil && cart.UserID == nil {
		if err := db.Model(&cart).Update("user_id", *userID).Error; err != nil {
			return nil, fmt.Errorf("failed to attach user to cart: %w", err)
		}
		cart.UserID = userID
	}

	return s.loadCart(db, cart.ID)
}

// AddItem adds quantity units of a product to the cart identified by token,
// resolving (or creating) the cart first. An existing line is incremented and
// its price snapshot refreshed; concurrent adds are serialized on the cart row.
func (s *CartService) AddItem(ctx context.Context, token string, userID *uint, req *AddToCartRequest) (*models.Cart, error) {
	if req.ProductID == nil || *req.ProductID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	quantity := 1
	if req.Quantity != nil && *req.Quantity != 0 {
		quantity = *req.Quantity
	}

	// Unknown products are rejected before a cart is created for the caller.
	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND is_active = ?", *req.ProductID, true).
		Count(&exists).Error; err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: product", ErrNotFound)
	}

	cart, err := s.ResolveCart(ctx, token, userID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, cart.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart", ErrNotFound)
			}
			return fmt.Errorf("failed to lock cart: %w", err)
		}

		var product models.Product
		if err := tx.Where("id = ? AND is_active = ?", *req.ProductID, true).
			First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product", ErrNotFound)
			}
			return fmt.Errorf("failed to load product: %w", err)
		}

		var item models.CartItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", locked.ID, product.ID).
			First(&item).Error
		switch {
		case err == nil:
			newQty := item.Quantity + quantity
			if newQty < 1 {
				newQty = 1
			}
			return tx.Model(&item).Updates(map[string]interface{}{
				"quantity":       newQty,
				"price_snapshot": product.Price,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			if quantity < 1 {
				quantity = 1
			}
			item = models.CartItem{
				CartID:        locked.ID,
				ProductID:     product.ID,
				Quantity:      quantity,
				PriceSnapshot: product.Price,
			}
			return tx.Create(&item).Error
		default:
			return fmt.Errorf("failed to load cart item: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return s.loadCart(s.db.WithContext(ctx), cart.ID)
}

// UpdateItemQuantity sets an item's quantity (clamped to at least 1) without
// touching its price snapshot, and returns the owning cart.
func (s *CartService) UpdateItemQuantity(ctx context.Context, itemID uint, req *UpdateCartItemRequest) (*models.Cart, error) {
	if req.Quantity == nil {
		return nil, fmt.Errorf("%w: quantity required", ErrValidation)
	}
	quantity := *req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	db := s.db.WithContext(ctx)
	item, err := s.findItem(db, itemID)
	if err != nil {
		return nil, err
	}

	if err := db.Model(item).Update("quantity", quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.loadCart(db, item.CartID)
}

func (s *CartService) RemoveItem(ctx context.Context, itemID uint) (*models.Cart, error) {
	db := s.db.WithContext(ctx)
	item, err := s.findItem(db, itemID)
	if err != nil {
		return nil, err
	}

	if err := db.Delete(&models.CartItem{}, item.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to delete cart item: %w", err)
	}

	return s.loadCart(db, item.CartID)
}

// Clear empties the cart; the cart itself stays open.
func (s *CartService) Clear(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	db := s.db.WithContext(ctx)
	if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	return s.loadCart(db, cart.ID)
}

func (s *CartService) GetItem(ctx context.Context, itemID uint) (*models.CartItem, error) {
	item, err := s.findItem(s.db.WithContext(ctx).Preload("Product"), itemID)
	if err != nil {
		return nil, err
	}
	item.ComputeSubtotal()
	return item, nil
}

func (s *CartService) findItem(db *gorm.DB, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load cart item: %w", err)
	}
	return &item, nil
}

func (s *CartService) loadCart(db *gorm.DB, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id")
	}).Preload("Items.Product").First(&cart, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.ComputeTotals()
	return &cart, nil
}
