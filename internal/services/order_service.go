// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/petpalooza-backend/internal/database"
	"github.com/javajoker/petpalooza-backend/internal/models"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

type OrderService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

// CreateOrderRequest accepts either a cart token or a buy_now line.
// Shipping and the buy_now values are loosely typed and coerced.
type CreateOrderRequest struct {
	CartToken           string                 `json:"cart_token"`
	BuyNow              map[string]interface{} `json:"buy_now"`
	BillingName         string                 `json:"billing_name" validate:"max=200"`
	BillingEmail        string                 `json:"billing_email" validate:"max=255"`
	BillingPhone        string                 `json:"billing_phone" validate:"max=40"`
	BillingAddressLine1 string                 `json:"billing_address_line1" validate:"max=255"`
	BillingAddressLine2 string                 `json:"billing_address_line2" validate:"max=255"`
	BillingCity         string                 `json:"billing_city" validate:"max=120"`
	BillingState        string                 `json:"billing_state" validate:"max=120"`
	BillingPincode      string                 `json:"billing_pincode" validate:"max=20"`
	Shipping            interface{}            `json:"shipping"`
	Notes               string                 `json:"notes"`
	PaymentMethod       string                 `json:"payment_method" validate:"omitempty,oneof=online cod"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

type OrderListParams struct {
	utils.PaginationParams
	Status string
}

type buyNowLine struct {
	productID uint
	quantity  int
}

func NewOrderService(db *gorm.DB, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		notificationService: notificationService,
	}
}

// CreateOrder snapshots either a single buy_now product or an open cart into a
// new order. Everything happens in one transaction; on the cart path the cart
// is closed so it cannot be checked out twice.
func (s *OrderService) CreateOrder(ctx context.Context, userID *uint, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	useBuyNow := len(req.BuyNow) > 0
	if !useBuyNow && req.CartToken == "" {
		return nil, fmt.Errorf("%w: cart_token or buy_now required", ErrValidation)
	}

	var line buyNowLine
	if useBuyNow {
		var err error
		if line, err = parseBuyNow(req.BuyNow); err != nil {
			return nil, err
		}
	}

	order := &models.Order{
		UserID:              userID,
		Status:              models.OrderStatusPending,
		BillingName:         req.BillingName,
		BillingEmail:        strings.TrimSpace(req.BillingEmail),
		BillingPhone:        req.BillingPhone,
		BillingAddressLine1: req.BillingAddressLine1,
		BillingAddressLine2: req.BillingAddressLine2,
		BillingCity:         req.BillingCity,
		BillingState:        req.BillingState,
		BillingPincode:      req.BillingPincode,
		Shipping:            utils.ToDecimal(req.Shipping).Round(2),
		Notes:               req.Notes,
		PaymentMethod:       models.PaymentMethod(req.PaymentMethod),
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var items []models.OrderItem
		var err error
		if useBuyNow {
			items, err = s.snapshotProduct(tx, line)
		} else {
			items, err = s.snapshotCart(tx, req.CartToken)
		}
		if err != nil {
			return err
		}

		subtotal := decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(item.Subtotal())
		}
		order.Subtotal = subtotal
		order.Total = subtotal.Add(order.Shipping)
		order.Items = items

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"items":    len(order.Items),
		"total":    order.Total.StringFixed(2),
		"buy_now":  useBuyNow,
	}).Info("Order created")

	if s.notificationService != nil && order.BillingEmail != "" {
		placed := *order
		go func() {
			if err := s.notificationService.SendOrderConfirmation(&placed); err != nil {
				logrus.WithError(err).WithField("order_id", placed.ID).Warn("Failed to send order confirmation")
			}
		}()
	}

	return order, nil
}

func parseBuyNow(raw map[string]interface{}) (buyNowLine, error) {
	pid, ok := utils.ToInt(raw["product_id"])
	if !ok {
		return buyNowLine{}, fmt.Errorf("%w: invalid buy_now payload", ErrValidation)
	}
	qty := 1
	if v, present := raw["quantity"]; present {
		if qty, ok = utils.ToInt(v); !ok {
			return buyNowLine{}, fmt.Errorf("%w: invalid buy_now payload", ErrValidation)
		}
	}
	if qty <= 0 {
		return buyNowLine{}, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}
	if pid <= 0 {
		return buyNowLine{}, fmt.Errorf("%w: product", ErrNotFound)
	}
	return buyNowLine{productID: uint(pid), quantity: qty}, nil
}

func (s *OrderService) snapshotProduct(tx *gorm.DB, line buyNowLine) ([]models.OrderItem, error) {
	var product models.Product
	if err := tx.Where("id = ? AND is_active = ?", line.productID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	return []models.OrderItem{{
		ProductID:    product.ID,
		ProductTitle: product.Title,
		ProductImage: product.Image,
		Price:        product.Price,
		Quantity:     line.quantity,
	}}, nil
}

func (s *OrderService) snapshotCart(tx *gorm.DB, token string) ([]models.OrderItem, error) {
	var cart models.Cart
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token = ? AND is_active = ?", token, true).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid cart token", ErrValidation)
		}
		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}

	var cartItems []models.CartItem
	if err := tx.Preload("Product").Where("cart_id = ?", cart.ID).
		Order("id").Find(&cartItems).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}

	items := make([]models.OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		item := models.OrderItem{
			ProductID: ci.ProductID,
			Price:     ci.PriceSnapshot,
			Quantity:  ci.Quantity,
		}
		if ci.Product != nil {
			item.ProductTitle = ci.Product.Title
			item.ProductImage = ci.Product.Image
		}
		items = append(items, item)
	}

	// Guarded on is_active so a racing checkout cannot close the cart twice.
	res := tx.Model(&models.Cart{}).
		Where("id = ? AND is_active = ?", cart.ID, true).
		Update("is_active", false)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to close cart: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: invalid cart token", ErrValidation)
	}

	return items, nil
}

func (s *OrderService) GetByToken(ctx context.Context, token string) (*models.Order, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token required", ErrValidation)
	}

	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id")
	}).Where("token = ?", token).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// ListOrders is the staff listing, newest first by default.
func (s *OrderService) ListOrders(ctx context.Context, params OrderListParams) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		like := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(billing_email) LIKE ? OR LOWER(billing_name) LIKE ? OR token = ?", like, like, params.Search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "total", "status"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus lets staff move an order to any known status; no transition rules are enforced.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(order).Update("status", models.OrderStatus(req.Status)).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = models.OrderStatus(req.Status)
	return order, nil
}
