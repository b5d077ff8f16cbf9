// internal/services/order_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/petpalooza-backend/internal/models"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db           *gorm.DB
	cartService  *CartService
	orderService *OrderService
	kibble       *models.Product
	leash        *models.Product
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.cartService = NewCartService(suite.db)
	suite.orderService = NewOrderService(suite.db, NewNotificationService(testConfig()))
	suite.kibble = createProduct(suite.T(), suite.db, models.PetTypeDog, "Puppy Kibble", "19.99")
	suite.leash = createProduct(suite.T(), suite.db, models.PetTypeDog, "Rope Leash", "5.25")
}

func (suite *OrderServiceTestSuite) fillCart() *models.Cart {
	ctx := context.Background()
	cart, err := suite.cartService.AddItem(ctx, "", nil, &AddToCartRequest{ProductID: uintPtr(suite.kibble.ID), Quantity: intPtr(2)})
	require.NoError(suite.T(), err)
	cart, err = suite.cartService.AddItem(ctx, cart.Token, nil, &AddToCartRequest{ProductID: uintPtr(suite.leash.ID), Quantity: intPtr(1)})
	require.NoError(suite.T(), err)
	return cart
}

func (suite *OrderServiceTestSuite) TestCheckoutFromCart() {
	cart := suite.fillCart()

	order, err := suite.orderService.CreateOrder(context.Background(), nil, &CreateOrderRequest{
		CartToken:    cart.Token,
		BillingName:  "Asha",
		BillingEmail: "asha@example.com",
		Shipping:     "40",
	})
	require.NoError(suite.T(), err)

	assert.NotEmpty(suite.T(), order.Token)
	assert.Equal(suite.T(), models.OrderStatusPending, order.Status)
	assert.Equal(suite.T(), models.PaymentMethodOnline, order.PaymentMethod)
	require.Len(suite.T(), order.Items, 2)
	assert.Equal(suite.T(), "Puppy Kibble", order.Items[0].ProductTitle)
	assert.Equal(suite.T(), "45.23", order.Subtotal.StringFixed(2))
	assert.Equal(suite.T(), "40.00", order.Shipping.StringFixed(2))
	assert.Equal(suite.T(), "85.23", order.Total.StringFixed(2))

	var closed models.Cart
	require.NoError(suite.T(), suite.db.First(&closed, cart.ID).Error)
	assert.False(suite.T(), closed.IsActive)
}

func (suite *OrderServiceTestSuite) TestCartCannotBeCheckedOutTwice() {
	cart := suite.fillCart()
	ctx := context.Background()

	_, err := suite.orderService.CreateOrder(ctx, nil, &CreateOrderRequest{CartToken: cart.Token})
	require.NoError(suite.T(), err)

	_, err = suite.orderService.CreateOrder(ctx, nil, &CreateOrderRequest{CartToken: cart.Token})
	assert.ErrorIs(suite.T(), err, ErrValidation)

	var orders int64
	require.NoError(suite.T(), suite.db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(suite.T(), int64(1), orders)
}

func (suite *OrderServiceTestSuite) TestClosedCartIsReplacedOnNextVisit() {
	cart := suite.fillCart()
	ctx := context.Background()

	_, err := suite.orderService.CreateOrder(ctx, nil, &CreateOrderRequest{CartToken: cart.Token})
	require.NoError(suite.T(), err)

	fresh, err := suite.cartService.ResolveCart(ctx, cart.Token, nil)
	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), cart.ID, fresh.ID)
	assert.Empty(suite.T(), fresh.Items)
}

func (suite *OrderServiceTestSuite) TestBuyNowComputesExactTotal() {
	order, err := suite.orderService.CreateOrder(context.Background(), nil, &CreateOrderRequest{
		BuyNow: map[string]interface{}{"product_id": float64(suite.kibble.ID), "quantity": float64(3)},
	})
	require.NoError(suite.T(), err)

	require.Len(suite.T(), order.Items, 1)
	assert.Equal(suite.T(), 3, order.Items[0].Quantity)
	assert.True(suite.T(), decimal.RequireFromString("59.97").Equal(order.Subtotal))
	assert.True(suite.T(), decimal.RequireFromString("59.97").Equal(order.Total))
}

func (suite *OrderServiceTestSuite) TestBuyNowTakesPrecedenceOverCart() {
	cart := suite.fillCart()

	order, err := suite.orderService.CreateOrder(context.Background(), nil, &CreateOrderRequest{
		CartToken: cart.Token,
		BuyNow:    map[string]interface{}{"product_id": float64(suite.leash.ID)},
	})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), order.Items, 1)
	assert.Equal(suite.T(), suite.leash.ID, order.Items[0].ProductID)

	var open models.Cart
	require.NoError(suite.T(), suite.db.First(&open, cart.ID).Error)
	assert.True(suite.T(), open.IsActive)
}

func (suite *OrderServiceTestSuite) TestBuyNowRejectsBadInput() {
	ctx := context.Background()

	_, err := suite.orderService.CreateOrder(ctx, nil, &CreateOrderRequest{
		BuyNow: map[string]interface{}{"product_id": "abc"},
	})
	assert.ErrorIs(suite.T(), err, ErrValidation)

	_, err = suite.orderService.CreateOrder(ctx, nil, &CreateOrderRequest{
		BuyNow: map[string]interface{}{"product_id": float64(suite.kibble.ID), "quantity": float64(0)},
	})
	assert.ErrorIs(suite.T(), err, ErrValidation)

	_, err = suite.orderService.CreateOrder(ctx, nil, &CreateOrderRequest{
		BuyNow: map[string]interface{}{"product_id": float64(0)},
	})
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	_, err = suite.orderService.CreateOrder(ctx, nil, &CreateOrderRequest{
		BuyNow: map[string]interface{}{"product_id": float64(424242)},
	})
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestCreateOrderRequiresSource() {
	_, err := suite.orderService.CreateOrder(context.Background(), nil, &CreateOrderRequest{BillingName: "Nobody"})
	assert.ErrorIs(suite.T(), err, ErrValidation)

	_, err = suite.orderService.CreateOrder(context.Background(), nil, &CreateOrderRequest{CartToken: "unknown"})
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

func (suite *OrderServiceTestSuite) TestEmptyCartCheckoutChargesShippingOnly() {
	cart, err := suite.cartService.ResolveCart(context.Background(), "", nil)
	require.NoError(suite.T(), err)

	order, err := suite.orderService.CreateOrder(context.Background(), nil, &CreateOrderRequest{
		CartToken: cart.Token,
		Shipping:  float64(50),
	})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), order.Items)
	assert.Equal(suite.T(), "50.00", order.Total.StringFixed(2))
}

func (suite *OrderServiceTestSuite) TestMalformedShippingCountsAsZero() {
	order, err := suite.orderService.CreateOrder(context.Background(), nil, &CreateOrderRequest{
		BuyNow:   map[string]interface{}{"product_id": float64(suite.leash.ID)},
		Shipping: "free",
	})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), order.Shipping.IsZero())
	assert.Equal(suite.T(), "5.25", order.Total.StringFixed(2))
}

func (suite *OrderServiceTestSuite) TestShippingRoundedToCents() {
	ctx := context.Background()
	order, err := suite.orderService.CreateOrder(ctx, nil, &CreateOrderRequest{
		BuyNow:   map[string]interface{}{"product_id": float64(suite.kibble.ID), "quantity": float64(3)},
		Shipping: "1.005",
	})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.RequireFromString("1.01").Equal(order.Shipping))
	assert.True(suite.T(), decimal.RequireFromString("60.98").Equal(order.Total))

	loaded, err := suite.orderService.GetByToken(ctx, order.Token)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), order.Total.Equal(loaded.Total))
	assert.True(suite.T(), order.Shipping.Equal(loaded.Shipping))
}

func (suite *OrderServiceTestSuite) TestBillingEmailStoredVerbatim() {
	order, err := suite.orderService.CreateOrder(context.Background(), nil, &CreateOrderRequest{
		BuyNow:       map[string]interface{}{"product_id": float64(suite.leash.ID)},
		BillingEmail: "not-an-email",
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "not-an-email", order.BillingEmail)
}

func (suite *OrderServiceTestSuite) TestSnapshotSurvivesPriceChange() {
	ctx := context.Background()
	order, err := suite.orderService.CreateOrder(ctx, nil, &CreateOrderRequest{
		BuyNow: map[string]interface{}{"product_id": float64(suite.kibble.ID), "quantity": float64(2)},
	})
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.db.Model(suite.kibble).Updates(map[string]interface{}{
		"price": decimal.RequireFromString("99.00"),
		"title": "Renamed Kibble",
	}).Error)

	loaded, err := suite.orderService.GetByToken(ctx, order.Token)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), loaded.Items, 1)
	assert.Equal(suite.T(), "19.99", loaded.Items[0].Price.StringFixed(2))
	assert.Equal(suite.T(), "Puppy Kibble", loaded.Items[0].ProductTitle)
	assert.Equal(suite.T(), "39.98", loaded.Total.StringFixed(2))
}

func (suite *OrderServiceTestSuite) TestGetByToken() {
	ctx := context.Background()

	_, err := suite.orderService.GetByToken(ctx, "  ")
	assert.ErrorIs(suite.T(), err, ErrValidation)

	_, err = suite.orderService.GetByToken(ctx, "missing")
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus() {
	ctx := context.Background()
	order, err := suite.orderService.CreateOrder(ctx, nil, &CreateOrderRequest{
		BuyNow: map[string]interface{}{"product_id": float64(suite.leash.ID)},
	})
	require.NoError(suite.T(), err)

	updated, err := suite.orderService.UpdateStatus(ctx, order.ID, &UpdateOrderStatusRequest{Status: "completed"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusCompleted, updated.Status)

	// Staff may move an order back; there is no transition graph.
	updated, err = suite.orderService.UpdateStatus(ctx, order.ID, &UpdateOrderStatusRequest{Status: "pending"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusPending, updated.Status)

	_, err = suite.orderService.UpdateStatus(ctx, order.ID, &UpdateOrderStatusRequest{Status: "shipped"})
	assert.ErrorIs(suite.T(), err, ErrValidation)

	_, err = suite.orderService.UpdateStatus(ctx, 9999, &UpdateOrderStatusRequest{Status: "completed"})
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestListOrdersFiltersByStatus() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := suite.orderService.CreateOrder(ctx, nil, &CreateOrderRequest{
			BuyNow: map[string]interface{}{"product_id": float64(suite.leash.ID)},
		})
		require.NoError(suite.T(), err)
	}
	var first models.Order
	require.NoError(suite.T(), suite.db.Order("id").First(&first).Error)
	_, err := suite.orderService.UpdateStatus(ctx, first.ID, &UpdateOrderStatusRequest{Status: "cancelled"})
	require.NoError(suite.T(), err)

	params := utils.PaginationParams{Page: 1, Limit: 10, Sort: "created_at", Order: "desc"}

	all, total, err := suite.orderService.ListOrders(ctx, OrderListParams{PaginationParams: params})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), total)
	assert.Len(suite.T(), all, 3)

	cancelled, total, err := suite.orderService.ListOrders(ctx, OrderListParams{PaginationParams: params, Status: "cancelled"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	require.Len(suite.T(), cancelled, 1)
	assert.Equal(suite.T(), first.ID, cancelled[0].ID)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
