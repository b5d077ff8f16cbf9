// internal/tests/storefront_test.go
package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/petpalooza-backend/internal/models"
)

type cartBody struct {
	Token     string          `json:"token"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"item_count"`
	Items     []struct {
		ID            uint            `json:"id"`
		Quantity      int             `json:"quantity"`
		PriceSnapshot decimal.Decimal `json:"price_snapshot"`
		Product       struct {
			ID    uint   `json:"id"`
			Image string `json:"image"`
		} `json:"product"`
	} `json:"items"`
}

type orderBody struct {
	Token    string          `json:"token"`
	Status   string          `json:"status"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	Items    []struct {
		ProductTitle string          `json:"product_title"`
		ProductImage string          `json:"product_image"`
		Price        decimal.Decimal `json:"price"`
		Quantity     int             `json:"quantity"`
	} `json:"items"`
}

type StorefrontTestSuite struct {
	suite.Suite
	server *testServer
	kibble *models.Product
	leash  *models.Product
}

func (suite *StorefrontTestSuite) SetupTest() {
	suite.server = newTestServer(suite.T())
	suite.kibble = suite.server.createProduct("Puppy Kibble", "19.99")
	suite.leash = suite.server.createProduct("Rope Leash", "5.25")
}

func (suite *StorefrontTestSuite) addToCart(token string, productID uint, quantity int) cartBody {
	var header []string
	if token != "" {
		header = []string{"X-Cart-Token", token}
	}
	w, env := suite.server.do(http.MethodPost, "/api/cart/add/", map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	}, header...)
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(suite.T(), w.Header().Get("X-Cart-Token"))

	var cart cartBody
	decode(suite.T(), env.Data, &cart)
	return cart
}

func (suite *StorefrontTestSuite) TestHealth() {
	w, _ := suite.server.do(http.MethodGet, "/health", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"healthy"`)
	assert.NotEmpty(suite.T(), w.Header().Get("X-Request-ID"))
}

func (suite *StorefrontTestSuite) TestCartFlow() {
	cart := suite.addToCart("", suite.kibble.ID, 2)
	require.Len(suite.T(), cart.Items, 1)
	assert.True(suite.T(), dec(suite.T(), "39.98").Equal(cart.Subtotal))
	assert.Equal(suite.T(), "http://example.com/media/products/puppy-kibble.jpg", cart.Items[0].Product.Image)

	cart = suite.addToCart(cart.Token, suite.leash.ID, 1)
	require.Len(suite.T(), cart.Items, 2)
	assert.Equal(suite.T(), 3, cart.ItemCount)

	// The query parameter works when the header is absent.
	w, env := suite.server.do(http.MethodGet, "/api/cart/?token="+cart.Token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var fetched cartBody
	decode(suite.T(), env.Data, &fetched)
	assert.Equal(suite.T(), cart.Token, fetched.Token)

	itemID := cart.Items[0].ID
	w, env = suite.server.do(http.MethodPatch, fmt.Sprintf("/api/cart/%d/", itemID), map[string]interface{}{"quantity": 5})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	decode(suite.T(), env.Data, &fetched)
	for _, item := range fetched.Items {
		if item.ID == itemID {
			assert.Equal(suite.T(), 5, item.Quantity)
		}
	}

	w, _ = suite.server.do(http.MethodGet, fmt.Sprintf("/api/cart/%d/", itemID), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w, env = suite.server.do(http.MethodDelete, fmt.Sprintf("/api/cart/%d/", itemID), nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	decode(suite.T(), env.Data, &fetched)
	assert.Len(suite.T(), fetched.Items, 1)

	w, env = suite.server.do(http.MethodPost, "/api/cart/clear/", nil, "X-Cart-Token", cart.Token)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	decode(suite.T(), env.Data, &fetched)
	assert.Empty(suite.T(), fetched.Items)
	assert.Equal(suite.T(), cart.Token, fetched.Token)
}

func (suite *StorefrontTestSuite) TestCartErrors() {
	w, env := suite.server.do(http.MethodPost, "/api/cart/add/", map[string]interface{}{"product_id": 9999})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	require.NotNil(suite.T(), env.Error)
	assert.Equal(suite.T(), "Product not found", env.Error.Message)

	w, _ = suite.server.do(http.MethodPost, "/api/cart/add/", map[string]interface{}{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w, _ = suite.server.do(http.MethodGet, "/api/cart/abc/", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w, _ = suite.server.do(http.MethodPatch, "/api/cart/9999/", map[string]interface{}{"quantity": 2})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *StorefrontTestSuite) TestCheckoutFromCart() {
	cart := suite.addToCart("", suite.kibble.ID, 2)
	suite.addToCart(cart.Token, suite.leash.ID, 1)

	w, env := suite.server.do(http.MethodPost, "/api/orders/create/", map[string]interface{}{
		"cart_token":    cart.Token,
		"billing_name":  "Asha",
		"billing_email": "asha@example.com",
		"shipping":      "40",
	})
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	var order orderBody
	decode(suite.T(), env.Data, &order)
	assert.Equal(suite.T(), "pending", order.Status)
	assert.True(suite.T(), dec(suite.T(), "45.23").Equal(order.Subtotal))
	assert.True(suite.T(), dec(suite.T(), "85.23").Equal(order.Total))
	require.Len(suite.T(), order.Items, 2)
	assert.Equal(suite.T(), "http://example.com/media/products/puppy-kibble.jpg", order.Items[0].ProductImage)

	w, env = suite.server.do(http.MethodGet, "/api/orders/by-token/?token="+order.Token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var loaded orderBody
	decode(suite.T(), env.Data, &loaded)
	assert.Equal(suite.T(), order.Token, loaded.Token)
	assert.True(suite.T(), order.Total.Equal(loaded.Total))

	// The cart is closed, so a second checkout fails.
	w, _ = suite.server.do(http.MethodPost, "/api/orders/create/", map[string]interface{}{"cart_token": cart.Token})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *StorefrontTestSuite) TestBuyNow() {
	w, env := suite.server.do(http.MethodPost, "/api/orders/create/", map[string]interface{}{
		"buy_now": map[string]interface{}{"product_id": suite.kibble.ID, "quantity": 3},
	})
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())
	var order orderBody
	decode(suite.T(), env.Data, &order)
	assert.True(suite.T(), dec(suite.T(), "59.97").Equal(order.Total))

	w, _ = suite.server.do(http.MethodPost, "/api/orders/create/", map[string]interface{}{
		"buy_now": map[string]interface{}{"product_id": 424242},
	})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w, _ = suite.server.do(http.MethodPost, "/api/orders/create/", map[string]interface{}{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *StorefrontTestSuite) TestOrderLookupErrors() {
	w, env := suite.server.do(http.MethodGet, "/api/orders/by-token/", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	require.NotNil(suite.T(), env.Error)
	assert.Equal(suite.T(), "token required", env.Error.Message)

	w, _ = suite.server.do(http.MethodGet, "/api/orders/by-token/?token=missing", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *StorefrontTestSuite) TestPaymentsDisabled() {
	w, env := suite.server.do(http.MethodPost, "/api/orders/payment-intent/", map[string]interface{}{"token": "abc"})
	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
	require.NotNil(suite.T(), env.Error)
	assert.Equal(suite.T(), "SERVICE_UNAVAILABLE", env.Error.Code)
}

func (suite *StorefrontTestSuite) TestCatalogEndpoints() {
	w, env := suite.server.do(http.MethodGet, "/api/pet-page/?pet_type=dog&page=7", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var page struct {
		Products   []struct{ Title string } `json:"products"`
		Pagination struct {
			Page       int   `json:"page"`
			TotalItems int64 `json:"total_items"`
		} `json:"pagination"`
	}
	decode(suite.T(), env.Data, &page)
	assert.Equal(suite.T(), 1, page.Pagination.Page)
	assert.Equal(suite.T(), int64(2), page.Pagination.TotalItems)
	assert.Len(suite.T(), page.Products, 2)

	w, env = suite.server.do(http.MethodPost, fmt.Sprintf("/api/pet-product/%d/reviews/", suite.leash.ID), map[string]interface{}{
		"name": "Ravi", "email": "ravi@example.com", "rating": 4, "review": "Strong",
	})
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	w, env = suite.server.do(http.MethodGet, fmt.Sprintf("/api/pet-product/%d/", suite.leash.ID), nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var detail struct {
		Rating          int                     `json:"rating"`
		QuantityDisplay string                  `json:"quantity_display"`
		Reviews         []struct{ Name string } `json:"reviews"`
		RelatedProducts []struct{ ID uint }     `json:"related_products"`
	}
	decode(suite.T(), env.Data, &detail)
	assert.Equal(suite.T(), 4, detail.Rating)
	assert.Len(suite.T(), detail.Reviews, 1)
	assert.NotNil(suite.T(), detail.RelatedProducts)
	assert.Equal(suite.T(), "1.00 pcs", detail.QuantityDisplay)

	w, _ = suite.server.do(http.MethodGet, "/api/pet-product/9999/", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *StorefrontTestSuite) TestContentEndpoints() {
	w, env := suite.server.do(http.MethodGet, "/api/site-settings/", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{}`, string(env.Data))

	w, _ = suite.server.do(http.MethodGet, "/api/petservices/", nil)
	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	w, env = suite.server.do(http.MethodGet, "/api/consult-page/", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Empty(suite.T(), env.Data)

	require.NoError(suite.T(), suite.server.db.Create(&models.VetDoctor{Name: "Dr. Rao", Photo: "vets/rao.jpg"}).Error)
	w, env = suite.server.do(http.MethodGet, "/api/vet-doctors/", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var vets []struct {
		Name  string `json:"name"`
		Photo string `json:"photo"`
	}
	decode(suite.T(), env.Data, &vets)
	require.Len(suite.T(), vets, 1)
	assert.Equal(suite.T(), "http://example.com/media/vets/rao.jpg", vets[0].Photo)

	w, _ = suite.server.do(http.MethodGet, "/api/vet-doctors/9999/", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w, _ = suite.server.do(http.MethodPost, "/api/contact/messages/", map[string]interface{}{
		"name": "Kavya", "email": "kavya@example.com", "message": "Hello",
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w, _ = suite.server.do(http.MethodGet, "/api/contact/messages/list/", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func TestStorefrontTestSuite(t *testing.T) {
	suite.Run(t, new(StorefrontTestSuite))
}
