// internal/services/payment_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/javajoker/petpalooza-backend/internal/config"
	"github.com/javajoker/petpalooza-backend/internal/models"
)

type PaymentService struct {
	db     *gorm.DB
	config *config.Config
}

type OrderPaymentIntentRequest struct {
	Token string `json:"token" validate:"required"`
}

type ConfirmPaymentRequest struct {
	Token           string `json:"token" validate:"required"`
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret   string `json:"client_secret"`
	PaymentID      string `json:"payment_id"`
	Status         string `json:"status"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	PublishableKey string `json:"publishable_key,omitempty"`
}

type PaymentStatusResponse struct {
	Token  string     `json:"token"`
	Status string     `json:"status"`
	Paid   bool       `json:"paid"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

var hundred = decimal.NewFromInt(100)

func NewPaymentService(db *gorm.DB, config *config.Config) *PaymentService {
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
	}
}

func (s *PaymentService) Enabled() bool {
	return s.config.Payment.StripeSecretKey != ""
}

// AmountInMinorUnits converts a decimal amount to the integer minor units Stripe expects.
func AmountInMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// CreateOrderPaymentIntent opens a Stripe PaymentIntent for the full order total
// and remembers its id on the order.
func (s *PaymentService) CreateOrderPaymentIntent(ctx context.Context, req *OrderPaymentIntentRequest) (*PaymentIntentResponse, error) {
	if !s.Enabled() {
		return nil, ErrPaymentsDisabled
	}

	order, err := s.payableOrder(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if order.PaidAt != nil {
		return nil, fmt.Errorf("%w: order already paid", ErrConflict)
	}

	currency := strings.ToLower(s.config.Payment.Currency)
	amount := AmountInMinorUnits(order.Total)
	if amount <= 0 {
		return nil, fmt.Errorf("%w: order total must be positive", ErrValidation)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	params.AddMetadata("order_id", strconv.FormatUint(uint64(order.ID), 10))
	params.AddMetadata("order_token", order.Token)
	if order.BillingEmail != "" {
		params.ReceiptEmail = stripe.String(order.BillingEmail)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(order).Update("payment_reference", pi.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to store payment reference: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"intent_id": pi.ID,
		"amount":    amount,
	}).Info("Payment intent created")

	return &PaymentIntentResponse{
		ClientSecret:   pi.ClientSecret,
		PaymentID:      pi.ID,
		Status:         string(pi.Status),
		Amount:         amount,
		Currency:       currency,
		PublishableKey: s.config.Payment.StripePublishableKey,
	}, nil
}

// ConfirmOrderPayment looks the intent up at Stripe and marks the order paid when it succeeded.
// Order status is left for staff to move.
func (s *PaymentService) ConfirmOrderPayment(ctx context.Context, req *ConfirmPaymentRequest) (*PaymentStatusResponse, error) {
	if !s.Enabled() {
		return nil, ErrPaymentsDisabled
	}

	if strings.TrimSpace(req.PaymentIntentID) == "" {
		return nil, fmt.Errorf("%w: payment_intent_id required", ErrValidation)
	}

	order, err := s.payableOrder(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if order.PaymentReference != "" && order.PaymentReference != req.PaymentIntentID {
		return nil, fmt.Errorf("%w: payment intent does not belong to this order", ErrValidation)
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(req.PaymentIntentID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	resp := &PaymentStatusResponse{
		Token:  order.Token,
		Status: string(pi.Status),
		PaidAt: order.PaidAt,
	}

	if pi.Status == stripe.PaymentIntentStatusSucceeded && order.PaidAt == nil {
		now := time.Now()
		if err := s.db.WithContext(ctx).Model(order).Updates(map[string]interface{}{
			"paid_at":           now,
			"payment_reference": pi.ID,
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
		resp.PaidAt = &now
		logrus.WithField("order_id", order.ID).Info("Order paid")
	}
	resp.Paid = resp.PaidAt != nil

	return resp, nil
}

func (s *PaymentService) payableOrder(ctx context.Context, token string) (*models.Order, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token required", ErrValidation)
	}

	var order models.Order
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order.PaymentMethod != models.PaymentMethodOnline {
		return nil, fmt.Errorf("%w: order is not paid online", ErrValidation)
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: order is cancelled", ErrValidation)
	}
	return &order, nil
}
