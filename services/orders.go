package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Kariqs/maxtech-api/models"
	"github.com/Kariqs/maxtech-api/payments"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Gateway is the part of the payment provider the order flow depends on.
type Gateway interface {
	CreateOrder(ctx context.Context, req payments.CreateOrderRequest) (*payments.GatewayOrder, error)
	GetOrder(ctx context.Context, orderID string) (*payments.GatewayOrder, error)
}

type OrderService struct {
	DB      *gorm.DB
	Gateway Gateway

	WebhookSecret string
	// SkipWebhookVerify disables signature checks. Only honoured for sandbox.
	SkipWebhookVerify bool
	Currency          string
	ReturnURL         string

	// OnChange is called after an order is created or its status changes.
	OnChange func(models.Order)
	// NewExternalID generates gateway order ids; defaults to "order_<uuid>".
	NewExternalID func() string
}

type CreateOrderInput struct {
	UserID         uint
	Amount         decimal.Decimal
	DeliveryMethod string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
}

type CreateOrderResult struct {
	OrderID          uint   `json:"orderId"`
	ExternalOrderID  string `json:"externalOrderId"`
	PaymentSessionID string `json:"paymentSessionId"`
}

// CreateOrder records a pending order and payment, then opens a hosted payment
// session. The local rows are committed before the gateway is called and are
// left PENDING when the gateway fails.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	if strings.TrimSpace(in.DeliveryMethod) == "" {
		return nil, newError(ErrValidation, "deliveryMethod is required")
	}
	if !in.Amount.IsPositive() {
		return nil, newError(ErrValidation, "Invalid or missing total amount.")
	}

	externalID := s.newExternalID()
	order := models.Order{
		UserID:         in.UserID,
		TotalAmount:    in.Amount,
		Status:         models.OrderStatusPending,
		DeliveryMethod: in.DeliveryMethod,
		CustomerName:   in.CustomerName,
		CustomerEmail:  in.CustomerEmail,
		CustomerPhone:  in.CustomerPhone,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		payment := models.Payment{
			OrderID:        order.ID,
			GatewayOrderID: externalID,
			Amount:         in.Amount,
			Currency:       s.currency(),
			Status:         models.PaymentStatusPending,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.notify(order)

	gwOrder, err := s.Gateway.CreateOrder(ctx, payments.CreateOrderRequest{
		OrderID:       externalID,
		OrderAmount:   payments.Amount(in.Amount),
		OrderCurrency: s.currency(),
		CustomerDetails: payments.CustomerDetails{
			CustomerID:    fmt.Sprintf("cust_%d", in.UserID),
			CustomerName:  orDefault(in.CustomerName, "Guest"),
			CustomerEmail: orDefault(in.CustomerEmail, "guest@example.com"),
			CustomerPhone: orDefault(in.CustomerPhone, "9999999999"),
		},
		OrderMeta: s.orderMeta(),
	})
	if err != nil {
		slog.Error("Gateway order creation failed", "orderId", order.ID, "externalOrderId", externalID, "error", err)
		return nil, wrapError(ErrGateway, "Payment session creation failed", err)
	}
	if gwOrder.PaymentSessionID == "" {
		slog.Error("Gateway returned no payment session", "orderId", order.ID, "externalOrderId", externalID)
		return nil, newError(ErrGateway, "Payment session creation failed")
	}

	return &CreateOrderResult{
		OrderID:          order.ID,
		ExternalOrderID:  externalID,
		PaymentSessionID: gwOrder.PaymentSessionID,
	}, nil
}

// HandleWebhook verifies and applies a gateway callback. Updates are keyed on
// the gateway order id, so replaying an event rewrites the same rows.
func (s *OrderService) HandleWebhook(ctx context.Context, signature string, rawBody []byte) error {
	if s.SkipWebhookVerify {
		slog.Warn("Webhook signature verification skipped")
	} else if !payments.VerifySignature(signature, rawBody, s.WebhookSecret) {
		return newError(ErrAuth, "Signature verification failed")
	}

	event, err := payments.ParseEvent(rawBody)
	if err != nil {
		return wrapError(ErrValidation, "Invalid webhook payload", err)
	}
	externalID := event.Data.Order.OrderID
	if externalID == "" {
		return newError(ErrValidation, "Webhook payload has no order id")
	}

	switch event.Kind() {
	case payments.EventPaymentSuccess:
		updates := map[string]any{
			"status":           models.PaymentStatusSuccess,
			"raw_webhook_data": datatypes.JSON(rawBody),
		}
		if id := event.Data.Payment.PaymentID; id != "" {
			updates["gateway_payment_id"] = id
		}
		if amount := event.Data.Payment.OrderAmount; amount.IsPositive() {
			updates["amount"] = amount
		}
		if currency := event.Data.Payment.OrderCurrency; currency != "" {
			updates["currency"] = currency
		}
		if method := event.Method(); method != "" {
			updates["payment_method"] = method
		}
		return s.applyOutcome(ctx, externalID, updates, models.OrderStatusPaid)
	case payments.EventPaymentFailed:
		return s.applyOutcome(ctx, externalID, map[string]any{
			"status":           models.PaymentStatusFailed,
			"raw_webhook_data": datatypes.JSON(rawBody),
		}, models.OrderStatusFailed)
	case payments.EventPaymentDropped:
		return s.applyOutcome(ctx, externalID, map[string]any{
			"status":           models.PaymentStatusFailed,
			"raw_webhook_data": datatypes.JSON(rawBody),
		}, models.OrderStatusCancelled)
	}

	slog.Info("Ignoring webhook event", "type", event.Type, "externalOrderId", externalID)
	return nil
}

// applyOutcome moves the payment for externalID to updates["status"] and, when
// that changed something, advances the order from PENDING or PROCESSING to
// orderStatus. Replayed events leave both records and the feed untouched.
func (s *OrderService) applyOutcome(ctx context.Context, externalID string, updates map[string]any, orderStatus models.OrderStatus) error {
	var (
		order   models.Order
		changed bool
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Where("gateway_order_id = ?", externalID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(ErrNotFound, "Payment not found")
			}
			return err
		}

		result := tx.Model(&models.Payment{}).
			Where("gateway_order_id = ? AND status <> ?", externalID, updates["status"]).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		result = tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", payment.OrderID, []models.OrderStatus{models.OrderStatusPending, models.OrderStatusProcessing}).
			Update("status", orderStatus)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		changed = true
		return tx.First(&order, payment.OrderID).Error
	})
	if err != nil {
		return err
	}
	if changed {
		s.notify(order)
	}
	return nil
}

// OwnerOf returns the id of the user who placed the order paid for by externalID.
func (s *OrderService) OwnerOf(ctx context.Context, externalID string) (uint, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Joins("JOIN payments ON payments.order_id = orders.id AND payments.deleted_at IS NULL").
		Where("payments.gateway_order_id = ?", externalID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, newError(ErrNotFound, "Payment not found")
	}
	if err != nil {
		return 0, err
	}
	return order.UserID, nil
}

type StatusResult struct {
	Status        string               `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	Data          any                  `json:"data"`
}

// CheckStatus polls the gateway for externalID and reconciles the local
// payment: PAID and ACTIVE count as SUCCESS, FAILED as FAILED, anything else
// leaves the record alone.
func (s *OrderService) CheckStatus(ctx context.Context, externalID string) (*StatusResult, error) {
	var payment models.Payment
	if err := s.DB.WithContext(ctx).Where("gateway_order_id = ?", externalID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "Payment not found")
		}
		return nil, err
	}

	gwOrder, err := s.Gateway.GetOrder(ctx, externalID)
	if err != nil {
		return nil, wrapError(ErrGateway, "Could not verify payment status", err)
	}

	status := payment.Status
	switch strings.ToUpper(gwOrder.OrderStatus) {
	case "PAID", "ACTIVE":
		status = models.PaymentStatusSuccess
	case "FAILED":
		status = models.PaymentStatusFailed
	}

	if status != payment.Status {
		orderStatus := models.OrderStatusPaid
		if status == models.PaymentStatusFailed {
			orderStatus = models.OrderStatusFailed
		}
		if err := s.reconcile(ctx, externalID, status, orderStatus); err != nil {
			return nil, err
		}
	}

	return &StatusResult{
		Status:        gwOrder.OrderStatus,
		PaymentStatus: status,
		Data:          gwOrder.Raw,
	}, nil
}

func (s *OrderService) reconcile(ctx context.Context, externalID string, status models.PaymentStatus, orderStatus models.OrderStatus) error {
	return s.applyOutcome(ctx, externalID, map[string]any{"status": status}, orderStatus)
}

// ReconcilePending polls every payment still PENDING after olderThan and
// returns how many of them changed state.
func (s *OrderService) ReconcilePending(ctx context.Context, olderThan time.Duration) (int, error) {
	var pending []models.Payment
	cutoff := time.Now().Add(-olderThan)
	if err := s.DB.WithContext(ctx).
		Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Order("created_at asc").
		Find(&pending).Error; err != nil {
		return 0, fmt.Errorf("list pending payments: %w", err)
	}

	reconciled := 0
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return reconciled, err
		}
		result, err := s.CheckStatus(ctx, p.GatewayOrderID)
		if err != nil {
			slog.Warn("Reconciliation failed", "externalOrderId", p.GatewayOrderID, "error", err)
			continue
		}
		if result.PaymentStatus != models.PaymentStatusPending {
			reconciled++
		}
	}
	return reconciled, nil
}

func (s *OrderService) newExternalID() string {
	if s.NewExternalID != nil {
		return s.NewExternalID()
	}
	return "order_" + uuid.NewString()
}

func (s *OrderService) currency() string {
	if s.Currency == "" {
		return "INR"
	}
	return s.Currency
}

func (s *OrderService) orderMeta() *payments.OrderMeta {
	if s.ReturnURL == "" {
		return nil
	}
	return &payments.OrderMeta{ReturnURL: s.ReturnURL}
}

func (s *OrderService) notify(order models.Order) {
	if s.OnChange != nil && order.ID != 0 {
		s.OnChange(order)
	}
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
