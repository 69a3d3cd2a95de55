package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment mirrors one hosted payment session at the gateway. GatewayOrderID is
// the id we generate and send to the gateway; webhooks and polls look it up.
type Payment struct {
	gorm.Model
	OrderID          uint            `json:"orderId" gorm:"index"`
	GatewayOrderID   string          `json:"gatewayOrderId" gorm:"size:191;uniqueIndex"`
	GatewayPaymentID string          `json:"gatewayPaymentId"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(12,2)"`
	Currency         string          `json:"currency" gorm:"size:8"`
	PaymentMethod    string          `json:"paymentMethod"`
	Status           PaymentStatus   `json:"status" gorm:"size:32;index"`
	RawWebhookData   datatypes.JSON  `json:"rawWebhookData,omitempty"`
}
