package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusFailed     OrderStatus = "FAILED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusFailed, OrderStatusCancelled:
		return true
	}
	return false
}

const (
	DeliveryHome   = "homeDelivery"
	DeliveryPickup = "storePickup"
)

type Order struct {
	gorm.Model
	UserID          uint            `json:"userId" gorm:"index"`
	User            *User           `json:"user,omitempty"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2)"`
	DiscountAmount  decimal.Decimal `json:"discountAmount" gorm:"type:decimal(12,2)"`
	CouponCode      string          `json:"couponCode"`
	Status          OrderStatus     `json:"status" gorm:"size:32;index"`
	DeliveryMethod  string          `json:"deliveryMethod"`
	Store           string          `json:"store"`
	PickupDate      *time.Time      `json:"pickupDate"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone"`
	ShippingAddress string          `json:"shippingAddress"`
	Notes           string          `json:"notes"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments        []Payment       `json:"payments,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	gorm.Model
	OrderID     uint            `json:"orderId" gorm:"index"`
	ProductID   *uint           `json:"productId"`
	Product     *Product        `json:"product,omitempty"`
	AccessoryID *uint           `json:"accessoryId"`
	Accessory   *Accessory      `json:"accessory,omitempty"`
	PartID      *uint           `json:"partId"`
	Part        *Part           `json:"part,omitempty"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
}

// LineTotal is price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
