package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFlat       = "FLAT"
)

type Coupon struct {
	gorm.Model
	Code              string              `json:"code" gorm:"size:64;uniqueIndex"`
	DiscountType      string              `json:"discountType" gorm:"size:32"`
	DiscountValue     decimal.Decimal     `json:"discountValue" gorm:"type:decimal(12,2)"`
	MinPurchaseAmount decimal.Decimal     `json:"minPurchaseAmount" gorm:"type:decimal(12,2)"`
	MaxDiscountAmount decimal.NullDecimal `json:"maxDiscountAmount" gorm:"type:decimal(12,2)"`
	ExpiryDate        time.Time           `json:"expiryDate"`
	IsActive          bool                `json:"isActive"`
}

type Sale struct {
	gorm.Model
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	DiscountType  string          `json:"discountType" gorm:"size:32"`
	DiscountValue decimal.Decimal `json:"discountValue" gorm:"type:decimal(12,2)"`
	StartDate     time.Time       `json:"startDate" gorm:"index"`
	EndDate       time.Time       `json:"endDate" gorm:"index"`
	IsActive      bool            `json:"isActive"`
}
