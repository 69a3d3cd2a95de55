package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Kariqs/maxtech-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CouponQuote struct {
	Code        string          `json:"code"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
}

// FindCoupon looks up an active coupon by code, ignoring case.
func FindCoupon(ctx context.Context, db *gorm.DB, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := db.WithContext(ctx).
		Where("code = ? AND is_active = ?", strings.ToUpper(strings.TrimSpace(code)), true).
		First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrValidation, "Invalid coupon")
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// ApplyCoupon prices total with coupon as of now.
func ApplyCoupon(coupon *models.Coupon, total decimal.Decimal, now time.Time) (*CouponQuote, error) {
	if coupon == nil || !coupon.IsActive {
		return nil, newError(ErrValidation, "Invalid coupon")
	}
	if !coupon.ExpiryDate.IsZero() && now.After(coupon.ExpiryDate) {
		return nil, newError(ErrValidation, "Coupon expired")
	}
	if total.LessThan(coupon.MinPurchaseAmount) {
		return nil, newError(ErrValidation, "Minimum purchase of ₹"+coupon.MinPurchaseAmount.StringFixed(2)+" required")
	}

	var discount decimal.Decimal
	switch coupon.DiscountType {
	case models.DiscountPercentage:
		discount = total.Mul(coupon.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
		if coupon.MaxDiscountAmount.Valid && discount.GreaterThan(coupon.MaxDiscountAmount.Decimal) {
			discount = coupon.MaxDiscountAmount.Decimal
		}
	case models.DiscountFlat:
		discount = coupon.DiscountValue
	default:
		return nil, newError(ErrValidation, "Invalid coupon")
	}

	final := total.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return &CouponQuote{Code: coupon.Code, Discount: discount, FinalAmount: final}, nil
}
