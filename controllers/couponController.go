package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/Kariqs/maxtech-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type couponInput struct {
	Code              string              `json:"code" binding:"required"`
	DiscountType      string              `json:"discountType" binding:"required,oneof=PERCENTAGE FLAT"`
	DiscountValue     decimal.Decimal     `json:"discountValue"`
	MinPurchaseAmount decimal.Decimal     `json:"minPurchaseAmount"`
	MaxDiscountAmount decimal.NullDecimal `json:"maxDiscountAmount"`
	ExpiryDate        time.Time           `json:"expiryDate" binding:"required"`
	IsActive          *bool               `json:"isActive"`
}

func CreateCoupon(ctx *gin.Context) {
	var input couponInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid coupon", err)
		return
	}
	if !input.DiscountValue.IsPositive() {
		sendErrorResponse(ctx, http.StatusBadRequest, "discountValue must be positive")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	var existing int64
	initializers.DB.Model(&models.Coupon{}).Where("code = ?", code).Count(&existing)
	if existing > 0 {
		sendErrorResponse(ctx, http.StatusConflict, "Coupon code already exists")
		return
	}

	coupon := models.Coupon{
		Code:              code,
		DiscountType:      input.DiscountType,
		DiscountValue:     input.DiscountValue,
		MinPurchaseAmount: input.MinPurchaseAmount,
		MaxDiscountAmount: input.MaxDiscountAmount,
		ExpiryDate:        input.ExpiryDate,
		IsActive:          input.IsActive == nil || *input.IsActive,
	}
	if err := initializers.DB.Create(&coupon).Error; err != nil {
		slog.Error("Error creating coupon", "code", code, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create coupon")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"success": true, "message": "Coupon created successfully", "data": coupon})
}

func GetCoupons(ctx *gin.Context) {
	var coupons []models.Coupon
	if err := initializers.DB.Order("created_at desc").Find(&coupons).Error; err != nil {
		slog.Error("Error fetching coupons", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch coupons")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": coupons})
}

func DeleteCoupon(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	result := initializers.DB.Unscoped().Delete(&models.Coupon{}, id)
	if result.Error != nil {
		slog.Error("Error deleting coupon", "id", id, "error", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete coupon")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Coupon not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Coupon deleted successfully"})
}

func ApplyCoupon(ctx *gin.Context) {
	var body struct {
		Code        string          `json:"code" binding:"required"`
		TotalAmount decimal.Decimal `json:"totalAmount"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid coupon")
		return
	}

	coupon, err := services.FindCoupon(ctx.Request.Context(), initializers.DB, body.Code)
	if err != nil {
		sendServiceError(ctx, err, "Failed to apply coupon")
		return
	}
	quote, err := services.ApplyCoupon(coupon, body.TotalAmount, time.Now())
	if err != nil {
		sendServiceError(ctx, err, "Failed to apply coupon")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":     true,
		"code":        quote.Code,
		"discount":    quote.Discount.StringFixed(2),
		"finalAmount": quote.FinalAmount.StringFixed(2),
	})
}
