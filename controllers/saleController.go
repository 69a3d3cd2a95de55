package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/Kariqs/maxtech-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func CreateSale(ctx *gin.Context) {
	var body struct {
		Title         string          `json:"title" binding:"required"`
		Description   string          `json:"description"`
		DiscountType  string          `json:"discountType" binding:"required,oneof=PERCENTAGE FLAT"`
		DiscountValue decimal.Decimal `json:"discountValue"`
		StartDate     string          `json:"startDate" binding:"required"`
		EndDate       string          `json:"endDate" binding:"required"`
		StartTime     string          `json:"startTime"`
		EndTime       string          `json:"endTime"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || !body.DiscountValue.IsPositive() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing required fields")
		return
	}

	start, end, err := services.BuildSaleWindow(body.StartDate, body.EndDate, body.StartTime, body.EndTime)
	if err != nil {
		sendServiceError(ctx, err, "Invalid date or time format")
		return
	}

	sale := models.Sale{
		Title:         body.Title,
		Description:   body.Description,
		DiscountType:  body.DiscountType,
		DiscountValue: body.DiscountValue,
		StartDate:     start,
		EndDate:       end,
		IsActive:      true,
	}
	if err := initializers.DB.Create(&sale).Error; err != nil {
		slog.Error("Error creating sale", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create sale")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"success": true, "sale": sale})
}

func GetActiveSale(ctx *gin.Context) {
	sale, err := services.ActiveSale(ctx.Request.Context(), initializers.DB, time.Now())
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			sendJSONResponse(ctx, http.StatusOK, gin.H{"success": false, "message": "No active sale"})
			return
		}
		sendServiceError(ctx, err, "Failed to fetch active sale")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "activeSale": sale})
}

func GetSales(ctx *gin.Context) {
	var sales []models.Sale
	if err := initializers.DB.Order("created_at desc").Find(&sales).Error; err != nil {
		slog.Error("Error fetching sales", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch sales")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": sales})
}

func DeleteSale(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	result := initializers.DB.Delete(&models.Sale{}, id)
	if result.Error != nil {
		slog.Error("Error deleting sale", "id", id, "error", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete sale")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Sale not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Sale deleted successfully"})
}
