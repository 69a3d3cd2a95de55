package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type reviewInput struct {
	ProductID   uint   `json:"productId"`
	AccessoryID uint   `json:"accessoryId"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Comment     string `json:"comment"`
	Reviewer    string `json:"reviewer"`
}

type reviewUpdate struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

func (u reviewUpdate) changes() map[string]any {
	changes := map[string]any{}
	if u.Rating != nil {
		changes["rating"] = *u.Rating
	}
	if u.Comment != nil {
		changes["comment"] = *u.Comment
	}
	return changes
}

func GetReviews(ctx *gin.Context) {
	query := initializers.DB.Order("created_at desc")
	if raw := ctx.Query("productId"); raw != "" {
		productID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid productId")
			return
		}
		query = query.Where("product_id = ?", productID)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		slog.Error("Error fetching reviews", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	ctx.JSON(http.StatusOK, reviews)
}

func GetReview(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var review models.Review
	if err := initializers.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Review not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch review")
		return
	}
	ctx.JSON(http.StatusOK, review)
}

func CreateReview(ctx *gin.Context) {
	var input reviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil || input.ProductID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "productId and a rating between 1 and 5 are required")
		return
	}

	var product models.Product
	if err := initializers.DB.Select("id").First(&product, input.ProductID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	reviewer := strings.TrimSpace(input.Reviewer)
	if reviewer == "" {
		reviewer = "Anonymous"
	}
	review := models.Review{ProductID: input.ProductID, Rating: input.Rating, Comment: input.Comment, Reviewer: reviewer}
	if err := initializers.DB.Create(&review).Error; err != nil {
		slog.Error("Error creating review", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create review")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Review created successfully", "review": review})
}

func UpdateReview(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var input reviewUpdate
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	var review models.Review
	if err := initializers.DB.First(&review, id).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Review not found")
		return
	}
	if err := initializers.DB.Model(&review).Updates(input.changes()).Error; err != nil {
		slog.Error("Error updating review", "id", id, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update review")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Review updated successfully", "review": review})
}

func DeleteReview(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	result := initializers.DB.Delete(&models.Review{}, id)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Review not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// GetAccessoryReviews requires an accessoryId filter.
func GetAccessoryReviews(ctx *gin.Context) {
	accessoryID, err := strconv.ParseUint(ctx.Query("accessoryId"), 10, 64)
	if err != nil || accessoryID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "accessoryId query parameter is required")
		return
	}

	var reviews []models.AccessoryReview
	if err := initializers.DB.Where("accessory_id = ?", accessoryID).Order("created_at desc").Find(&reviews).Error; err != nil {
		slog.Error("Error fetching accessory reviews", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch accessory reviews")
		return
	}
	ctx.JSON(http.StatusOK, reviews)
}

func GetAccessoryReview(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var review models.AccessoryReview
	if err := initializers.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Accessory review not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch accessory review")
		return
	}
	ctx.JSON(http.StatusOK, review)
}

// CreateAccessoryReview names the reviewer after the signed-in user.
func CreateAccessoryReview(ctx *gin.Context) {
	var input reviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil || input.AccessoryID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "accessoryId and rating are required")
		return
	}

	var accessory models.Accessory
	if err := initializers.DB.Select("id").First(&accessory, input.AccessoryID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Accessory not found")
		return
	}

	claims := currentUser(ctx)
	reviewer := claims.Name
	if reviewer == "" {
		reviewer = claims.Email
	}
	if reviewer == "" {
		reviewer = "Anonymous"
	}

	userID := claims.UserID
	review := models.AccessoryReview{
		AccessoryID: input.AccessoryID,
		UserID:      &userID,
		Rating:      input.Rating,
		Comment:     input.Comment,
		Reviewer:    reviewer,
	}
	if err := initializers.DB.Create(&review).Error; err != nil {
		slog.Error("Error creating accessory review", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create accessory review")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Accessory review created successfully", "review": review})
}

func UpdateAccessoryReview(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var input reviewUpdate
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	var review models.AccessoryReview
	if err := initializers.DB.First(&review, id).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Accessory review not found")
		return
	}
	if err := initializers.DB.Model(&review).Updates(input.changes()).Error; err != nil {
		slog.Error("Error updating accessory review", "id", id, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update accessory review")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Accessory review updated successfully", "review": review})
}

func DeleteAccessoryReview(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	result := initializers.DB.Delete(&models.AccessoryReview{}, id)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete accessory review")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Accessory review not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Accessory review deleted successfully"})
}
