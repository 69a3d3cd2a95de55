package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type partInput struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Subcategory string          `json:"subcategory"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" binding:"min=0"`
	Images      []imageInput    `json:"images" binding:"dive"`
}

func (in partInput) part(userID uint) models.Part {
	p := models.Part{
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Subcategory: in.Subcategory,
		Brand:       in.Brand,
		Price:       in.Price,
		Stock:       in.Stock,
		UserID:      userID,
	}
	for _, img := range in.Images {
		p.Images = append(p.Images, models.PartImage{Url: img.Url, Alt: orName(img.Alt, in.Name)})
	}
	return p
}

func CreatePart(ctx *gin.Context) {
	var input partInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Name, category and price are required", err)
		return
	}
	if !input.Price.IsPositive() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Price must be positive")
		return
	}

	part := input.part(currentUser(ctx).UserID)
	if err := initializers.DB.Create(&part).Error; err != nil {
		slog.Error("Error creating part", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	ctx.JSON(http.StatusCreated, part)
}

func CreateParts(ctx *gin.Context) {
	var body struct {
		Parts []partInput `json:"parts" binding:"required,min=1,dive"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Parts array is required", err)
		return
	}

	userID := currentUser(ctx).UserID
	parts := make([]models.Part, 0, len(body.Parts))
	for _, in := range body.Parts {
		if !in.Price.IsPositive() {
			sendErrorResponse(ctx, http.StatusBadRequest, "Price must be positive for "+in.Name)
			return
		}
		parts = append(parts, in.part(userID))
	}

	if err := initializers.DB.Create(&parts).Error; err != nil {
		slog.Error("Error creating parts", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"success": true, "message": "Parts added successfully", "count": len(parts)})
}

func GetParts(ctx *gin.Context) {
	query := initializers.DB.Preload("Images").Order("created_at desc")
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if brand := ctx.Query("brand"); brand != "" {
		query = query.Where("brand = ?", brand)
	}

	var parts []models.Part
	if err := query.Find(&parts).Error; err != nil {
		slog.Error("Error fetching parts", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, parts)
}

func GetPart(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var part models.Part
	if err := initializers.DB.Preload("Images").First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Part not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, part)
}

// SearchParts finds a part by exact name, ignoring case.
func SearchParts(ctx *gin.Context) {
	name := strings.TrimSpace(ctx.Query("name"))
	if name == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Part name is required")
		return
	}

	var part models.Part
	if err := initializers.DB.Preload("Images").Where("LOWER(name) = LOWER(?)", name).First(&part).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Part not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	ctx.JSON(http.StatusOK, part)
}

func UpdatePart(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var input partInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var part models.Part
	if err := initializers.DB.First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Part not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	updates := map[string]any{
		"name":        strings.TrimSpace(input.Name),
		"category":    strings.TrimSpace(input.Category),
		"subcategory": input.Subcategory,
		"brand":       input.Brand,
		"stock":       input.Stock,
	}
	if input.Price.IsPositive() {
		updates["price"] = input.Price
	}
	if err := initializers.DB.Model(&part).Updates(updates).Error; err != nil {
		slog.Error("Error updating part", "id", id, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, part)
}

func DeletePart(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var rows int64
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("part_id = ?", id).Delete(&models.PartImage{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Part{}, id)
		rows = result.RowsAffected
		return result.Error
	})
	if err != nil {
		slog.Error("Error deleting part", "id", id, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if rows == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Part not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Part deleted successfully"})
}
