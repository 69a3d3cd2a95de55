package controllers

import (
	"net/http"
	"strings"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func matching(term string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(term) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern, pattern)
	}
}

// Search looks for q in the name, brand and description of products and accessories.
func Search(ctx *gin.Context) {
	term := strings.TrimSpace(ctx.Query("q"))
	if term == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Search query is required")
		return
	}

	var products []models.Product
	if err := initializers.DB.Scopes(matching(term)).Preload("Images").Preload("Categories").Find(&products).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	var accessories []models.Accessory
	if err := initializers.DB.Scopes(matching(term)).Preload("Images").Preload("Categories").Find(&accessories).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products, "accessories": accessories})
}
