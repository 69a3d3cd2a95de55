package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// resolveCategories returns the categories with the given names, creating the
// missing ones.
func resolveCategories(tx *gorm.DB, names []string) ([]models.Category, error) {
	names = uniqueNames(names)
	if len(names) == 0 {
		return nil, nil
	}

	rows := make([]models.Category, len(names))
	for i, n := range names {
		rows[i] = models.Category{Name: n}
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return nil, err
	}

	var categories []models.Category
	err := tx.Where("name IN ?", names).Find(&categories).Error
	return categories, err
}

// invalidateCategory drops every cached product and accessory listing that
// embeds category id. Call it before the join rows are removed.
func invalidateCategory(ctx context.Context, id uint) {
	var productIDs, accessoryIDs []uint
	initializers.DB.Table("product_categories").Where("category_id = ?", id).Pluck("product_id", &productIDs)
	initializers.DB.Table("accessory_categories").Where("category_id = ?", id).Pluck("accessory_id", &accessoryIDs)
	invalidateProducts(ctx, productIDs...)
	invalidateAccessories(ctx, accessoryIDs...)
}

func CreateCategories(ctx *gin.Context) {
	var body struct {
		Categories []string `json:"categories" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Categories array is required")
		return
	}

	names := uniqueNames(body.Categories)
	var existing []models.Category
	if err := initializers.DB.Where("name IN ?", names).Find(&existing).Error; err != nil {
		slog.Error("Error fetching categories", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create categories")
		return
	}

	skipped := make([]string, 0, len(existing))
	taken := make(map[string]bool, len(existing))
	for _, c := range existing {
		skipped = append(skipped, c.Name)
		taken[c.Name] = true
	}

	var fresh []models.Category
	for _, n := range names {
		if !taken[n] {
			fresh = append(fresh, models.Category{Name: n})
		}
	}
	if len(fresh) == 0 {
		sendErrorResponse(ctx, http.StatusConflict, "All categories already exist")
		return
	}

	if err := initializers.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
		slog.Error("Error creating categories", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create categories")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":      "Categories created successfully",
		"createdCount": len(fresh),
		"skipped":      skipped,
	})
}

func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if err := initializers.DB.Order("name asc").Find(&categories).Error; err != nil {
		slog.Error("Error fetching categories", "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

func GetCategory(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := initializers.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Category not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	ctx.JSON(http.StatusOK, category)
}

func UpdateCategory(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Category name is required")
		return
	}
	name := strings.TrimSpace(body.Name)

	var category models.Category
	if err := initializers.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Category not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update category")
		return
	}

	var duplicates int64
	initializers.DB.Model(&models.Category{}).Where("name = ? AND id <> ?", name, id).Count(&duplicates)
	if duplicates > 0 {
		sendErrorResponse(ctx, http.StatusConflict, "Category name already exists")
		return
	}

	if err := initializers.DB.Model(&category).Update("name", name).Error; err != nil {
		slog.Error("Error updating category", "id", id, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update category")
		return
	}
	invalidateCategory(ctx.Request.Context(), id)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category updated successfully", "category": category})
}

// DeleteCategory removes the row outright so the name can be reused.
func DeleteCategory(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	invalidateCategory(ctx.Request.Context(), id)

	var rows int64
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM accessory_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&models.Category{}, id)
		rows = result.RowsAffected
		return result.Error
	})
	if err != nil {
		slog.Error("Error deleting category", "id", id, "error", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if rows == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Category not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
