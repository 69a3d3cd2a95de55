package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Kariqs/maxtech-api/cache"
	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (in catalogInput) accessory() models.Accessory {
	a := models.Accessory{
		Name:          in.Name,
		Description:   in.Description,
		Brand:         in.Brand,
		Compatibility: in.Compatibility,
		Boxpack:       in.Boxpack,
		ActualPrice:   in.ActualPrice,
		SellingPrice:  in.SellingPrice,
		Stock:         in.Stock,
	}
	for _, img := range in.Images {
		a.Images = append(a.Images, models.AccessoryImage{Url: img.Url, Alt: orName(img.Alt, in.Name)})
	}
	return a
}

func invalidateAccessories(ctx context.Context, ids ...uint) {
	keys := []string{cache.KeyAccessories}
	for _, id := range ids {
		keys = append(keys, cache.AccessoryKey(id))
	}
	initializers.Catalog.Delete(ctx, keys...)
}

func CreateAccessory(ctx *gin.Context) {
	var input catalogInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Missing required fields: name, actualPrice, sellingPrice, categories", err)
		return
	}
	if err := input.validate(); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	accessory := input.accessory()
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		categories, err := resolveCategories(tx, input.Categories)
		if err != nil {
			return err
		}
		accessory.Categories = categories
		return tx.Create(&accessory).Error
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create accessory", err)
		return
	}

	invalidateAccessories(ctx.Request.Context())
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": accessory})
}

func GetAccessories(ctx *gin.Context) {
	var accessories []models.Accessory
	if initializers.Catalog.Get(ctx.Request.Context(), cache.KeyAccessories, &accessories) {
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": accessories})
		return
	}

	if err := initializers.DB.Preload("Images").Preload("Categories").Order("id asc").Find(&accessories).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch accessories", err)
		return
	}

	initializers.Catalog.Set(ctx.Request.Context(), cache.KeyAccessories, accessories)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": accessories})
}

func GetAccessory(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var accessory models.Accessory
	if initializers.Catalog.Get(ctx.Request.Context(), cache.AccessoryKey(id), &accessory) {
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": accessory})
		return
	}

	if err := initializers.DB.Preload("Images").Preload("Categories").First(&accessory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Accessory not found", nil)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch accessory", err)
		return
	}

	initializers.Catalog.Set(ctx.Request.Context(), cache.AccessoryKey(id), accessory)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": accessory})
}

func UpdateAccessory(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var input catalogInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := input.validate(); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var accessory models.Accessory
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&accessory, id).Error; err != nil {
			return err
		}

		updated := input.accessory()
		if err := tx.Model(&accessory).Updates(map[string]any{
			"name":          updated.Name,
			"description":   updated.Description,
			"brand":         updated.Brand,
			"compatibility": updated.Compatibility,
			"boxpack":       updated.Boxpack,
			"actual_price":  updated.ActualPrice,
			"selling_price": updated.SellingPrice,
			"stock":         updated.Stock,
		}).Error; err != nil {
			return err
		}

		categories, err := resolveCategories(tx, input.Categories)
		if err != nil {
			return err
		}
		if err := tx.Model(&accessory).Association("Categories").Replace(categories); err != nil {
			return err
		}

		if input.Images != nil {
			if err := tx.Unscoped().Where("accessory_id = ?", id).Delete(&models.AccessoryImage{}).Error; err != nil {
				return err
			}
			for i := range updated.Images {
				updated.Images[i].AccessoryID = id
			}
			if len(updated.Images) > 0 {
				if err := tx.Create(&updated.Images).Error; err != nil {
					return err
				}
			}
		}
		return tx.Preload("Images").Preload("Categories").First(&accessory, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Accessory not found", nil)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update accessory", err)
		return
	}

	invalidateAccessories(ctx.Request.Context(), id)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": accessory})
}

func DeleteAccessory(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var rows int64
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("accessory_id = ?", id).Delete(&models.AccessoryImage{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM accessory_categories WHERE accessory_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Accessory{}, id)
		rows = result.RowsAffected
		return result.Error
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete accessory", err)
		return
	}
	if rows == 0 {
		respondWithError(ctx, http.StatusNotFound, "Accessory not found", nil)
		return
	}

	invalidateAccessories(ctx.Request.Context(), id)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Accessory deleted successfully"})
}

func UploadAccessoryImages(ctx *gin.Context) {
	accessoryID, ok := formID(ctx, "accessoryId")
	if !ok {
		return
	}

	var accessory models.Accessory
	if err := initializers.DB.First(&accessory, accessoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Accessory not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate accessory", err)
		}
		return
	}

	uploadImages(ctx, "accessories", accessoryID, func(url string) error {
		return initializers.DB.Create(&models.AccessoryImage{Url: url, Alt: accessory.Name, AccessoryID: accessoryID}).Error
	})
	invalidateAccessories(ctx.Request.Context(), accessoryID)
}
