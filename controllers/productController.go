package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/Kariqs/maxtech-api/cache"
	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/Kariqs/maxtech-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

type imageInput struct {
	Url string `json:"url" binding:"required"`
	Alt string `json:"alt"`
}

// catalogInput is the body for creating or updating a product or accessory.
type catalogInput struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Brand         string          `json:"brand"`
	Compatibility string          `json:"compatibility"`
	Boxpack       string          `json:"boxpack"`
	ActualPrice   decimal.Decimal `json:"actualPrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Stock         int             `json:"stock" binding:"min=0"`
	Colors        datatypes.JSON  `json:"colors"`
	Categories    []string        `json:"categories" binding:"required,min=1,dive,required"`
	Images        []imageInput    `json:"images" binding:"dive"`
}

func (in catalogInput) validate() error {
	if !in.ActualPrice.IsPositive() || !in.SellingPrice.IsPositive() {
		return errors.New("actualPrice and sellingPrice must be positive")
	}
	return nil
}

func (in catalogInput) product() models.Product {
	p := models.Product{
		Name:         in.Name,
		Description:  in.Description,
		Brand:        in.Brand,
		Boxpack:      in.Boxpack,
		ActualPrice:  in.ActualPrice,
		SellingPrice: in.SellingPrice,
		Stock:        in.Stock,
		Colors:       in.Colors,
	}
	for _, img := range in.Images {
		p.Images = append(p.Images, models.ProductImage{Url: img.Url, Alt: orName(img.Alt, in.Name)})
	}
	return p
}

func orName(alt, name string) string {
	if alt == "" {
		return name
	}
	return alt
}

func invalidateProducts(ctx context.Context, ids ...uint) {
	keys := []string{cache.KeyProducts}
	for _, id := range ids {
		keys = append(keys, cache.ProductKey(id))
	}
	initializers.Catalog.Delete(ctx, keys...)
}

func createProduct(tx *gorm.DB, in catalogInput) (models.Product, error) {
	product := in.product()
	categories, err := resolveCategories(tx, in.Categories)
	if err != nil {
		return product, err
	}
	product.Categories = categories
	return product, tx.Create(&product).Error
}

// Product handlers
func CreateProduct(ctx *gin.Context) {
	var input catalogInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Name, actualPrice, sellingPrice and category are required", err)
		return
	}
	if err := input.validate(); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var product models.Product
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = createProduct(tx, input)
		return err
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	invalidateProducts(ctx.Request.Context())
	ctx.JSON(http.StatusCreated, gin.H{"message": "Product created", "data": product})
}

func CreateProducts(ctx *gin.Context) {
	var inputs []catalogInput
	if err := ctx.ShouldBindJSON(&inputs); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(inputs) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "Request body must be a non-empty array of products", nil)
		return
	}
	for i, in := range inputs {
		if err := in.validate(); err != nil {
			respondWithError(ctx, http.StatusBadRequest, fmt.Sprintf("Invalid product at index %d", i), err)
			return
		}
	}

	products := make([]models.Product, 0, len(inputs))
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			product, err := createProduct(tx, in)
			if err != nil {
				return err
			}
			products = append(products, product)
		}
		return nil
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create products", err)
		return
	}

	invalidateProducts(ctx.Request.Context())
	ctx.JSON(http.StatusCreated, gin.H{"message": "Products created", "count": len(products), "data": products})
}

// GetProducts serves the full list from cache. Paginated or filtered calls go
// to the database.
func GetProducts(ctx *gin.Context) {
	var products []models.Product
	category := ctx.Query("category")
	pageParam := ctx.Query("page")

	if category == "" && pageParam == "" {
		if initializers.Catalog.Get(ctx.Request.Context(), cache.KeyProducts, &products) {
			ctx.JSON(http.StatusOK, gin.H{"message": "success", "data": products})
			return
		}
	}

	base := initializers.DB.Model(&models.Product{})
	if category != "" {
		base = base.Where("id IN (?)", initializers.DB.Table("product_categories").
			Select("product_id").
			Joins("JOIN categories ON categories.id = product_categories.category_id").
			Where("LOWER(categories.name) = LOWER(?)", category))
	}
	base = base.Session(&gorm.Session{})

	query := base.Preload("Images").Preload("Categories").Order("id asc")
	response := gin.H{"message": "success"}
	if pageParam != "" {
		page, limit := pagination(ctx)

		var count int64
		if err := base.Count(&count).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
			return
		}
		query = query.Limit(limit).Offset((page - 1) * limit)
		response["metadata"] = gin.H{"total": count, "page": page, "limit": limit}
	}

	if err := query.Find(&products).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}
	if category == "" && pageParam == "" {
		initializers.Catalog.Set(ctx.Request.Context(), cache.KeyProducts, products)
	}

	response["data"] = products
	ctx.JSON(http.StatusOK, response)
}

func GetProduct(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var product models.Product
	if initializers.Catalog.Get(ctx.Request.Context(), cache.ProductKey(id), &product) {
		ctx.JSON(http.StatusOK, gin.H{"message": "success", "data": product})
		return
	}

	result := initializers.DB.Preload("Images").Preload("Categories").First(&product, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
		}
		return
	}

	initializers.Catalog.Set(ctx.Request.Context(), cache.ProductKey(id), product)
	ctx.JSON(http.StatusOK, gin.H{"message": "success", "data": product})
}

// UpdateProduct replaces the images and categories when they are sent.
func UpdateProduct(ctx *gin.Context) {
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

	var product models.Product
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}

		updated := input.product()
		if err := tx.Model(&product).Updates(map[string]any{
			"name":          updated.Name,
			"description":   updated.Description,
			"brand":         updated.Brand,
			"boxpack":       updated.Boxpack,
			"actual_price":  updated.ActualPrice,
			"selling_price": updated.SellingPrice,
			"stock":         updated.Stock,
			"colors":        updated.Colors,
		}).Error; err != nil {
			return err
		}

		categories, err := resolveCategories(tx, input.Categories)
		if err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Categories").Replace(categories); err != nil {
			return err
		}

		if input.Images != nil {
			if err := tx.Unscoped().Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			for i := range updated.Images {
				updated.Images[i].ProductID = id
			}
			if len(updated.Images) > 0 {
				if err := tx.Create(&updated.Images).Error; err != nil {
					return err
				}
			}
		}
		return tx.Preload("Images").Preload("Categories").First(&product, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	invalidateProducts(ctx.Request.Context(), id)
	ctx.JSON(http.StatusOK, gin.H{"message": "Product updated", "data": product})
}

func DeleteProduct(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var rows int64
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_categories WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Product{}, id)
		rows = result.RowsAffected
		return result.Error
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}
	if rows == 0 {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	invalidateProducts(ctx.Request.Context(), id)
	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func getUploader(ctx context.Context) (utils.Uploader, error) {
	if initializers.Uploader != nil {
		return initializers.Uploader, nil
	}
	return utils.NewS3Uploader(ctx, initializers.Cfg.AWSBucket)
}

// uploadImages pushes every file in the "images" form field to object storage
// and calls save with each resulting URL.
func uploadImages(ctx *gin.Context, prefix string, ownerID uint, save func(url string) error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	uploader, err := getUploader(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	var uploadedUrls []string
	var failedUploads []string

	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			slog.Error("Error opening upload", "file", file.Filename, "error", openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		key := fmt.Sprintf("%s/%d-%s-%s", prefix, ownerID, time.Now().Format("20060102150405"), path.Base(file.Filename))
		location, uploadErr := uploader.Upload(ctx.Request.Context(), key, f, file.Header.Get("Content-Type"))
		f.Close()

		if uploadErr != nil {
			slog.Error("Error uploading file", "file", file.Filename, "error", uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploadedUrls = append(uploadedUrls, location)
		if err := save(location); err != nil {
			slog.Error("Error saving image to database", "url", location, "error", err)
		}
	}

	response := gin.H{
		"message": "Files processed",
		"urls":    uploadedUrls,
	}
	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}
	ctx.JSON(http.StatusOK, response)
}

func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 12
	}
	return page, limit
}

func formID(ctx *gin.Context, field string) (uint, bool) {
	raw := ctx.PostForm(field)
	if raw == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing "+field, nil)
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid "+field, err)
		return 0, false
	}
	return uint(id), true
}

func UploadProductImages(ctx *gin.Context) {
	productID, ok := formID(ctx, "productId")
	if !ok {
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	uploadImages(ctx, "products", productID, func(url string) error {
		return initializers.DB.Create(&models.ProductImage{Url: url, Alt: product.Name, ProductID: productID}).Error
	})
	invalidateProducts(ctx.Request.Context(), productID)
}
