package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(cartItemInputRule, models.CartItemInput{})
	}
}

// cartItemInputRule requires exactly one of productId, accessoryId and partId.
func cartItemInputRule(sl validator.StructLevel) {
	in := sl.Current().Interface().(models.CartItemInput)
	set := 0
	for _, id := range []*uint{in.ProductID, in.AccessoryID, in.PartID} {
		if id != nil && *id > 0 {
			set++
		}
	}
	if set != 1 {
		sl.ReportError(in.ProductID, "ProductID", "productId", "exactlyone", "")
	}
}

// dropZeroIDs clears ids sent as 0 so only the referenced item remains set.
func dropZeroIDs(in *models.CartItemInput) {
	for _, id := range []**uint{&in.ProductID, &in.AccessoryID, &in.PartID} {
		if *id != nil && **id == 0 {
			*id = nil
		}
	}
}

type cartQuantity struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// catalogEntry looks up the name and selling price of the item a cart line refers to.
func catalogEntry(in models.CartItemInput) (string, decimal.Decimal, error) {
	switch {
	case in.ProductID != nil:
		var p models.Product
		err := initializers.DB.Select("id", "name", "selling_price").First(&p, *in.ProductID).Error
		return p.Name, p.SellingPrice, err
	case in.AccessoryID != nil:
		var a models.Accessory
		err := initializers.DB.Select("id", "name", "selling_price").First(&a, *in.AccessoryID).Error
		return a.Name, a.SellingPrice, err
	default:
		var p models.Part
		err := initializers.DB.Select("id", "name", "price").First(&p, *in.PartID).Error
		return p.Name, p.Price, err
	}
}

func sameItem(query *gorm.DB, in models.CartItemInput) *gorm.DB {
	switch {
	case in.ProductID != nil:
		return query.Where("product_id = ?", *in.ProductID)
	case in.AccessoryID != nil:
		return query.Where("accessory_id = ?", *in.AccessoryID)
	default:
		return query.Where("part_id = ?", *in.PartID)
	}
}

func AddToCart(ctx *gin.Context) {
	var input models.CartItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Provide exactly one of productId, accessoryId or partId and a quantity of at least 1", err)
		return
	}
	dropZeroIDs(&input)
	user := currentUser(ctx)

	name, price, err := catalogEntry(input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Item not found")
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch item", err)
		return
	}

	var existing models.CartItem
	err = sameItem(initializers.DB.Where("user_id = ?", user.UserID), input).First(&existing).Error
	if err == nil {
		existing.Quantity += input.Quantity
		if err := initializers.DB.Model(&existing).Update("quantity", existing.Quantity).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to update cart item quantity.", err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item quantity updated", "item": existing})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch cart item", err)
		return
	}

	item := models.CartItem{
		UserID:      user.UserID,
		ProductID:   input.ProductID,
		AccessoryID: input.AccessoryID,
		PartID:      input.PartID,
		Name:        name,
		Quantity:    input.Quantity,
		UnitPrice:   price,
	}
	if err := initializers.DB.Create(&item).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create cart item", err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": name + " added to cart", "item": item})
}

func GetCart(ctx *gin.Context) {
	user := currentUser(ctx)

	var items []models.CartItem
	if err := initializers.DB.Where("user_id = ?", user.UserID).Order("created_at").Find(&items).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch cart", err)
		return
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"items": items, "total": total})
}

func UpdateCartItem(ctx *gin.Context) {
	id, ok := paramID(ctx, "cartItemId")
	if !ok {
		return
	}
	var input cartQuantity
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	result := initializers.DB.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, currentUser(ctx).UserID).
		Update("quantity", input.Quantity)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update cart item", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item updated", "id": id, "quantity": input.Quantity})
}

func DeleteCartItem(ctx *gin.Context) {
	id, ok := paramID(ctx, "cartItemId")
	if !ok {
		return
	}

	result := initializers.DB.Unscoped().
		Where("id = ? AND user_id = ?", id, currentUser(ctx).UserID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to delete cart item", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func ClearCart(ctx *gin.Context) {
	user := currentUser(ctx)
	result := initializers.DB.Unscoped().Where("user_id = ?", user.UserID).Delete(&models.CartItem{})
	if result.Error != nil {
		slog.Error("Error clearing cart", "user", user.UserID, "error", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to clear cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared", "removed": result.RowsAffected})
}
