package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ItemTypeProduct   = "product"
	ItemTypeAccessory = "accessory"
	ItemTypePart      = "part"
)

// CartItem is one line of a user's cart. Exactly one of ProductID, AccessoryID
// and PartID is set; UnitPrice is the catalog price when the line was added.
type CartItem struct {
	gorm.Model
	UserID      uint            `json:"userId" gorm:"index"`
	ProductID   *uint           `json:"productId"`
	AccessoryID *uint           `json:"accessoryId"`
	PartID      *uint           `json:"partId"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" gorm:"type:decimal(12,2)"`
}

// Item returns the item type and id the line refers to.
func (c CartItem) Item() (string, uint) {
	switch {
	case c.ProductID != nil:
		return ItemTypeProduct, *c.ProductID
	case c.AccessoryID != nil:
		return ItemTypeAccessory, *c.AccessoryID
	case c.PartID != nil:
		return ItemTypePart, *c.PartID
	}
	return "", 0
}

type CartItemInput struct {
	ProductID   *uint `json:"productId"`
	AccessoryID *uint `json:"accessoryId"`
	PartID      *uint `json:"partId"`
	Quantity    int   `json:"quantity" binding:"required,min=1"`
}
