package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	Alt       string `json:"alt"`
	ProductID uint   `json:"productId"`
}

type Product struct {
	gorm.Model
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Brand        string          `json:"brand"`
	Boxpack      string          `json:"boxpack"`
	ActualPrice  decimal.Decimal `json:"actualPrice" gorm:"type:decimal(12,2)"`
	SellingPrice decimal.Decimal `json:"sellingPrice" gorm:"type:decimal(12,2)"`
	Stock        int             `json:"stock"`
	Colors       datatypes.JSON  `json:"colors"`
	Categories   []Category      `json:"categories" gorm:"many2many:product_categories"`
	Images       []ProductImage  `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type AccessoryImage struct {
	gorm.Model
	Url         string `json:"url" binding:"required"`
	Alt         string `json:"alt"`
	AccessoryID uint   `json:"accessoryId"`
}

type Accessory struct {
	gorm.Model
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Brand         string           `json:"brand"`
	Compatibility string           `json:"compatibility"`
	Boxpack       string           `json:"boxpack"`
	ActualPrice   decimal.Decimal  `json:"actualPrice" gorm:"type:decimal(12,2)"`
	SellingPrice  decimal.Decimal  `json:"sellingPrice" gorm:"type:decimal(12,2)"`
	Stock         int              `json:"stock"`
	Categories    []Category       `json:"categories" gorm:"many2many:accessory_categories"`
	Images        []AccessoryImage `json:"images" gorm:"foreignKey:AccessoryID;constraint:OnDelete:CASCADE"`
}

type PartImage struct {
	gorm.Model
	Url    string `json:"url" binding:"required"`
	Alt    string `json:"alt"`
	PartID uint   `json:"partId"`
}

// Part is a component sold for custom builds. UserID records the super admin who listed it.
type Part struct {
	gorm.Model
	Name        string          `json:"name"`
	Category    string          `json:"category" gorm:"size:191;index"`
	Subcategory string          `json:"subcategory"`
	Brand       string          `json:"brand" gorm:"size:191;index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	Stock       int             `json:"stock"`
	UserID      uint            `json:"userId"`
	Images      []PartImage     `json:"images" gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE"`
}
