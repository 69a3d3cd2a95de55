package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	ProductID uint   `json:"productId" gorm:"index"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Reviewer  string `json:"reviewer"`
}

type AccessoryReview struct {
	gorm.Model
	AccessoryID uint   `json:"accessoryId" gorm:"index"`
	UserID      *uint  `json:"userId"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	Reviewer    string `json:"reviewer"`
}

type CustomBuild struct {
	gorm.Model
	UserID     uint           `json:"userId" gorm:"index"`
	BuildName  string         `json:"buildName"`
	Components datatypes.JSON `json:"components"`
}
