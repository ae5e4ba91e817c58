package models

import "gorm.io/gorm"

// Category groups courses in the catalog
type Category struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsDeleted   bool   `gorm:"default:false" json:"isDeleted"`
}
