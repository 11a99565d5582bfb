package models

import "gorm.io/datatypes"

type MarketplaceItem struct {
	Base
	UserID          string                      `json:"user_id" gorm:"type:varchar(36);index"`
	Name            string                      `json:"name" gorm:"size:200;not null" binding:"required"`
	Description     string                      `json:"description" gorm:"type:text"`
	Category        string                      `json:"category" gorm:"size:100;index" binding:"required"`
	Price           float64                     `json:"price" gorm:"index" binding:"gte=0"`
	Unit            string                      `json:"unit" gorm:"size:30"`
	Location        string                      `json:"location"`
	Images          datatypes.JSONSlice[string] `json:"images"`
	ContactPhone    string                      `json:"contact_phone"`
	ContactWhatsapp string                      `json:"contact_whatsapp"`
	ContactEmail    string                      `json:"contact_email" binding:"omitempty,email"`
	Stock           int                         `json:"stock" binding:"gte=0"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
}
