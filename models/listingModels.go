package models

import (
	"time"

	"gorm.io/datatypes"
)

// ListingBase holds the columns every marketplace listing table shares.
type ListingBase struct {
	Base
	UserID      string                      `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Title       string                      `json:"title" gorm:"size:200;not null"`
	Description string                      `json:"description" gorm:"type:text"`
	Price       float64                     `json:"price" gorm:"index"`
	Currency    string                      `json:"currency" gorm:"size:8;not null;default:USD"`
	Location    string                      `json:"location"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	IsAvailable bool                        `json:"is_available" gorm:"not null;default:true"`
	IsFeatured  bool                        `json:"is_featured" gorm:"not null;default:false"`
	ViewCount   int                         `json:"view_count" gorm:"not null;default:0"`
}

func (l ListingBase) OwnerID() string        { return l.UserID }
func (l ListingBase) SearchFields() []string { return []string{l.Title, l.Description, l.Location} }
func (l ListingBase) LocationValue() string  { return l.Location }
func (l ListingBase) PriceValue() float64    { return l.Price }
func (l ListingBase) AreaValue() float64     { return 0 }
func (l ListingBase) RatingValue() float64   { return 0 }
func (l ListingBase) ConditionValue() string { return "" }
func (l ListingBase) CreatedTime() time.Time { return l.CreatedAt }

type Equipment struct {
	ListingBase
	Category  string `json:"category" gorm:"size:100;index"`
	Condition string `json:"condition" gorm:"size:20"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Year      int    `json:"year"`
}

func (Equipment) TableName() string { return "equipment" }

func (e Equipment) CategoryValue() string  { return e.Category }
func (e Equipment) ConditionValue() string { return e.Condition }

type AnimalListing struct {
	ListingBase
	AnimalType   string `json:"animal_type" gorm:"size:100;index"`
	Breed        string `json:"breed"`
	AgeMonths    int    `json:"age_months"`
	Quantity     int    `json:"quantity" gorm:"not null;default:1"`
	HealthStatus string `json:"health_status"`
}

func (AnimalListing) TableName() string { return "animals" }

func (a AnimalListing) CategoryValue() string { return a.AnimalType }

type LandListing struct {
	ListingBase
	LandType    string  `json:"land_type" gorm:"size:100;index"`
	AreaSize    float64 `json:"area_size" gorm:"index"`
	AreaUnit    string  `json:"area_unit" gorm:"size:20;not null;default:hectare"`
	WaterSource string  `json:"water_source"`
	SoilType    string  `json:"soil_type"`
}

func (LandListing) TableName() string { return "land" }

func (l LandListing) CategoryValue() string { return l.LandType }
func (l LandListing) AreaValue() float64    { return l.AreaSize }

type NurseryListing struct {
	ListingBase
	PlantType string `json:"plant_type" gorm:"size:100;index"`
	Variety   string `json:"variety"`
	Stock     int    `json:"stock"`
	MinOrder  int    `json:"min_order" gorm:"not null;default:1"`
}

func (NurseryListing) TableName() string { return "nurseries" }

func (n NurseryListing) CategoryValue() string { return n.PlantType }

// ListingPatch is the partial update accepted for any listing type.
type ListingPatch struct {
	Title       *string  `json:"title" binding:"omitempty,min=3"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Location    *string  `json:"location"`
	IsAvailable *bool    `json:"is_available"`
	IsFeatured  *bool    `json:"is_featured"`
}

func (p ListingPatch) Updates(allowFeature bool) map[string]any {
	updates := map[string]any{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.IsAvailable != nil {
		updates["is_available"] = *p.IsAvailable
	}
	if p.IsFeatured != nil && allowFeature {
		updates["is_featured"] = *p.IsFeatured
	}
	return updates
}
