package models

type CartItem struct {
	Base
	CartID   string  `json:"cart_id" gorm:"type:varchar(36);index"`
	ItemID   string  `json:"item_id" gorm:"type:varchar(36)" binding:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	ImageURL string  `json:"image_url"`
}

type Cart struct {
	Base
	UserID string     `json:"user_id" gorm:"type:varchar(36);uniqueIndex"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}
