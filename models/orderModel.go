package models

const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"

	PaymentStatusPending = "PENDING"
	PaymentStatusUnpaid  = "UNPAID"
)

type Order struct {
	Base
	UserID            string      `json:"user_id" gorm:"type:varchar(36);index"`
	FirstName         string      `json:"first_name" binding:"required"`
	LastName          string      `json:"last_name" binding:"required"`
	Email             string      `json:"email" binding:"required,email"`
	Phone             string      `json:"phone" binding:"required"`
	DeliveryLocation  string      `json:"delivery_location" binding:"required"`
	Total             float64     `json:"total"`
	Status            string      `json:"status" gorm:"size:30;index"`
	PesapalTrackingID string      `json:"pesapal_tracking_id" gorm:"size:100;index"`
	PaymentStatus     string      `json:"payment_status" gorm:"size:50"`
	OrderItems        []OrderItem `json:"order_items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" binding:"required,min=1,dive"`
}

type OrderItem struct {
	Base
	OrderID  string  `json:"order_id" gorm:"type:varchar(36);index"`
	ItemID   string  `json:"item_id" gorm:"type:varchar(36)" binding:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
}
