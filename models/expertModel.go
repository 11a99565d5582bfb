package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AvailabilityAvailable   = "available"
	AvailabilityBusy        = "busy"
	AvailabilityUnavailable = "unavailable"
)

// ExpertProfile is stored in the document store by default, so it carries
// bson tags next to the gorm ones and does not embed Base.
type ExpertProfile struct {
	ID                 string                      `json:"id" bson:"_id" gorm:"type:varchar(36);primaryKey"`
	UserID             string                      `json:"user_id" bson:"user_id" gorm:"type:varchar(36);index"`
	Name               string                      `json:"name" bson:"name"`
	Title              string                      `json:"title" bson:"title"`
	Specialization     string                      `json:"specialization" bson:"specialization" gorm:"size:100;index"`
	Bio                string                      `json:"bio" bson:"bio" gorm:"type:text"`
	Certifications     datatypes.JSONSlice[string] `json:"certifications" bson:"certifications"`
	ExperienceYears    int                         `json:"experience_years" bson:"experience_years"`
	ConsultationFee    float64                     `json:"consultation_fee" bson:"consultation_fee"`
	Location           string                      `json:"location" bson:"location"`
	Phone              string                      `json:"phone" bson:"phone"`
	Rating             float64                     `json:"rating" bson:"rating"`
	ReviewsCount       int                         `json:"reviews_count" bson:"reviews_count"`
	AvailabilityStatus string                      `json:"availability_status" bson:"availability_status" gorm:"size:20;not null;default:available"`
	IsVerified         bool                        `json:"is_verified" bson:"is_verified"`
	CreatedAt          time.Time                   `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at" bson:"updated_at"`
}

func (ExpertProfile) TableName() string { return "expert_profiles" }

func (e ExpertProfile) OwnerID() string { return e.UserID }
func (e ExpertProfile) SearchFields() []string {
	return []string{e.Name, e.Title, e.Specialization, e.Bio, e.Location}
}
func (e ExpertProfile) CategoryValue() string  { return e.Specialization }
func (e ExpertProfile) ConditionValue() string { return e.AvailabilityStatus }
func (e ExpertProfile) LocationValue() string  { return e.Location }
func (e ExpertProfile) PriceValue() float64    { return e.ConsultationFee }
func (e ExpertProfile) AreaValue() float64     { return 0 }
func (e ExpertProfile) RatingValue() float64   { return e.Rating }
func (e ExpertProfile) CreatedTime() time.Time { return e.CreatedAt }
