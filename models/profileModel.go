package models

const (
	UserTypeFarmer = "farmer"
	UserTypeBuyer  = "buyer"
	UserTypeAdmin  = "admin"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Profile struct {
	Base
	Email        string `json:"email" gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string `json:"-"`
	FullName     string `json:"full_name"`
	UserType     string `json:"user_type" gorm:"size:20;not null;default:farmer"`
	Role         string `json:"role" gorm:"size:20;not null;default:user"`
	IsAdmin      bool   `json:"is_admin" gorm:"not null;default:false"`
	IsVerified   bool   `json:"is_verified" gorm:"not null;default:false"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
}

func (p *Profile) HasAdminAccess() bool {
	return p.IsAdmin || p.Role == RoleAdmin || p.UserType == UserTypeAdmin
}

type SignupData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	UserType string `json:"user_type" binding:"omitempty,oneof=farmer buyer"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProfileUpdate struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	UserType *string `json:"user_type" binding:"omitempty,oneof=farmer buyer"`
}
