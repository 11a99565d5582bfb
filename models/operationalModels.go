package models

const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"

	UploadStatusUploaded = "uploaded"
	UploadStatusFailed   = "failed"
)

type EmailLog struct {
	Base
	Recipient string `json:"recipient" gorm:"size:254;index"`
	Subject   string `json:"subject"`
	Template  string `json:"template" gorm:"size:100"`
	Status    string `json:"status" gorm:"size:20;index"`
	Error     string `json:"error,omitempty" gorm:"type:text"`
}

type AdminNotification struct {
	Base
	Type    string `json:"type" gorm:"size:50;index"`
	Title   string `json:"title"`
	Message string `json:"message" gorm:"type:text"`
	IsRead  bool   `json:"is_read" gorm:"not null;default:false;index"`
}

type FileUpload struct {
	Base
	UserID      string `json:"user_id" gorm:"type:varchar(36);index"`
	Entity      string `json:"entity" gorm:"size:50"`
	FileName    string `json:"file_name"`
	URL         string `json:"url" gorm:"type:text"`
	ContentType string `json:"content_type" gorm:"size:100"`
	Size        int64  `json:"size"`
	Status      string `json:"status" gorm:"size:20;index"`
}

type ContactMessage struct {
	Base
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" gorm:"size:254" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" gorm:"type:text" binding:"required,min=5"`
	IsRead  bool   `json:"is_read" gorm:"not null;default:false"`
}
