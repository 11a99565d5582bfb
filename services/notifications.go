package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/agromarket-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	NotificationAdminGranted = "admin_granted"
	NotificationAdminRevoked = "admin_revoked"
	NotificationContact      = "contact_message"
	NotificationNewOrder     = "new_order"
	NotificationNewListing   = "new_listing"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notifier writes admin_notifications. Notify never fails the caller's
// operation; it reports its own error for callers that care.
type Notifier struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewNotifier(db *gorm.DB, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{db: db, logger: logger}
}

func (n *Notifier) Notify(ctx context.Context, kind, title, message string) error {
	note := models.AdminNotification{Type: kind, Title: title, Message: message}
	if err := n.db.WithContext(ctx).Create(&note).Error; err != nil {
		n.logger.Warn("failed to record admin notification",
			zap.String("type", kind),
			zap.Error(err),
		)
		return fmt.Errorf("record notification: %w", err)
	}
	return nil
}

// MarkRead is idempotent. Existence is checked separately because MySQL
// reports changed rows, so a second mark affects nothing.
func (n *Notifier) MarkRead(ctx context.Context, id string) error {
	var note models.AdminNotification
	err := n.db.WithContext(ctx).Select("id").Where("id = ?", id).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	if err != nil {
		return fmt.Errorf("find notification: %w", err)
	}

	err = n.db.WithContext(ctx).
		Model(&models.AdminNotification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (n *Notifier) List(ctx context.Context, unreadOnly bool, limit int) ([]models.AdminNotification, error) {
	query := n.db.WithContext(ctx).Order("created_at DESC")
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notes []models.AdminNotification
	if err := query.Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notes, nil
}
