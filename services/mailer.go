package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/agromarket-api/models"
	"github.com/Kariqs/agromarket-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	TemplateWelcome       = "welcome.html"
	TemplateAdminGranted  = "admin_granted.html"
	TemplateOrderReceived = "order_received.html"
)

var ErrMailNotConfigured = errors.New("mail transport not configured")

type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Mailer renders a template, hands it to the transport and records the
// attempt in email_logs whether or not delivery succeeded.
type Mailer struct {
	sender Sender
	db     *gorm.DB
	logger *zap.Logger
}

// NewMailer accepts a nil sender; every send is then logged as failed.
func NewMailer(sender Sender, db *gorm.DB, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{sender: sender, db: db, logger: logger}
}

func (m *Mailer) Send(ctx context.Context, to, subject, template string, data utils.EmailData) error {
	sendErr := m.deliver(to, subject, template, data)

	entry := models.EmailLog{
		Recipient: to,
		Subject:   subject,
		Template:  template,
		Status:    models.EmailStatusSent,
	}
	if sendErr != nil {
		entry.Status = models.EmailStatusFailed
		entry.Error = sendErr.Error()
		m.logger.Warn("email delivery failed",
			zap.String("recipient", to),
			zap.String("template", template),
			zap.Error(sendErr),
		)
	}
	if err := m.db.WithContext(ctx).Create(&entry).Error; err != nil {
		m.logger.Error("failed to record email log", zap.Error(err))
	}
	return sendErr
}

func (m *Mailer) deliver(to, subject, template string, data utils.EmailData) error {
	if m.sender == nil {
		return ErrMailNotConfigured
	}
	body, err := utils.RenderTemplate(template, data)
	if err != nil {
		return err
	}
	if err := m.sender.Send(to, subject, body); err != nil {
		return fmt.Errorf("send %s: %w", template, err)
	}
	return nil
}
