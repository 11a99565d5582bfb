package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Kariqs/agromarket-api/models"
	"github.com/Kariqs/agromarket-api/services"
	"github.com/Kariqs/agromarket-api/testutil"
	"github.com/Kariqs/agromarket-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	sent []string
	err  error
}

func (r *recordingSender) Send(to, subject, body string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, to+"|"+subject+"|"+body)
	return nil
}

func TestNotifier(t *testing.T) {
	db := testutil.NewDB(t)
	n := services.NewNotifier(db, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, n.Notify(ctx, services.NotificationContact, "New message", "hello"))
	require.NoError(t, n.Notify(ctx, services.NotificationNewOrder, "New order", "order 1"))

	unread, err := n.List(ctx, true, 0)
	require.NoError(t, err)
	require.Len(t, unread, 2)

	require.NoError(t, n.MarkRead(ctx, unread[0].ID))
	require.NoError(t, n.MarkRead(ctx, unread[0].ID), "marking twice is not an error")
	assert.ErrorIs(t, n.MarkRead(ctx, "missing"), services.ErrNotificationNotFound)

	unread, err = n.List(ctx, true, 0)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	all, err := n.List(ctx, false, 1)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMailerRecordsEveryAttempt(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	data := utils.EmailData{Name: "Achieng", Message: "Welcome aboard"}

	sender := &recordingSender{}
	require.NoError(t, services.NewMailer(sender, db, nil).Send(ctx, "a@example.com", "Welcome", services.TemplateWelcome, data))
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Achieng")

	failing := &recordingSender{err: errors.New("connection refused")}
	err := services.NewMailer(failing, db, nil).Send(ctx, "b@example.com", "Welcome", services.TemplateWelcome, data)
	assert.Error(t, err)

	err = services.NewMailer(nil, db, nil).Send(ctx, "c@example.com", "Welcome", services.TemplateWelcome, data)
	assert.ErrorIs(t, err, services.ErrMailNotConfigured)

	var logs []models.EmailLog
	require.NoError(t, db.Order("recipient").Find(&logs).Error)
	require.Len(t, logs, 3)
	assert.Equal(t, models.EmailStatusSent, logs[0].Status)
	assert.Equal(t, models.EmailStatusFailed, logs[1].Status)
	assert.Contains(t, logs[1].Error, "connection refused")
	assert.Equal(t, models.EmailStatusFailed, logs[2].Status)
}

func TestReportService(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	profiles := []models.Profile{
		{Email: "f1@example.com", UserType: models.UserTypeFarmer, Role: models.RoleUser},
		{Email: "f2@example.com", UserType: models.UserTypeFarmer, Role: models.RoleUser},
		{Email: "b1@example.com", UserType: models.UserTypeBuyer, Role: models.RoleUser},
		{Email: "a1@example.com", UserType: models.UserTypeAdmin, Role: models.RoleAdmin, IsAdmin: true},
	}
	require.NoError(t, db.Create(&profiles).Error)

	require.NoError(t, db.Create(&models.Equipment{ListingBase: models.ListingBase{UserID: profiles[0].ID, Title: "Tractor"}, Category: "tractors"}).Error)
	require.NoError(t, db.Create(&models.Equipment{ListingBase: models.ListingBase{UserID: profiles[0].ID, Title: "Plough"}, Category: "tillage"}).Error)
	require.NoError(t, db.Create(&models.LandListing{ListingBase: models.ListingBase{UserID: profiles[1].ID, Title: "Plot"}, LandType: "arable"}).Error)
	require.NoError(t, db.Create(&models.EmailLog{Recipient: "x@example.com", Status: models.EmailStatusSent}).Error)
	require.NoError(t, db.Create(&models.EmailLog{Recipient: "y@example.com", Status: models.EmailStatusSent}).Error)
	require.NoError(t, db.Create(&models.EmailLog{Recipient: "z@example.com", Status: models.EmailStatusFailed}).Error)
	require.NoError(t, db.Create(&models.FileUpload{FileName: "a.png", Status: models.UploadStatusFailed}).Error)

	svc := services.NewReportService(db, nil)

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Users)
	assert.Equal(t, int64(1), stats.Admins)
	assert.Equal(t, int64(2), stats.Farmers)
	assert.Equal(t, int64(1), stats.Buyers)
	assert.Equal(t, int64(2), stats.Equipment)
	assert.Equal(t, int64(1), stats.Land)
	assert.Equal(t, int64(2), stats.EmailsSent)
	assert.Equal(t, int64(1), stats.EmailsFailed)
	assert.Equal(t, int64(1), stats.FailedUploads)

	report, err := svc.Reports(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.UserTypes[models.UserTypeFarmer])
	assert.Equal(t, int64(1), report.ListingsByTable["equipment"]["tractors"])
	assert.Equal(t, int64(1), report.ListingsByTable["land"]["arable"])
	assert.InDelta(t, 66.67, report.EmailSuccessRate, 0.01)

	users, err := svc.RecentUsers(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	emails, err := svc.RecentEmails(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, emails, 3)
}

func TestDashboardFailsAsAWhole(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.FileUpload{}))

	_, err := services.NewReportService(db, nil).Dashboard(context.Background())
	assert.Error(t, err)
}
