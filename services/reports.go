package services

import (
	"context"
	"fmt"

	"github.com/Kariqs/agromarket-api/experts"
	"github.com/Kariqs/agromarket-api/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DashboardStats struct {
	Users               int64 `json:"users"`
	Admins              int64 `json:"admins"`
	Farmers             int64 `json:"farmers"`
	Buyers              int64 `json:"buyers"`
	Equipment           int64 `json:"equipment"`
	Animals             int64 `json:"animals"`
	Land                int64 `json:"land"`
	Nurseries           int64 `json:"nurseries"`
	Experts             int64 `json:"experts"`
	MarketplaceItems    int64 `json:"marketplace_items"`
	Orders              int64 `json:"orders"`
	PendingOrders       int64 `json:"pending_orders"`
	UnreadMessages      int64 `json:"unread_messages"`
	EmailsSent          int64 `json:"emails_sent"`
	EmailsFailed        int64 `json:"emails_failed"`
	UnreadNotifications int64 `json:"unread_notifications"`
	FileUploads         int64 `json:"file_uploads"`
	FailedUploads       int64 `json:"failed_uploads"`
}

type Report struct {
	UserTypes        map[string]int64            `json:"user_types"`
	ListingsByTable  map[string]map[string]int64 `json:"listings_by_category"`
	OrdersByStatus   map[string]int64            `json:"orders_by_status"`
	EmailSuccessRate float64                     `json:"email_success_rate"`
}

type ReportService struct {
	db      *gorm.DB
	experts experts.Repository
}

// NewReportService takes an optional expert repository; without one the
// expert count is reported as zero.
func NewReportService(db *gorm.DB, expertRepo experts.Repository) *ReportService {
	return &ReportService{db: db, experts: expertRepo}
}

type countQuery struct {
	dest  *int64
	model any
	where string
	args  []any
}

// Dashboard runs every count concurrently. Any failing count fails the
// whole call.
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	queries := []countQuery{
		{dest: &stats.Users, model: &models.Profile{}},
		{dest: &stats.Admins, model: &models.Profile{}, where: "is_admin = ? OR role = ? OR user_type = ?", args: []any{true, models.RoleAdmin, models.UserTypeAdmin}},
		{dest: &stats.Farmers, model: &models.Profile{}, where: "user_type = ?", args: []any{models.UserTypeFarmer}},
		{dest: &stats.Buyers, model: &models.Profile{}, where: "user_type = ?", args: []any{models.UserTypeBuyer}},
		{dest: &stats.Equipment, model: &models.Equipment{}},
		{dest: &stats.Animals, model: &models.AnimalListing{}},
		{dest: &stats.Land, model: &models.LandListing{}},
		{dest: &stats.Nurseries, model: &models.NurseryListing{}},
		{dest: &stats.MarketplaceItems, model: &models.MarketplaceItem{}},
		{dest: &stats.Orders, model: &models.Order{}},
		{dest: &stats.PendingOrders, model: &models.Order{}, where: "status = ?", args: []any{models.OrderStatusPending}},
		{dest: &stats.UnreadMessages, model: &models.ContactMessage{}, where: "is_read = ?", args: []any{false}},
		{dest: &stats.EmailsSent, model: &models.EmailLog{}, where: "status = ?", args: []any{models.EmailStatusSent}},
		{dest: &stats.EmailsFailed, model: &models.EmailLog{}, where: "status = ?", args: []any{models.EmailStatusFailed}},
		{dest: &stats.UnreadNotifications, model: &models.AdminNotification{}, where: "is_read = ?", args: []any{false}},
		{dest: &stats.FileUploads, model: &models.FileUpload{}},
		{dest: &stats.FailedUploads, model: &models.FileUpload{}, where: "status = ?", args: []any{models.UploadStatusFailed}},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, q := range queries {
		g.Go(func() error {
			query := s.db.WithContext(gctx).Model(q.model)
			if q.where != "" {
				query = query.Where(q.where, q.args...)
			}
			if err := query.Count(q.dest).Error; err != nil {
				return fmt.Errorf("count %T: %w", q.model, err)
			}
			return nil
		})
	}
	if s.experts != nil {
		g.Go(func() error {
			n, err := s.experts.Count(gctx)
			if err != nil {
				return fmt.Errorf("count experts: %w", err)
			}
			stats.Experts = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func recent[T any](ctx context.Context, db *gorm.DB, limit int) ([]T, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []T
	if err := db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ReportService) RecentUsers(ctx context.Context, limit int) ([]models.Profile, error) {
	return recent[models.Profile](ctx, s.db, limit)
}

func (s *ReportService) RecentEmails(ctx context.Context, limit int) ([]models.EmailLog, error) {
	return recent[models.EmailLog](ctx, s.db, limit)
}

func (s *ReportService) RecentFiles(ctx context.Context, limit int) ([]models.FileUpload, error) {
	return recent[models.FileUpload](ctx, s.db, limit)
}

func (s *ReportService) RecentNotifications(ctx context.Context, limit int) ([]models.AdminNotification, error) {
	return recent[models.AdminNotification](ctx, s.db, limit)
}

type groupCount struct {
	Label string
	Total int64
}

func (s *ReportService) groupBy(ctx context.Context, model any, column string) (map[string]int64, error) {
	var rows []groupCount
	err := s.db.WithContext(ctx).
		Model(model).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group %T by %s: %w", model, column, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Label] = r.Total
	}
	return counts, nil
}

func (s *ReportService) Reports(ctx context.Context) (*Report, error) {
	report := &Report{ListingsByTable: map[string]map[string]int64{}}

	var err error
	if report.UserTypes, err = s.groupBy(ctx, &models.Profile{}, "user_type"); err != nil {
		return nil, err
	}
	if report.OrdersByStatus, err = s.groupBy(ctx, &models.Order{}, "status"); err != nil {
		return nil, err
	}

	listings := []struct {
		name   string
		model  any
		column string
	}{
		{"equipment", &models.Equipment{}, "category"},
		{"animals", &models.AnimalListing{}, "animal_type"},
		{"land", &models.LandListing{}, "land_type"},
		{"nurseries", &models.NurseryListing{}, "plant_type"},
	}
	for _, l := range listings {
		counts, err := s.groupBy(ctx, l.model, l.column)
		if err != nil {
			return nil, err
		}
		report.ListingsByTable[l.name] = counts
	}

	emails, err := s.groupBy(ctx, &models.EmailLog{}, "status")
	if err != nil {
		return nil, err
	}
	if total := emails[models.EmailStatusSent] + emails[models.EmailStatusFailed]; total > 0 {
		report.EmailSuccessRate = float64(emails[models.EmailStatusSent]) / float64(total) * 100
	}
	return report, nil
}
