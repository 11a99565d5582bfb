package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Kariqs/agromarket-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrNotAdmin          = errors.New("profile is not an admin")
	ErrInvalidIdentifier = errors.New("a valid email or user id is required")
)

// AdminResult reports what an admin toggle did. Changed is false when the
// profile already had the requested privileges.
type AdminResult struct {
	Profile models.Profile `json:"profile"`
	Created bool           `json:"created"`
	Changed bool           `json:"changed"`
}

type AdminService struct {
	db       *gorm.DB
	notifier *Notifier
	logger   *zap.Logger
}

func NewAdminService(db *gorm.DB, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		db:       db,
		notifier: NewNotifier(db, logger),
		logger:   logger,
	}
}

func grantAdmin(p *models.Profile) bool {
	if p.IsAdmin && p.Role == models.RoleAdmin && p.UserType == models.UserTypeAdmin {
		return false
	}
	p.IsAdmin = true
	p.Role = models.RoleAdmin
	p.UserType = models.UserTypeAdmin
	return true
}

func adminColumns(p *models.Profile) map[string]any {
	return map[string]any{
		"is_admin":  p.IsAdmin,
		"role":      p.Role,
		"user_type": p.UserType,
	}
}

// AddAdminByEmail grants admin access to the profile with the given email,
// creating the profile when none exists.
func (s *AdminService) AddAdminByEmail(ctx context.Context, email string) (*AdminResult, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return nil, ErrInvalidIdentifier
	}
	// Display-name forms like "Bob <bob@example.com>" resolve to the bare mailbox.
	email = strings.ToLower(addr.Address)
	fullName := strings.TrimSpace(addr.Name)
	if fullName == "" {
		fullName = strings.SplitN(email, "@", 2)[0]
	}

	result := &AdminResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Where("email = ?", email).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.Profile{
				Email:    email,
				FullName: fullName,
			}
			grantAdmin(&profile)
			if err := tx.Create(&profile).Error; err != nil {
				return fmt.Errorf("create admin profile: %w", err)
			}
			result.Created = true
			result.Changed = true
		case err != nil:
			return fmt.Errorf("find profile: %w", err)
		default:
			if grantAdmin(&profile) {
				if err := tx.Model(&profile).Updates(adminColumns(&profile)).Error; err != nil {
					return fmt.Errorf("grant admin: %w", err)
				}
				result.Changed = true
			}
		}
		result.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Changed {
		s.notify(ctx, NotificationAdminGranted, "Admin access granted",
			fmt.Sprintf("%s was granted admin access", result.Profile.Email))
	}
	return result, nil
}

func (s *AdminService) AddAdminByID(ctx context.Context, id string) (*AdminResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidIdentifier
	}

	profile, err := s.findProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &AdminResult{}
	if grantAdmin(profile) {
		if err := s.db.WithContext(ctx).Model(profile).Updates(adminColumns(profile)).Error; err != nil {
			return nil, fmt.Errorf("grant admin: %w", err)
		}
		result.Changed = true
		s.notify(ctx, NotificationAdminGranted, "Admin access granted",
			fmt.Sprintf("%s was granted admin access", profile.Email))
	}
	result.Profile = *profile
	return result, nil
}

// RemoveAdmin revokes admin access. A profile without admin access is left
// untouched and ErrNotAdmin is returned.
func (s *AdminService) RemoveAdmin(ctx context.Context, id string) (*AdminResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidIdentifier
	}

	profile, err := s.findProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !profile.HasAdminAccess() {
		return nil, ErrNotAdmin
	}

	profile.IsAdmin = false
	profile.Role = models.RoleUser
	if profile.UserType == models.UserTypeAdmin {
		profile.UserType = models.UserTypeFarmer
	}
	if err := s.db.WithContext(ctx).Model(profile).Updates(adminColumns(profile)).Error; err != nil {
		return nil, fmt.Errorf("revoke admin: %w", err)
	}

	s.notify(ctx, NotificationAdminRevoked, "Admin access removed",
		fmt.Sprintf("%s no longer has admin access", profile.Email))
	return &AdminResult{Profile: *profile, Changed: true}, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]models.Profile, error) {
	var admins []models.Profile
	err := s.db.WithContext(ctx).
		Where("is_admin = ? OR role = ? OR user_type = ?", true, models.RoleAdmin, models.UserTypeAdmin).
		Order("created_at ASC").
		Find(&admins).Error
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

func (s *AdminService) findProfile(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

// notify runs after the profile write has committed; its failure is logged
// and never undoes the toggle.
func (s *AdminService) notify(ctx context.Context, kind, title, message string) {
	if err := s.notifier.Notify(ctx, kind, title, message); err != nil {
		s.logger.Warn("admin toggle notification skipped", zap.Error(err))
	}
}
