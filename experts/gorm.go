package experts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/agromarket-api/listing"
	"github.com/Kariqs/agromarket-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, e *models.ExpertProfile) error {
	prepareNew(e)
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *GormRepository) FindByID(ctx context.Context, id string) (*models.ExpertProfile, error) {
	var e models.ExpertProfile
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExpertNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find expert %s: %w", id, err)
	}
	return &e, nil
}

func (r *GormRepository) List(ctx context.Context, f listing.Filter) (listing.Page[models.ExpertProfile], error) {
	f = f.Normalize()
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.ExpertProfile{}).Scopes(listing.Where(f, Columns)).Count(&total).Error; err != nil {
		return listing.Page[models.ExpertProfile]{}, fmt.Errorf("count experts: %w", err)
	}

	items := []models.ExpertProfile{}
	if err := db.Scopes(listing.Scope(f, Columns), listing.Paginate(f)).Find(&items).Error; err != nil {
		return listing.Page[models.ExpertProfile]{}, fmt.Errorf("list experts: %w", err)
	}
	return listing.Page[models.ExpertProfile]{Items: items, Metadata: listing.NewMetadata(total, f)}, nil
}

func (r *GormRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&models.ExpertProfile{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update expert %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrExpertNotFound
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.ExpertProfile{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete expert %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrExpertNotFound
	}
	return nil
}

func (r *GormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ExpertProfile{}).Count(&n).Error
	return n, err
}

func prepareNew(e *models.ExpertProfile) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	if e.AvailabilityStatus == "" {
		e.AvailabilityStatus = models.AvailabilityAvailable
	}
}
