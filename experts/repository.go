// Package experts stores expert profiles. Profiles live in a document store
// in production and in the SQL database otherwise; both satisfy Repository.
package experts

import (
	"context"
	"errors"

	"github.com/Kariqs/agromarket-api/listing"
	"github.com/Kariqs/agromarket-api/models"
)

var ErrExpertNotFound = errors.New("expert profile not found")

type Repository interface {
	Create(ctx context.Context, expert *models.ExpertProfile) error
	FindByID(ctx context.Context, id string) (*models.ExpertProfile, error)
	List(ctx context.Context, f listing.Filter) (listing.Page[models.ExpertProfile], error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

var Columns = listing.Columns{
	Search:    []string{"name", "title", "specialization", "bio", "location"},
	Category:  "specialization",
	Condition: "availability_status",
	Location:  "location",
	Price:     "consultation_fee",
	Rating:    "rating",
	Created:   "created_at",
}
