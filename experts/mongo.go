package experts

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/Kariqs/agromarket-api/listing"
	"github.com/Kariqs/agromarket-api/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "expert_profiles"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, e *models.ExpertProfile) error {
	prepareNew(e)
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert expert: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*models.ExpertProfile, error) {
	var e models.ExpertProfile
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrExpertNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find expert %s: %w", id, err)
	}
	return &e, nil
}

// List narrows the candidate set with equality predicates in the query and
// runs the rest of the pipeline in memory.
func (r *MongoRepository) List(ctx context.Context, f listing.Filter) (listing.Page[models.ExpertProfile], error) {
	cursor, err := r.coll.Find(ctx, mongoFilter(f))
	if err != nil {
		return listing.Page[models.ExpertProfile]{}, fmt.Errorf("find experts: %w", err)
	}
	defer cursor.Close(ctx)

	var all []models.ExpertProfile
	if err := cursor.All(ctx, &all); err != nil {
		return listing.Page[models.ExpertProfile]{}, fmt.Errorf("decode experts: %w", err)
	}
	return listing.Apply(all, f), nil
}

func mongoFilter(f listing.Filter) bson.M {
	q := bson.M{}
	if f.Category != "" {
		q["specialization"] = bson.M{"$regex": "^" + regexp.QuoteMeta(f.Category) + "$", "$options": "i"}
	}
	if f.Condition != "" {
		q["availability_status"] = bson.M{"$regex": "^" + regexp.QuoteMeta(f.Condition) + "$", "$options": "i"}
	}
	return q
}

func (r *MongoRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range updates {
		set[k] = v
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update expert %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrExpertNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete expert %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrExpertNotFound
	}
	return nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
