package repository

import (
	"context"
	"errors"
	"fmt"

	"portfolio-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ProfileRepository is a singleton store: the collection it wraps holds at most one
// profile document. Reads always take the first document and writes replace the
// whole collection, so there is no lookup by id or user.
type ProfileRepository struct {
	collection *mongo.Collection
}

func NewProfileRepository(db *mongo.Database, collection string) *ProfileRepository {
	return &ProfileRepository{
		collection: db.Collection(collection),
	}
}

// FindFirst returns the profile, or nil without an error when the collection is empty.
func (r *ProfileRepository) FindFirst(ctx context.Context) (*models.Profile, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.D{}, opts).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	profile.Normalize()
	return &profile, nil
}

// Replace wipes the collection and inserts profile as its only document.
func (r *ProfileRepository) Replace(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if _, err := r.collection.DeleteMany(ctx, bson.D{}); err != nil {
		return nil, fmt.Errorf("failed to clear profiles: %w", err)
	}

	if profile.ID.IsZero() {
		profile.ID = bson.NewObjectID()
	}
	profile.Normalize()

	if _, err := r.collection.InsertOne(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// CreateIndexes creates a wildcard text index over every field. No query uses it yet.
func (r *ProfileRepository) CreateIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "$**", Value: "text"}},
		Options: options.Index().SetName("profile_text"),
	}

	if _, err := r.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
