package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crewdesk/member-portal/internal/core/domain"
)

const onboardingCollection = "onboarding_info"

// OnboardingRepository implements ports.OnboardingRepository using MongoDB.
// The marker is keyed by user ID; an upsert keeps creation idempotent so a
// raced double-submit can never produce a duplicate row.
type OnboardingRepository struct {
	coll *mongo.Collection
}

func NewOnboardingRepository(db *mongo.Database) *OnboardingRepository {
	return &OnboardingRepository{coll: db.Collection(onboardingCollection)}
}

func (r *OnboardingRepository) Exists(ctx context.Context, userID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("onboarding exists: %w", err)
	}
	return n > 0, nil
}

func (r *OnboardingRepository) Create(ctx context.Context, info *domain.OnboardingInfo) error {
	update := bson.M{
		"$setOnInsert": bson.M{
			"display_name": info.DisplayName,
			"company":      info.Company,
			"completed_at": info.CompletedAt.Unix(),
		},
	}

	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": info.UserID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("insert onboarding info: %w", err)
	}
	return nil
}
