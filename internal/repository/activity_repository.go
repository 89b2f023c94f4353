package repository

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"campusbuddy/internal/entity"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity entity.Activity) error
	Index(ctx context.Context, filter entity.ActivityIndexFilter) ([]entity.Activity, int64, error)
	Stats(ctx context.Context, userId string) (entity.ActivityStats, error)
}

type activityRepository struct {
	db *mongo.Database
}

func NewActivityRepository(db *mongo.Database) ActivityRepository {
	return &activityRepository{
		db: db,
	}
}

func (r *activityRepository) collection() *mongo.Collection {
	return r.db.Collection(ActivityCollection)
}

func (r *activityRepository) Create(ctx context.Context, activity entity.Activity) error {
	if activity.Id == "" {
		activity.Id = uuid.New().String()
	}
	_, err := r.collection().InsertOne(ctx, activity)
	return translate(err)
}

func (r *activityRepository) Index(ctx context.Context, filter entity.ActivityIndexFilter) ([]entity.Activity, int64, error) {
	return findPage[entity.Activity](ctx, r.collection(), bson.M{"userId": filter.UserId}, bson.D{{Key: "createdAt", Value: -1}}, filter.PageRequest)
}

func (r *activityRepository) Stats(ctx context.Context, userId string) (entity.ActivityStats, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"userId": userId}},
		bson.M{"$group": bson.M{"_id": "$type", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}

	var rows []struct {
		Type  entity.ActivityType `bson:"_id"`
		Count int                 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, translate(err)
	}

	stats := entity.ActivityStats{}
	for _, row := range rows {
		stats[row.Type] = row.Count
	}
	return stats, nil
}
