package repository

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"campusbuddy/internal/entity"
)

type MoodRepository interface {
	Index(ctx context.Context, filter entity.MoodIndexFilter) ([]entity.MoodEntry, int64, error)
	Get(ctx context.Context, entryId string) (entity.MoodEntry, error)
	Create(ctx context.Context, entry entity.MoodEntry) (string, error)
	SetHelpful(ctx context.Context, entryId string, helpful bool) (entity.MoodEntry, error)
	CountByMood(ctx context.Context, userId string) ([]entity.MoodCount, error)
}

type moodRepository struct {
	db *mongo.Database
}

func NewMoodRepository(db *mongo.Database) MoodRepository {
	return &moodRepository{
		db: db,
	}
}

func (r *moodRepository) collection() *mongo.Collection {
	return r.db.Collection(MoodCollection)
}

func (r *moodRepository) Index(ctx context.Context, filter entity.MoodIndexFilter) ([]entity.MoodEntry, int64, error) {
	bsonFilter := bson.M{}
	if filter.UserId != "" {
		bsonFilter["userId"] = filter.UserId
	}
	if filter.Mood != "" {
		bsonFilter["mood"] = filter.Mood
	}

	return findPage[entity.MoodEntry](ctx, r.collection(), bsonFilter, bson.D{{Key: "createdAt", Value: -1}}, filter.PageRequest)
}

func (r *moodRepository) Get(ctx context.Context, entryId string) (entity.MoodEntry, error) {
	return findOne[entity.MoodEntry](ctx, r.collection(), bson.M{"_id": entryId})
}

func (r *moodRepository) Create(ctx context.Context, entry entity.MoodEntry) (string, error) {
	if entry.Id == "" {
		entry.Id = uuid.New().String()
	}

	if _, err := r.collection().InsertOne(ctx, entry); err != nil {
		return "", translate(err)
	}

	return entry.Id, nil
}

func (r *moodRepository) SetHelpful(ctx context.Context, entryId string, helpful bool) (entity.MoodEntry, error) {
	return findOneAndUpdate[entity.MoodEntry](ctx, r.collection(), bson.M{"_id": entryId}, bson.M{"$set": bson.M{"helpful": helpful}})
}

func (r *moodRepository) CountByMood(ctx context.Context, userId string) ([]entity.MoodCount, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"userId": userId}},
		bson.M{"$group": bson.M{"_id": "$mood", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}

	counts := []entity.MoodCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, translate(err)
	}
	return counts, nil
}
