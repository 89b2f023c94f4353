package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusbuddy/internal/entity"
)

type BadgeRepository interface {
	Index(ctx context.Context) ([]entity.Badge, error)
	Get(ctx context.Context, badgeId string) (entity.Badge, error)
	Create(ctx context.Context, badge entity.Badge) error
	// Ensure inserts the catalog entry if it is missing and returns the stored one.
	Ensure(ctx context.Context, badge entity.Badge) (entity.Badge, error)
}

type badgeRepository struct {
	db *mongo.Database
}

func NewBadgeRepository(db *mongo.Database) BadgeRepository {
	return &badgeRepository{
		db: db,
	}
}

func (r *badgeRepository) collection() *mongo.Collection {
	return r.db.Collection(BadgesCollection)
}

func (r *badgeRepository) Index(ctx context.Context) ([]entity.Badge, error) {
	cursor, err := r.collection().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, translate(err)
	}

	badges := []entity.Badge{}
	if err := cursor.All(ctx, &badges); err != nil {
		return nil, translate(err)
	}
	return badges, nil
}

func (r *badgeRepository) Get(ctx context.Context, badgeId string) (entity.Badge, error) {
	return findOne[entity.Badge](ctx, r.collection(), bson.M{"_id": badgeId})
}

func (r *badgeRepository) Create(ctx context.Context, badge entity.Badge) error {
	_, err := r.collection().InsertOne(ctx, badge)
	return translate(err)
}

func (r *badgeRepository) Ensure(ctx context.Context, badge entity.Badge) (entity.Badge, error) {
	update := bson.M{
		"$setOnInsert": bson.M{
			"name":        badge.Name,
			"description": badge.Description,
			"icon":        badge.Icon,
			"category":    badge.Category,
			"createdAt":   badge.CreatedAt,
		},
	}
	stored, err := findOneAndUpdate[entity.Badge](ctx, r.collection(), bson.M{"_id": badge.Id}, update, options.FindOneAndUpdate().SetUpsert(true))
	if isDuplicate(err) {
		return r.Get(ctx, badge.Id)
	}
	return stored, err
}
