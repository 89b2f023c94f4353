package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"campusbuddy/internal/entity"
)

type LostFoundRepository interface {
	Index(ctx context.Context, filter entity.LostFoundIndexFilter) ([]entity.LostFoundItem, int64, error)
	Get(ctx context.Context, itemId string) (entity.LostFoundItem, error)
	Create(ctx context.Context, item entity.LostFoundItem) (string, error)
	Update(ctx context.Context, item entity.LostFoundItem) (entity.LostFoundItem, error)
	Delete(ctx context.Context, itemId string) error
	MarkReturned(ctx context.Context, itemId, resolverId string, at time.Time) (entity.LostFoundItem, error)
}

type lostFoundRepository struct {
	db *mongo.Database
}

func NewLostFoundRepository(db *mongo.Database) LostFoundRepository {
	return &lostFoundRepository{
		db: db,
	}
}

func (r *lostFoundRepository) collection() *mongo.Collection {
	return r.db.Collection(LostFoundCollection)
}

func (r *lostFoundRepository) Index(ctx context.Context, filter entity.LostFoundIndexFilter) ([]entity.LostFoundItem, int64, error) {
	bsonFilter := bson.M{}
	if filter.Status != "" {
		bsonFilter["status"] = filter.Status
	}
	if filter.Category != "" {
		bsonFilter["category"] = filter.Category
	}
	if filter.ReporterId != "" {
		bsonFilter["reporterId"] = filter.ReporterId
	}

	return findPage[entity.LostFoundItem](ctx, r.collection(), bsonFilter, bson.D{{Key: "createdAt", Value: -1}}, filter.PageRequest)
}

func (r *lostFoundRepository) Get(ctx context.Context, itemId string) (entity.LostFoundItem, error) {
	return findOne[entity.LostFoundItem](ctx, r.collection(), bson.M{"_id": itemId})
}

func (r *lostFoundRepository) Create(ctx context.Context, item entity.LostFoundItem) (string, error) {
	if item.Id == "" {
		item.Id = uuid.New().String()
	}

	if _, err := r.collection().InsertOne(ctx, item); err != nil {
		return "", translate(err)
	}

	return item.Id, nil
}

// Update rewrites the editable fields of an item that is not yet returned.
func (r *lostFoundRepository) Update(ctx context.Context, item entity.LostFoundItem) (entity.LostFoundItem, error) {
	filter := bson.M{"_id": item.Id, "status": bson.M{"$ne": entity.LostFoundReturned}}
	update := bson.M{
		"$set": bson.M{
			"title":       item.Title,
			"description": item.Description,
			"category":    item.Category,
			"status":      item.Status,
			"location":    item.Location,
			"contactInfo": item.ContactInfo,
			"updatedAt":   item.UpdatedAt,
		},
	}
	return findOneAndUpdate[entity.LostFoundItem](ctx, r.collection(), filter, update)
}

func (r *lostFoundRepository) Delete(ctx context.Context, itemId string) error {
	return deleteById(ctx, r.collection(), itemId)
}

// MarkReturned moves the item to returned only if it is not returned yet.
// ErrNotFound means either no such item or an item that was already returned.
func (r *lostFoundRepository) MarkReturned(ctx context.Context, itemId, resolverId string, at time.Time) (entity.LostFoundItem, error) {
	filter := bson.M{"_id": itemId, "status": bson.M{"$ne": entity.LostFoundReturned}}
	update := bson.M{
		"$set": bson.M{
			"status":     entity.LostFoundReturned,
			"resolvedBy": resolverId,
			"returnedAt": at,
			"updatedAt":  at,
		},
	}
	return findOneAndUpdate[entity.LostFoundItem](ctx, r.collection(), filter, update)
}
