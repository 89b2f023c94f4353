package repository

import (
	"context"
	"regexp"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusbuddy/internal/entity"
)

type CampusStatusRepository interface {
	Index(ctx context.Context, filter entity.StatusIndexFilter) ([]entity.CampusStatus, int64, error)
	Get(ctx context.Context, statusId string) (entity.CampusStatus, error)
	Upsert(ctx context.Context, status entity.CampusStatus) (entity.CampusStatus, error)
	Update(ctx context.Context, statusId string, patch entity.CampusStatusPatch) (entity.CampusStatus, error)
	Delete(ctx context.Context, statusId string) error
	PopularKeywords(ctx context.Context, limit int) ([]entity.KeywordCount, error)
}

type campusStatusRepository struct {
	db *mongo.Database
}

func NewCampusStatusRepository(db *mongo.Database) CampusStatusRepository {
	return &campusStatusRepository{
		db: db,
	}
}

func (r *campusStatusRepository) collection() *mongo.Collection {
	return r.db.Collection(CampusStatusCollection)
}

func (r *campusStatusRepository) Index(ctx context.Context, filter entity.StatusIndexFilter) ([]entity.CampusStatus, int64, error) {
	bsonFilter := bson.M{}
	if filter.Status != "" {
		bsonFilter["status"] = filter.Status
	}
	if filter.Keyword != "" {
		bsonFilter["keywords"] = filter.Keyword
	}
	if filter.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		bsonFilter["$or"] = bson.A{
			bson.M{"facility": pattern},
			bson.M{"description": pattern},
			bson.M{"keywords": pattern},
		}
	}

	return findPage[entity.CampusStatus](ctx, r.collection(), bsonFilter, bson.D{{Key: "lastUpdated", Value: -1}}, filter.PageRequest)
}

func (r *campusStatusRepository) Get(ctx context.Context, statusId string) (entity.CampusStatus, error) {
	return findOne[entity.CampusStatus](ctx, r.collection(), bson.M{"_id": statusId})
}

// Upsert creates or overwrites the status of one facility, keyed by FacilityKey.
// The unique index on facilityKey keeps concurrent first submissions from duplicating.
func (r *campusStatusRepository) Upsert(ctx context.Context, status entity.CampusStatus) (entity.CampusStatus, error) {
	id := status.Id
	if id == "" {
		id = uuid.New().String()
	}
	if status.Keywords == nil {
		status.Keywords = []string{}
	}

	update := bson.M{
		"$set": bson.M{
			"facility":      status.Facility,
			"status":        status.Status,
			"description":   status.Description,
			"keywords":      status.Keywords,
			"lastUpdated":   status.LastUpdated,
			"updatedBy":     status.UpdatedBy,
			"updatedByName": status.UpdatedByName,
		},
		"$setOnInsert": bson.M{
			"_id":       id,
			"createdAt": status.LastUpdated,
		},
	}

	filter := bson.M{"facilityKey": status.FacilityKey}
	stored, err := findOneAndUpdate[entity.CampusStatus](ctx, r.collection(), filter, update, options.FindOneAndUpdate().SetUpsert(true))
	if isDuplicate(err) {
		// Lost the insert race; the document now exists so a plain update lands.
		return findOneAndUpdate[entity.CampusStatus](ctx, r.collection(), filter, bson.M{"$set": update["$set"]})
	}
	return stored, err
}

// Update sets only the patched fields so a concurrent upsert of other fields survives.
func (r *campusStatusRepository) Update(ctx context.Context, statusId string, patch entity.CampusStatusPatch) (entity.CampusStatus, error) {
	set := bson.M{
		"lastUpdated":   patch.At,
		"updatedBy":     patch.UpdatedBy,
		"updatedByName": patch.UpdatedByName,
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Keywords != nil {
		set["keywords"] = patch.Keywords
	}
	return findOneAndUpdate[entity.CampusStatus](ctx, r.collection(), bson.M{"_id": statusId}, bson.M{"$set": set})
}

func (r *campusStatusRepository) Delete(ctx context.Context, statusId string) error {
	return deleteById(ctx, r.collection(), statusId)
}

func (r *campusStatusRepository) PopularKeywords(ctx context.Context, limit int) ([]entity.KeywordCount, error) {
	pipeline := bson.A{
		bson.M{"$unwind": "$keywords"},
		bson.M{"$group": bson.M{"_id": "$keywords", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
		bson.M{"$limit": limit},
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}

	counts := []entity.KeywordCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, translate(err)
	}
	return counts, nil
}
