package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"campusbuddy/internal/entity"
)

type AnnouncementRepository interface {
	Index(ctx context.Context, filter entity.AnnouncementIndexFilter) ([]entity.Announcement, int64, error)
	Get(ctx context.Context, announcementId string) (entity.Announcement, error)
	IncrementViews(ctx context.Context, announcementId string) (entity.Announcement, error)
	Create(ctx context.Context, announcement entity.Announcement) (string, error)
	Update(ctx context.Context, announcement entity.Announcement) (entity.Announcement, error)
	Delete(ctx context.Context, announcementId string) error

	// Like operations
	HasLiked(ctx context.Context, announcementId, userId string) (bool, error)
	AddLike(ctx context.Context, like entity.AnnouncementLike) error
	RemoveLike(ctx context.Context, announcementId, userId string) (bool, error)
	AdjustLikes(ctx context.Context, announcementId string, delta int) (entity.Announcement, error)
}

type announcementRepository struct {
	db *mongo.Database
}

func NewAnnouncementRepository(db *mongo.Database) AnnouncementRepository {
	return &announcementRepository{
		db: db,
	}
}

func (r *announcementRepository) collection() *mongo.Collection {
	return r.db.Collection(AnnouncementsCollection)
}

func (r *announcementRepository) likes() *mongo.Collection {
	return r.db.Collection(AnnouncementLikesCollection)
}

// Index lists announcements that have not expired at filter.ActiveAt.
func (r *announcementRepository) Index(ctx context.Context, filter entity.AnnouncementIndexFilter) ([]entity.Announcement, int64, error) {
	activeAt := filter.ActiveAt
	if activeAt.IsZero() {
		activeAt = time.Now()
	}

	bsonFilter := bson.M{"expiresAt": bson.M{"$gt": activeAt}}
	if filter.Priority != "" {
		bsonFilter["priority"] = filter.Priority
	}
	if filter.Tag != "" {
		bsonFilter["tags"] = filter.Tag
	}
	if filter.AuthorId != "" {
		bsonFilter["authorId"] = filter.AuthorId
	}

	return findPage[entity.Announcement](ctx, r.collection(), bsonFilter, bson.D{{Key: "timestamp", Value: -1}}, filter.PageRequest)
}

func (r *announcementRepository) Get(ctx context.Context, announcementId string) (entity.Announcement, error) {
	return findOne[entity.Announcement](ctx, r.collection(), bson.M{"_id": announcementId})
}

func (r *announcementRepository) IncrementViews(ctx context.Context, announcementId string) (entity.Announcement, error) {
	return findOneAndUpdate[entity.Announcement](ctx, r.collection(), bson.M{"_id": announcementId}, bson.M{"$inc": bson.M{"views": 1}})
}

func (r *announcementRepository) Create(ctx context.Context, announcement entity.Announcement) (string, error) {
	if announcement.Id == "" {
		announcement.Id = uuid.New().String()
	}
	if announcement.Tags == nil {
		announcement.Tags = []string{}
	}

	if _, err := r.collection().InsertOne(ctx, announcement); err != nil {
		return "", translate(err)
	}

	return announcement.Id, nil
}

func (r *announcementRepository) Update(ctx context.Context, announcement entity.Announcement) (entity.Announcement, error) {
	update := bson.M{
		"$set": bson.M{
			"title":     announcement.Title,
			"content":   announcement.Content,
			"priority":  announcement.Priority,
			"tags":      announcement.Tags,
			"expiresAt": announcement.ExpiresAt,
			"updatedAt": announcement.UpdatedAt,
		},
	}
	return findOneAndUpdate[entity.Announcement](ctx, r.collection(), bson.M{"_id": announcement.Id}, update)
}

// Delete removes the announcement and then batch-deletes its likes.
func (r *announcementRepository) Delete(ctx context.Context, announcementId string) error {
	if err := deleteById(ctx, r.collection(), announcementId); err != nil {
		return err
	}
	_, err := r.likes().DeleteMany(ctx, bson.M{"announcementId": announcementId})
	return translate(err)
}

func (r *announcementRepository) HasLiked(ctx context.Context, announcementId, userId string) (bool, error) {
	n, err := r.likes().CountDocuments(ctx, bson.M{"announcementId": announcementId, "userId": userId})
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

// AddLike returns ErrDuplicate when the (announcement, user) pair already exists.
func (r *announcementRepository) AddLike(ctx context.Context, like entity.AnnouncementLike) error {
	if like.Id == "" {
		like.Id = uuid.New().String()
	}
	_, err := r.likes().InsertOne(ctx, like)
	return translate(err)
}

func (r *announcementRepository) RemoveLike(ctx context.Context, announcementId, userId string) (bool, error) {
	res, err := r.likes().DeleteOne(ctx, bson.M{"announcementId": announcementId, "userId": userId})
	if err != nil {
		return false, translate(err)
	}
	return res.DeletedCount > 0, nil
}

func (r *announcementRepository) AdjustLikes(ctx context.Context, announcementId string, delta int) (entity.Announcement, error) {
	update := bson.A{bson.D{{Key: "$set", Value: bson.D{{Key: "likes", Value: flooredAdd("likes", delta)}}}}}
	return findOneAndUpdate[entity.Announcement](ctx, r.collection(), bson.M{"_id": announcementId}, update)
}
