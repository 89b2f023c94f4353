package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusbuddy/internal/entity"
)

// Collection names.
const (
	UsersCollection             = "users"
	MessagesCollection          = "messages"
	AnnouncementsCollection     = "announcements"
	AnnouncementLikesCollection = "announcement_likes"
	LostFoundCollection         = "lost_found_items"
	FeedbackCollection          = "anonymous_feedback"
	FeedbackVotesCollection     = "feedback_votes"
	MoodCollection              = "mood_entries"
	CampusStatusCollection      = "campus_status"
	BadgesCollection            = "badges"
	ActivityCollection          = "activity_logs"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrDuplicate   = errors.New("duplicate document")
	ErrUnavailable = errors.New("document store unavailable")
)

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicate), errors.Is(err, ErrUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

// findPage counts matching documents and then reads one page of them.
// The count and the page are two separate reads.
func findPage[T any](ctx context.Context, collection *mongo.Collection, filter bson.M, sort bson.D, req entity.PageRequest) ([]T, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate(err)
	}

	opts := options.Find().SetSort(sort)
	if req.Limit > 0 {
		opts.SetLimit(int64(req.Limit))
	}
	if offset := req.Offset(); offset > 0 {
		opts.SetSkip(int64(offset))
	}

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, translate(err)
	}

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, translate(err)
	}

	return items, total, nil
}

func findOne[T any](ctx context.Context, collection *mongo.Collection, filter bson.M) (T, error) {
	var doc T
	if err := collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return doc, translate(err)
	}
	return doc, nil
}

func findOneAndUpdate[T any](ctx context.Context, collection *mongo.Collection, filter bson.M, update any, opts ...*options.FindOneAndUpdateOptions) (T, error) {
	opts = append([]*options.FindOneAndUpdateOptions{options.FindOneAndUpdate().SetReturnDocument(options.After)}, opts...)

	var doc T
	if err := collection.FindOneAndUpdate(ctx, filter, update, opts...).Decode(&doc); err != nil {
		return doc, translate(err)
	}
	return doc, nil
}

func deleteById(ctx context.Context, collection *mongo.Collection, id string) error {
	res, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// flooredAdd builds an aggregation expression adding delta to field, never below zero.
func flooredAdd(field string, delta int) bson.D {
	return bson.D{{Key: "$max", Value: bson.A{0, bson.D{{Key: "$add", Value: bson.A{bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, 0}}}, delta}}}}}}
}

func isDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
