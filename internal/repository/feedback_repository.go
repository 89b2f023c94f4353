package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"campusbuddy/internal/entity"
)

type FeedbackRepository interface {
	Index(ctx context.Context, filter entity.FeedbackIndexFilter) ([]entity.AnonymousFeedback, int64, error)
	Get(ctx context.Context, feedbackId string) (entity.AnonymousFeedback, error)
	Create(ctx context.Context, feedback entity.AnonymousFeedback) (string, error)
	UpdateStatus(ctx context.Context, feedbackId string, status entity.FeedbackStatus, adminResponse string, at time.Time) (entity.AnonymousFeedback, error)
	Delete(ctx context.Context, feedbackId string) error

	// Vote operations
	GetVote(ctx context.Context, feedbackId, userId string) (*entity.FeedbackVote, error)
	InsertVote(ctx context.Context, vote entity.FeedbackVote) error
	DeleteVote(ctx context.Context, feedbackId, userId string) error
	SwitchVote(ctx context.Context, feedbackId, userId string, voteType entity.VoteType) error
	AdjustVotes(ctx context.Context, feedbackId string, upDelta, downDelta int) (entity.AnonymousFeedback, error)
}

type feedbackRepository struct {
	db *mongo.Database
}

func NewFeedbackRepository(db *mongo.Database) FeedbackRepository {
	return &feedbackRepository{
		db: db,
	}
}

func (r *feedbackRepository) collection() *mongo.Collection {
	return r.db.Collection(FeedbackCollection)
}

func (r *feedbackRepository) votes() *mongo.Collection {
	return r.db.Collection(FeedbackVotesCollection)
}

func (r *feedbackRepository) Index(ctx context.Context, filter entity.FeedbackIndexFilter) ([]entity.AnonymousFeedback, int64, error) {
	bsonFilter := bson.M{}
	if filter.Type != "" {
		bsonFilter["type"] = filter.Type
	}
	if filter.Category != "" {
		bsonFilter["category"] = filter.Category
	}
	if filter.Status != "" {
		bsonFilter["status"] = filter.Status
	}
	if filter.SubmitterKey != "" {
		bsonFilter["submitterKey"] = filter.SubmitterKey
	}
	if filter.PublicOnly {
		bsonFilter["$or"] = bson.A{
			bson.M{"type": entity.FeedbackTypeConfession},
			bson.M{"status": entity.FeedbackResolved},
		}
	}

	return findPage[entity.AnonymousFeedback](ctx, r.collection(), bsonFilter, bson.D{{Key: "createdAt", Value: -1}}, filter.PageRequest)
}

func (r *feedbackRepository) Get(ctx context.Context, feedbackId string) (entity.AnonymousFeedback, error) {
	return findOne[entity.AnonymousFeedback](ctx, r.collection(), bson.M{"_id": feedbackId})
}

func (r *feedbackRepository) Create(ctx context.Context, feedback entity.AnonymousFeedback) (string, error) {
	if feedback.Id == "" {
		feedback.Id = uuid.New().String()
	}

	if _, err := r.collection().InsertOne(ctx, feedback); err != nil {
		return "", translate(err)
	}

	return feedback.Id, nil
}

func (r *feedbackRepository) UpdateStatus(ctx context.Context, feedbackId string, status entity.FeedbackStatus, adminResponse string, at time.Time) (entity.AnonymousFeedback, error) {
	set := bson.M{"status": status, "updatedAt": at}
	if adminResponse != "" {
		set["adminResponse"] = adminResponse
	}
	return findOneAndUpdate[entity.AnonymousFeedback](ctx, r.collection(), bson.M{"_id": feedbackId}, bson.M{"$set": set})
}

// Delete removes the feedback and then batch-deletes its votes.
func (r *feedbackRepository) Delete(ctx context.Context, feedbackId string) error {
	if err := deleteById(ctx, r.collection(), feedbackId); err != nil {
		return err
	}
	_, err := r.votes().DeleteMany(ctx, bson.M{"feedbackId": feedbackId})
	return translate(err)
}

// GetVote returns nil when the user has not voted on the item.
func (r *feedbackRepository) GetVote(ctx context.Context, feedbackId, userId string) (*entity.FeedbackVote, error) {
	vote, err := findOne[entity.FeedbackVote](ctx, r.votes(), bson.M{"feedbackId": feedbackId, "userId": userId})
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *feedbackRepository) InsertVote(ctx context.Context, vote entity.FeedbackVote) error {
	if vote.Id == "" {
		vote.Id = uuid.New().String()
	}
	_, err := r.votes().InsertOne(ctx, vote)
	return translate(err)
}

func (r *feedbackRepository) DeleteVote(ctx context.Context, feedbackId, userId string) error {
	res, err := r.votes().DeleteOne(ctx, bson.M{"feedbackId": feedbackId, "userId": userId})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *feedbackRepository) SwitchVote(ctx context.Context, feedbackId, userId string, voteType entity.VoteType) error {
	filter := bson.M{"feedbackId": feedbackId, "userId": userId, "voteType": bson.M{"$ne": voteType}}
	res, err := r.votes().UpdateOne(ctx, filter, bson.M{"$set": bson.M{"voteType": voteType}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustVotes applies both deltas in one pipeline update; neither counter drops below zero.
func (r *feedbackRepository) AdjustVotes(ctx context.Context, feedbackId string, upDelta, downDelta int) (entity.AnonymousFeedback, error) {
	update := bson.A{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "upvotes", Value: flooredAdd("upvotes", upDelta)},
			{Key: "downvotes", Value: flooredAdd("downvotes", downDelta)},
		}}},
	}
	return findOneAndUpdate[entity.AnonymousFeedback](ctx, r.collection(), bson.M{"_id": feedbackId}, update)
}
