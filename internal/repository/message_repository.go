package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusbuddy/internal/entity"
)

type MessageRepository interface {
	Index(ctx context.Context, filter entity.MessageIndexFilter) ([]entity.Message, int64, error)
	Recent(ctx context.Context, limit int) ([]entity.Message, error)
	Get(ctx context.Context, messageId string) (entity.Message, error)
	Create(ctx context.Context, message entity.Message) (string, error)
	UpdateContent(ctx context.Context, messageId, content string, editedAt time.Time) (entity.Message, error)
	// ToggleReaction adds or removes userId under emoji in one atomic update.
	ToggleReaction(ctx context.Context, messageId, emoji, userId string) (entity.Message, error)
	Delete(ctx context.Context, messageId string) error
}

type messageRepository struct {
	db *mongo.Database
}

func NewMessageRepository(db *mongo.Database) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func (r *messageRepository) collection() *mongo.Collection {
	return r.db.Collection(MessagesCollection)
}

// Index returns newest messages first.
func (r *messageRepository) Index(ctx context.Context, filter entity.MessageIndexFilter) ([]entity.Message, int64, error) {
	bsonFilter := bson.M{}
	if filter.AuthorId != "" {
		bsonFilter["authorId"] = filter.AuthorId
	}

	return findPage[entity.Message](ctx, r.collection(), bsonFilter, bson.D{{Key: "timestamp", Value: -1}}, filter.PageRequest)
}

// Recent returns up to limit of the latest messages in chronological order.
func (r *messageRepository) Recent(ctx context.Context, limit int) ([]entity.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err)
	}

	messages := []entity.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, translate(err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *messageRepository) Get(ctx context.Context, messageId string) (entity.Message, error) {
	return findOne[entity.Message](ctx, r.collection(), bson.M{"_id": messageId})
}

func (r *messageRepository) Create(ctx context.Context, message entity.Message) (string, error) {
	if message.Id == "" {
		message.Id = uuid.New().String()
	}
	if message.Reactions == nil {
		message.Reactions = []entity.Reaction{}
	}

	if _, err := r.collection().InsertOne(ctx, message); err != nil {
		return "", translate(err)
	}

	return message.Id, nil
}

func (r *messageRepository) UpdateContent(ctx context.Context, messageId, content string, editedAt time.Time) (entity.Message, error) {
	update := bson.M{
		"$set": bson.M{
			"content":  content,
			"edited":   true,
			"editedAt": editedAt,
		},
	}
	return findOneAndUpdate[entity.Message](ctx, r.collection(), bson.M{"_id": messageId}, update)
}

func (r *messageRepository) ToggleReaction(ctx context.Context, messageId, emoji, userId string) (entity.Message, error) {
	return findOneAndUpdate[entity.Message](ctx, r.collection(), bson.M{"_id": messageId}, reactionToggle(emoji, userId))
}

func literal(v any) bson.M {
	return bson.M{"$literal": v}
}

// reactionToggle mirrors entity.ToggleReaction as a pipeline update so that
// concurrent toggles on one message never overwrite each other. Caller input
// goes through $literal so a leading "$" is never read as a field path.
func reactionToggle(emoji, userId string) bson.A {
	current := bson.M{"$ifNull": bson.A{"$reactions", bson.A{}}}

	toggled := bson.M{"$map": bson.M{
		"input": current,
		"as":    "r",
		"in": bson.M{"$cond": bson.A{
			bson.M{"$ne": bson.A{"$$r.emoji", literal(emoji)}},
			"$$r",
			bson.D{
				{Key: "emoji", Value: "$$r.emoji"},
				{Key: "userIds", Value: bson.M{"$cond": bson.A{
					bson.M{"$in": bson.A{literal(userId), "$$r.userIds"}},
					bson.M{"$filter": bson.M{
						"input": "$$r.userIds",
						"as":    "u",
						"cond":  bson.M{"$ne": bson.A{"$$u", literal(userId)}},
					}},
					bson.M{"$concatArrays": bson.A{"$$r.userIds", bson.A{literal(userId)}}},
				}}},
			},
		}},
	}}

	hasEmoji := bson.M{"$in": bson.A{
		literal(emoji),
		bson.M{"$map": bson.M{"input": current, "as": "r", "in": "$$r.emoji"}},
	}}
	added := bson.M{"$concatArrays": bson.A{current, bson.A{
		bson.D{{Key: "emoji", Value: literal(emoji)}, {Key: "userIds", Value: bson.A{literal(userId)}}},
	}}}

	// Second stage drops emptied entries and recomputes every count.
	normalised := bson.M{"$map": bson.M{
		"input": bson.M{"$filter": bson.M{
			"input": "$reactions",
			"as":    "r",
			"cond":  bson.M{"$gt": bson.A{bson.M{"$size": "$$r.userIds"}, 0}},
		}},
		"as": "r",
		"in": bson.D{
			{Key: "emoji", Value: "$$r.emoji"},
			{Key: "userIds", Value: "$$r.userIds"},
			{Key: "count", Value: bson.M{"$size": "$$r.userIds"}},
		},
	}}

	return bson.A{
		bson.D{{Key: "$set", Value: bson.D{{Key: "reactions", Value: bson.M{"$cond": bson.A{hasEmoji, toggled, added}}}}}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "reactions", Value: normalised}}}},
	}
}

func (r *messageRepository) Delete(ctx context.Context, messageId string) error {
	return deleteById(ctx, r.collection(), messageId)
}
