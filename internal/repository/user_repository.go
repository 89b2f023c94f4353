package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusbuddy/internal/entity"
)

type UserRepository interface {
	Get(ctx context.Context, userId string) (entity.User, error)
	GetMany(ctx context.Context, userIds []string) ([]entity.User, error)
	GetOrCreate(ctx context.Context, user entity.User) (entity.User, error)
	Index(ctx context.Context, filter entity.UserIndexFilter) ([]entity.User, int64, error)
	UpdateProfile(ctx context.Context, userId string, req entity.UpdateProfileRequest, at time.Time) (entity.User, error)
	UpdateRole(ctx context.Context, userId string, role entity.Role, at time.Time) (entity.User, error)
	RevokeTokens(ctx context.Context, userId string, at time.Time) error
	AddPoints(ctx context.Context, userId string, delta int) error
	SetOnline(ctx context.Context, userId string, online bool, at time.Time) error
	AwardBadge(ctx context.Context, userId string, badge entity.EarnedBadge, bonus int) (entity.User, error)
}

type userRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) collection() *mongo.Collection {
	return r.db.Collection(UsersCollection)
}

func (r *userRepository) Get(ctx context.Context, userId string) (entity.User, error) {
	return findOne[entity.User](ctx, r.collection(), bson.M{"_id": userId})
}

func (r *userRepository) GetMany(ctx context.Context, userIds []string) ([]entity.User, error) {
	users := []entity.User{}
	if len(userIds) == 0 {
		return users, nil
	}

	cursor, err := r.collection().Find(ctx, bson.M{"_id": bson.M{"$in": userIds}}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, translate(err)
	}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// GetOrCreate inserts the profile only when no document exists for its id and
// returns whatever is stored afterwards.
func (r *userRepository) GetOrCreate(ctx context.Context, user entity.User) (entity.User, error) {
	badges := user.Badges
	if badges == nil {
		badges = []entity.EarnedBadge{}
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"name":      user.Name,
			"email":     user.Email,
			"batch":     user.Batch,
			"role":      user.Role,
			"points":    user.Points,
			"badges":    badges,
			"isOnline":  false,
			"createdAt": user.CreatedAt,
			"updatedAt": user.UpdatedAt,
		},
	}

	stored, err := findOneAndUpdate[entity.User](ctx, r.collection(), bson.M{"_id": user.Id}, update, options.FindOneAndUpdate().SetUpsert(true))
	if err != nil {
		// Two first contacts racing on the same id: the loser reads the winner's document.
		if isDuplicate(err) {
			return r.Get(ctx, user.Id)
		}
		return entity.User{}, err
	}
	return stored, nil
}

func (r *userRepository) Index(ctx context.Context, filter entity.UserIndexFilter) ([]entity.User, int64, error) {
	bsonFilter := bson.M{}
	if filter.Role != "" {
		bsonFilter["role"] = filter.Role
	}
	if filter.Batch != "" {
		bsonFilter["batch"] = filter.Batch
	}

	sort := bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}
	if filter.SortByPoints {
		sort = bson.D{{Key: "points", Value: -1}, {Key: "name", Value: 1}}
	}

	return findPage[entity.User](ctx, r.collection(), bsonFilter, sort, filter.PageRequest)
}

func (r *userRepository) UpdateProfile(ctx context.Context, userId string, req entity.UpdateProfileRequest, at time.Time) (entity.User, error) {
	set := bson.M{"updatedAt": at}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Batch != nil {
		set["batch"] = *req.Batch
	}
	return findOneAndUpdate[entity.User](ctx, r.collection(), bson.M{"_id": userId}, bson.M{"$set": set})
}

func (r *userRepository) UpdateRole(ctx context.Context, userId string, role entity.Role, at time.Time) (entity.User, error) {
	update := bson.M{"$set": bson.M{"role": role, "updatedAt": at}}
	return findOneAndUpdate[entity.User](ctx, r.collection(), bson.M{"_id": userId}, update)
}

func (r *userRepository) RevokeTokens(ctx context.Context, userId string, at time.Time) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": userId}, bson.M{"$set": bson.M{"tokensValidAfter": at, "updatedAt": at}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) AddPoints(ctx context.Context, userId string, delta int) error {
	if delta == 0 {
		return nil
	}
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": userId}, bson.M{"$inc": bson.M{"points": delta}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) SetOnline(ctx context.Context, userId string, online bool, at time.Time) error {
	set := bson.M{"isOnline": online}
	if !online {
		set["lastSeen"] = at
	}
	_, err := r.collection().UpdateOne(ctx, bson.M{"_id": userId}, bson.M{"$set": set})
	return translate(err)
}

// AwardBadge pushes the badge and adds the bonus in one update. A user that
// already holds the badge is left untouched and ErrDuplicate is returned.
func (r *userRepository) AwardBadge(ctx context.Context, userId string, badge entity.EarnedBadge, bonus int) (entity.User, error) {
	filter := bson.M{"_id": userId, "badges.id": bson.M{"$ne": badge.Id}}
	update := bson.M{
		"$push": bson.M{"badges": badge},
		"$inc":  bson.M{"points": bonus},
		"$set":  bson.M{"updatedAt": badge.EarnedAt},
	}

	user, err := findOneAndUpdate[entity.User](ctx, r.collection(), filter, update)
	if err == nil {
		return user, nil
	}
	if err != ErrNotFound {
		return entity.User{}, err
	}

	n, countErr := r.collection().CountDocuments(ctx, bson.M{"_id": userId})
	if countErr != nil {
		return entity.User{}, translate(countErr)
	}
	if n == 0 {
		return entity.User{}, ErrNotFound
	}
	return entity.User{}, ErrDuplicate
}
