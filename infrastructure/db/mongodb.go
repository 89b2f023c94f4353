package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusbuddy/internal/repository"
)

type MongoStore struct {
	Client  *mongo.Client
	DB      *mongo.Database
	timeout time.Duration
}

func NewMongoStore(ctx context.Context, uri, dbName string, timeout time.Duration) (*MongoStore, error) {
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	if dbName == "" {
		return nil, errors.New("database name required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	clientOpts := options.Client().ApplyURI(uri).
		SetMaxPoolSize(100).
		SetServerSelectionTimeout(timeout)

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, err
	}

	store := &MongoStore{
		Client:  client,
		DB:      client.Database(dbName),
		timeout: timeout,
	}
	return store, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	disconnectCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.Client.Disconnect(disconnectCtx)
}

func (m *MongoStore) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return errors.New("mongo client is nil")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.Client.Ping(pingCtx, nil)
}

// Indexes lists every index the repositories rely on, keyed by collection.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		repository.MessagesCollection: {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		},
		repository.AnnouncementsCollection: {
			{Keys: bson.D{{Key: "expiresAt", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		repository.AnnouncementLikesCollection: {
			{Keys: bson.D{{Key: "announcementId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		repository.LostFoundCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		repository.FeedbackCollection: {
			{Keys: bson.D{{Key: "submitterKey", Value: 1}}},
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "status", Value: 1}}},
		},
		repository.FeedbackVotesCollection: {
			{Keys: bson.D{{Key: "feedbackId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		repository.MoodCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		repository.CampusStatusCollection: {
			{Keys: bson.D{{Key: "facilityKey", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "keywords", Value: 1}}},
		},
		repository.ActivityCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "type", Value: 1}}},
		},
		repository.UsersCollection: {
			{Keys: bson.D{{Key: "points", Value: -1}}},
		},
	}
}

// EnsureIndexes creates missing indexes; existing ones are left as they are.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	for collection, models := range Indexes() {
		if _, err := m.DB.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", collection, err)
		}
	}
	return nil
}
