package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"career_advisor/internal/platform/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

func Connect() {
	opts := options.Client().
		ApplyURI(config.AppConfig.MongoURL).
		SetServerSelectionTimeout(config.AppConfig.StoreTimeout).
		SetConnectTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}

	if err = Client.Ping(ctx, nil); err != nil {
		log.Fatalf("Error pinging MongoDB: %v", err)
	}

	DB = Client.Database(config.AppConfig.MongoDBName)

	if err := ensureIndexes(ctx, DB); err != nil {
		log.Fatalf("Error creating indexes: %v", err)
	}

	fmt.Println("Successfully connected to MongoDB!")
}

// ensureIndexes enforces the store-level uniqueness guarantees: one user
// per email, one roadmap per user.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("roadmaps").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Ping checks store readiness within the configured bounded wait, so a
// degraded store surfaces as a clear 503 instead of a generic failure.
func Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, config.AppConfig.StoreTimeout)
	defer cancel()
	return Client.Ping(ctx, nil)
}

func Close() {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		Client.Disconnect(ctx)
		fmt.Println("MongoDB connection closed.")
	}
}
