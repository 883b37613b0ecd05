package repository

import (
	"context"
	"errors"
	"time"

	"career_advisor/internal/common"
	"career_advisor/internal/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RoadmapRepository interface {
	FindByUser(ctx context.Context, userID string) (*model.Roadmap, error)
	// Upsert atomically creates or replaces the single roadmap document
	// keyed by user. Concurrent regenerations are last-writer-wins and can
	// never produce two documents for one user.
	Upsert(ctx context.Context, userID string, plan model.Plan, generatedAt time.Time) (*model.Roadmap, error)
}

type mongoRoadmapRepository struct {
	c *mongo.Collection
}

func NewMongoRoadmapRepository(db *mongo.Database) RoadmapRepository {
	return &mongoRoadmapRepository{c: db.Collection("roadmaps")}
}

func (r *mongoRoadmapRepository) FindByUser(ctx context.Context, userID string) (*model.Roadmap, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, common.ErrNotFound
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	roadmap := &model.Roadmap{}
	if err := r.c.FindOne(ctx, bson.M{"user_id": oid}).Decode(roadmap); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, mapStoreErr("roadmapRepository.FindByUser", err)
	}
	return roadmap, nil
}

func (r *mongoRoadmapRepository) Upsert(ctx context.Context, userID string, plan model.Plan, generatedAt time.Time) (*model.Roadmap, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, common.ErrNotFound
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	filter := bson.M{"user_id": oid}
	update := bson.M{
		"$set": bson.M{
			"user_id":      oid,
			"roadmap":      plan,
			"generated_at": generatedAt,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	roadmap := &model.Roadmap{}
	if err := r.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(roadmap); err != nil {
		return nil, mapStoreErr("roadmapRepository.Upsert", err)
	}
	return roadmap, nil
}
