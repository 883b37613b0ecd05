package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career_advisor/internal/common"
	"career_advisor/internal/domain/model"
	"career_advisor/internal/platform/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByEmailWithPassword includes the normally-hidden password digest.
	// Only the login path may use it.
	FindByEmailWithPassword(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateOnboarding(ctx context.Context, id string, ob *model.Onboarding) error
	SetRoadmapRef(ctx context.Context, id string, roadmapID primitive.ObjectID) error
}

type mongoUserRepository struct {
	c *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{c: db.Collection("users")}
}

// storeCtx bounds every store operation so a degraded store fails fast
// with ErrStoreUnavailable instead of exhausting client patience.
func storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, config.AppConfig.StoreTimeout)
}

func mapStoreErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return fmt.Errorf("%s: %w", op, common.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.c.InsertOne(ctx, user); err != nil {
		// The unique index is the real guarantee; the service-level
		// lookup is only an optimization.
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrDuplicateUser
		}
		return mapStoreErr("userRepository.Create", err)
	}
	return nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, options.FindOne().SetProjection(bson.M{"password": 0}))
}

func (r *mongoUserRepository) FindByEmailWithPassword(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, options.FindOne())
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"password": 0}))
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*model.User, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	user := &model.User{}
	if err := r.c.FindOne(ctx, filter, opts).Decode(user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, mapStoreErr("userRepository.findOne", err)
	}
	return user, nil
}

func (r *mongoUserRepository) UpdateOnboarding(ctx context.Context, id string, ob *model.Onboarding) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrNotFound
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	res, err := r.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"onboarding": ob,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return mapStoreErr("userRepository.UpdateOnboarding", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) SetRoadmapRef(ctx context.Context, id string, roadmapID primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrNotFound
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	res, err := r.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"career_roadmap": roadmapID,
		"updated_at":     time.Now().UTC(),
	}})
	if err != nil {
		return mapStoreErr("userRepository.SetRoadmapRef", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
