package adminRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adminpanel/database/repository"
	"adminpanel/models"
	"adminpanel/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoAdminRepo implements AdminRepository using MongoDB.
type MongoAdminRepo struct {
	coll *mongo.Collection
}

func NewMongoAdminRepo(ctx context.Context, db *mongo.Database) AdminRepository {
	repo := &MongoAdminRepo{coll: db.Collection("admins")}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Error("adminRepo: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoAdminRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.MultiOpTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", repository.MapWriteError(err))
	}
	return nil
}

func (r *MongoAdminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"passwordHash": 0})
	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("admin with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch admin with id %s: %w", id, err)
	}
	return &admin, nil
}

func (r *MongoAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch admin with email %s: %w", email, err)
	}
	return &admin, nil
}

func (r *MongoAdminRepo) CountAdmins(ctx context.Context) (int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"isAdmin": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return n, nil
}
