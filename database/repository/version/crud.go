package versionRepo

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

type MongoVersionRepo struct {
	coll *mongo.Collection
}

func NewMongoVersionRepo(ctx context.Context, db *mongo.Database) VersionRepository {
	repo := &MongoVersionRepo{coll: db.Collection("versions")}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Error("versionRepo: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoVersionRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.MultiOpTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "version", Value: -1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoVersionRepo) Create(ctx context.Context, v *models.Version) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("failed to create version: %w", repository.MapWriteError(err))
	}
	return nil
}

func (r *MongoVersionRepo) GetByID(ctx context.Context, id string) (*models.Version, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoVersionRepo) GetByNumber(ctx context.Context, number float64) (*models.Version, error) {
	v, err := r.findOne(ctx, bson.M{"version": number})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func (r *MongoVersionRepo) findOne(ctx context.Context, filter bson.M) (*models.Version, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	var v models.Version
	if err := r.coll.FindOne(ctx, filter).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch version: %w", err)
	}
	return &v, nil
}

func (r *MongoVersionRepo) List(ctx context.Context) ([]models.Version, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.MultiOpTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve versions: %w", err)
	}
	defer cursor.Close(ctx)

	versions := []models.Version{}
	if err := cursor.All(ctx, &versions); err != nil {
		return nil, fmt.Errorf("failed to decode versions: %w", err)
	}
	return versions, nil
}

func (r *MongoVersionRepo) Update(ctx context.Context, v *models.Version) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	v.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": v.ID}, bson.M{"$set": v})
	if err != nil {
		return fmt.Errorf("failed to update version %s: %w", v.ID, repository.MapWriteError(err))
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("version %s: %w", v.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoVersionRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete version %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("version %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
