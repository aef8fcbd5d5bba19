package wallpaperRepo

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

type MongoWallpaperRepo struct {
	coll *mongo.Collection
}

func NewMongoWallpaperRepo(ctx context.Context, db *mongo.Database) WallpaperRepository {
	repo := &MongoWallpaperRepo{coll: db.Collection("wallpapers")}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Error("wallpaperRepo: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoWallpaperRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.MultiOpTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "name", Value: "text"}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoWallpaperRepo) Create(ctx context.Context, w *models.Wallpaper) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("failed to create wallpaper: %w", repository.MapWriteError(err))
	}
	return nil
}

func (r *MongoWallpaperRepo) GetByID(ctx context.Context, id string) (*models.Wallpaper, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	var w models.Wallpaper
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("wallpaper %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch wallpaper %s: %w", id, err)
	}
	return &w, nil
}

func (r *MongoWallpaperRepo) List(ctx context.Context, page models.PageRequest) ([]models.Wallpaper, int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.MultiOpTimeout)
	defer cancel()

	page = page.Normalize()
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count wallpapers: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(page.Limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve wallpapers: %w", err)
	}
	defer cursor.Close(ctx)

	wallpapers := []models.Wallpaper{}
	if err := cursor.All(ctx, &wallpapers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode wallpapers: %w", err)
	}
	return wallpapers, total, nil
}

func (r *MongoWallpaperRepo) Update(ctx context.Context, w *models.Wallpaper) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	w.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": w.ID}, bson.M{"$set": w})
	if err != nil {
		return fmt.Errorf("failed to update wallpaper %s: %w", w.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("wallpaper %s: %w", w.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoWallpaperRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.SingleOpTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete wallpaper %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("wallpaper %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoWallpaperRepo) ImagePaths(ctx context.Context) (map[string]struct{}, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.MultiOpTimeout)
	defer cancel()

	paths, err := r.coll.Distinct(ctx, "imagePaths", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list image paths: %w", err)
	}
	out := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if s, ok := p.(string); ok {
			out[s] = struct{}{}
		}
	}
	return out, nil
}
