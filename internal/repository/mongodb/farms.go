package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/manea/internal/domain/models"
)

// FarmRepo stores farms.
type FarmRepo struct {
	coll *mongo.Collection
}

// Insert persists a new farm.
func (r *FarmRepo) Insert(ctx context.Context, farm models.Farm) error {
	if _, err := r.coll.InsertOne(ctx, farm); err != nil {
		return dependencyErr("insert farm", err)
	}
	return nil
}

// FindByID fetches one farm by its id.
func (r *FarmRepo) FindByID(ctx context.Context, id string) (*models.Farm, error) {
	var farm models.Farm
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&farm)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &models.NotFoundError{Entity: "farm", ID: id}
	}
	if err != nil {
		return nil, dependencyErr("find farm", err)
	}
	return &farm, nil
}

// List returns all farms.
func (r *FarmRepo) List(ctx context.Context) ([]models.Farm, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, dependencyErr("list farms", err)
	}

	farms := []models.Farm{}
	if err := cursor.All(ctx, &farms); err != nil {
		return nil, dependencyErr("decode farms", err)
	}
	return farms, nil
}

// Update replaces the stored document for the farm's id.
func (r *FarmRepo) Update(ctx context.Context, farm models.Farm) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": farm.ID}, farm)
	if err != nil {
		return dependencyErr("update farm", err)
	}
	if result.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "farm", ID: farm.ID}
	}
	return nil
}

// Delete removes one farm.
func (r *FarmRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return dependencyErr("delete farm", err)
	}
	if result.DeletedCount == 0 {
		return &models.NotFoundError{Entity: "farm", ID: id}
	}
	return nil
}

// Count counts all farms.
func (r *FarmRepo) Count(ctx context.Context) (int, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, dependencyErr("count farms", err)
	}
	return int(count), nil
}

// PastureRepo stores pastures.
type PastureRepo struct {
	coll *mongo.Collection
}

// Insert persists a new pasture.
func (r *PastureRepo) Insert(ctx context.Context, pasture models.Pasture) error {
	if _, err := r.coll.InsertOne(ctx, pasture); err != nil {
		return dependencyErr("insert pasture", err)
	}
	return nil
}

// ListByFarm returns the pastures of one farm, or all when farmID is empty.
func (r *PastureRepo) ListByFarm(ctx context.Context, farmID string) ([]models.Pasture, error) {
	filter := bson.M{}
	if farmID != "" {
		filter["farm_id"] = farmID
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, dependencyErr("list pastures", err)
	}

	pastures := []models.Pasture{}
	if err := cursor.All(ctx, &pastures); err != nil {
		return nil, dependencyErr("decode pastures", err)
	}
	return pastures, nil
}
