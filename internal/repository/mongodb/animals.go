package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/manea/internal/domain/models"
)

// AnimalRepo stores animals in the animals collection.
type AnimalRepo struct {
	coll *mongo.Collection
}

// Insert persists a new animal.
func (r *AnimalRepo) Insert(ctx context.Context, animal models.Animal) error {
	if _, err := r.coll.InsertOne(ctx, animal); err != nil {
		return dependencyErr("insert animal", err)
	}
	return nil
}

// FindByID fetches one animal by its id.
func (r *AnimalRepo) FindByID(ctx context.Context, id string) (*models.Animal, error) {
	return r.findOne(ctx, bson.M{"id": id}, id)
}

// FindByTag fetches one animal by its (farm id, tag number) pair.
func (r *AnimalRepo) FindByTag(ctx context.Context, farmID, tagNumber string) (*models.Animal, error) {
	return r.findOne(ctx, bson.M{"farm_id": farmID, "tag_number": tagNumber}, tagNumber)
}

// FindByToken fetches one animal by its public lookup token.
func (r *AnimalRepo) FindByToken(ctx context.Context, token string) (*models.Animal, error) {
	return r.findOne(ctx, bson.M{"public_token": token}, token)
}

func (r *AnimalRepo) findOne(ctx context.Context, filter bson.M, ref string) (*models.Animal, error) {
	var animal models.Animal
	err := r.coll.FindOne(ctx, filter).Decode(&animal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &models.NotFoundError{Entity: "animal", ID: ref}
	}
	if err != nil {
		return nil, dependencyErr("find animal", err)
	}
	return &animal, nil
}

// List returns all animals, optionally filtered by farm.
func (r *AnimalRepo) List(ctx context.Context, farmID string) ([]models.Animal, error) {
	filter := bson.M{}
	if farmID != "" {
		filter["farm_id"] = farmID
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, dependencyErr("list animals", err)
	}

	animals := []models.Animal{}
	if err := cursor.All(ctx, &animals); err != nil {
		return nil, dependencyErr("decode animals", err)
	}
	return animals, nil
}

// Update replaces the stored document for the animal's id.
func (r *AnimalRepo) Update(ctx context.Context, animal models.Animal) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": animal.ID}, animal)
	if err != nil {
		return dependencyErr("update animal", err)
	}
	if result.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "animal", ID: animal.ID}
	}
	return nil
}

// UpdateWeight overwrites the animal's current weight field.
func (r *AnimalRepo) UpdateWeight(ctx context.Context, id string, weightKg float64) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"weight_kg": weightKg}})
	if err != nil {
		return dependencyErr("update animal weight", err)
	}
	if result.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "animal", ID: id}
	}
	return nil
}

// Delete removes one animal. Dependent records are the caller's concern.
func (r *AnimalRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return dependencyErr("delete animal", err)
	}
	if result.DeletedCount == 0 {
		return &models.NotFoundError{Entity: "animal", ID: id}
	}
	return nil
}

// CountActive counts animals whose lifecycle status is active.
func (r *AnimalRepo) CountActive(ctx context.Context) (int, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"lifecycle": models.LifecycleActive})
	if err != nil {
		return 0, dependencyErr("count active animals", err)
	}
	return int(count), nil
}

// CountActiveByCategory groups active animals by production category.
func (r *AnimalRepo) CountActiveByCategory(ctx context.Context) (map[models.Category]int, error) {
	groups, err := r.groupActive(ctx, "$category")
	if err != nil {
		return nil, err
	}

	counts := map[models.Category]int{}
	for key, count := range groups {
		counts[models.Category(key)] = count
	}
	return counts, nil
}

// CountActiveBySaleStatus groups active animals by sale status.
func (r *AnimalRepo) CountActiveBySaleStatus(ctx context.Context) (map[models.SaleStatus]int, error) {
	groups, err := r.groupActive(ctx, "$sale_status")
	if err != nil {
		return nil, err
	}

	counts := map[models.SaleStatus]int{}
	for key, count := range groups {
		counts[models.SaleStatus(key)] = count
	}
	return counts, nil
}

func (r *AnimalRepo) groupActive(ctx context.Context, field string) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"lifecycle": models.LifecycleActive}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, dependencyErr("group animals", err)
	}

	var rows []struct {
		ID    string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, dependencyErr("decode animal groups", err)
	}

	groups := map[string]int{}
	for _, row := range rows {
		groups[row.ID] = row.Count
	}
	return groups, nil
}
