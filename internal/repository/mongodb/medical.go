package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/manea/internal/domain/models"
)

// MedicalRepo stores medical events. Events are insert-only; the store
// exposes no update path for them.
type MedicalRepo struct {
	coll *mongo.Collection
}

// Insert persists a new medical event.
func (r *MedicalRepo) Insert(ctx context.Context, event models.MedicalEvent) error {
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return dependencyErr("insert medical event", err)
	}
	return nil
}

// ListByAnimal returns the animal's medical events ordered by event date
// descending. A limit of 0 means no limit; an empty animalID returns events
// for all animals.
func (r *MedicalRepo) ListByAnimal(ctx context.Context, animalID string, limit int) ([]models.MedicalEvent, error) {
	filter := bson.M{}
	if animalID != "" {
		filter["animal_id"] = animalID
	}

	opts := options.Find().SetSort(bson.D{{Key: "event_date", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, dependencyErr("list medical events", err)
	}

	events := []models.MedicalEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, dependencyErr("decode medical events", err)
	}
	return events, nil
}

// DeleteByAnimal removes all medical events of one animal. Used by the
// animal-delete cascade.
func (r *MedicalRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"animal_id": animalID}); err != nil {
		return dependencyErr("delete medical events", err)
	}
	return nil
}
