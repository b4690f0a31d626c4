package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/manea/internal/domain/models"
)

// AlertRepo stores alerts.
type AlertRepo struct {
	coll *mongo.Collection
}

// Insert persists a new alert.
func (r *AlertRepo) Insert(ctx context.Context, alert models.Alert) error {
	if _, err := r.coll.InsertOne(ctx, alert); err != nil {
		return dependencyErr("insert alert", err)
	}
	return nil
}

// FindByID fetches one alert by its id.
func (r *AlertRepo) FindByID(ctx context.Context, id string) (*models.Alert, error) {
	var alert models.Alert
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&alert)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &models.NotFoundError{Entity: "alert", ID: id}
	}
	if err != nil {
		return nil, dependencyErr("find alert", err)
	}
	return &alert, nil
}

// List returns alerts ordered by severity descending, optionally filtered by
// the active flag.
func (r *AlertRepo) List(ctx context.Context, active *bool) ([]models.Alert, error) {
	filter := bson.M{}
	if active != nil {
		filter["active"] = *active
	}

	opts := options.Find().SetSort(bson.D{{Key: "severity", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, dependencyErr("list alerts", err)
	}

	alerts := []models.Alert{}
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, dependencyErr("decode alerts", err)
	}
	return alerts, nil
}

// Update replaces the stored document for the alert's id.
func (r *AlertRepo) Update(ctx context.Context, alert models.Alert) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": alert.ID}, alert)
	if err != nil {
		return dependencyErr("update alert", err)
	}
	if result.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "alert", ID: alert.ID}
	}
	return nil
}

// CountActive counts alerts whose active flag is set.
func (r *AlertRepo) CountActive(ctx context.Context) (int, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"active": true})
	if err != nil {
		return 0, dependencyErr("count active alerts", err)
	}
	return int(count), nil
}

// DeleteByAnimal removes all alerts of one animal. Used only by the
// animal-delete cascade; alerts are otherwise never deleted.
func (r *AlertRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"animal_id": animalID}); err != nil {
		return dependencyErr("delete alerts", err)
	}
	return nil
}

// ReportRepo stores nightly herd report snapshots.
type ReportRepo struct {
	coll *mongo.Collection
}

// Insert persists a herd report snapshot.
func (r *ReportRepo) Insert(ctx context.Context, report models.HerdReport) error {
	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return dependencyErr("insert herd report", err)
	}
	return nil
}
