package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/manea/internal/domain/models"
)

// MilkRepo stores milk records.
type MilkRepo struct {
	coll *mongo.Collection
}

// Insert persists a new milk record.
func (r *MilkRepo) Insert(ctx context.Context, record models.MilkRecord) error {
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return dependencyErr("insert milk record", err)
	}
	return nil
}

// FindByAnimalAndDate fetches the record for one animal and one date, which
// backs the one-record-per-day invariant.
func (r *MilkRepo) FindByAnimalAndDate(ctx context.Context, animalID, recordDate string) (*models.MilkRecord, error) {
	var record models.MilkRecord
	err := r.coll.FindOne(ctx, bson.M{"animal_id": animalID, "record_date": recordDate}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &models.NotFoundError{Entity: "milk record", ID: recordDate}
	}
	if err != nil {
		return nil, dependencyErr("find milk record", err)
	}
	return &record, nil
}

// ListByAnimal returns the animal's milk records ordered by record date
// descending. A limit of 0 means no limit.
func (r *MilkRepo) ListByAnimal(ctx context.Context, animalID string, limit int) ([]models.MilkRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "record_date", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"animal_id": animalID}, opts)
	if err != nil {
		return nil, dependencyErr("list milk records", err)
	}

	records := []models.MilkRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, dependencyErr("decode milk records", err)
	}
	return records, nil
}

// SumLitersSince sums liters over records whose date is on or after minDate.
// Dates are ISO strings, so the comparison is date-granular by string order.
func (r *MilkRepo) SumLitersSince(ctx context.Context, minDate string) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"record_date": bson.M{"$gte": minDate}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$liters"}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, dependencyErr("sum milk liters", err)
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, dependencyErr("decode milk sum", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// DeleteByAnimal removes all milk records of one animal.
func (r *MilkRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"animal_id": animalID}); err != nil {
		return dependencyErr("delete milk records", err)
	}
	return nil
}

// WeightRepo stores weight records.
type WeightRepo struct {
	coll *mongo.Collection
}

// Insert persists a new weight record.
func (r *WeightRepo) Insert(ctx context.Context, record models.WeightRecord) error {
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return dependencyErr("insert weight record", err)
	}
	return nil
}

// ListByAnimal returns the animal's weight records ordered by record date
// descending. A limit of 0 means no limit.
func (r *WeightRepo) ListByAnimal(ctx context.Context, animalID string, limit int) ([]models.WeightRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "record_date", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"animal_id": animalID}, opts)
	if err != nil {
		return nil, dependencyErr("list weight records", err)
	}

	records := []models.WeightRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, dependencyErr("decode weight records", err)
	}
	return records, nil
}

// DeleteByAnimal removes all weight records of one animal.
func (r *WeightRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"animal_id": animalID}); err != nil {
		return dependencyErr("delete weight records", err)
	}
	return nil
}
