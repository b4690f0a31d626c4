// Package mongodb implements the repository contracts on top of MongoDB.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/manea/internal/domain/models"
)

// Collection names.
const (
	collUsers    = "users"
	collFarms    = "farms"
	collPastures = "pastures"
	collAnimals  = "animals"
	collMedical  = "medical_events"
	collMilk     = "milk_records"
	collWeights  = "weight_records"
	collAlerts   = "alerts"
	collReports  = "herd_reports"
)

// Store owns the MongoDB client and hands out per-entity repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection with a ping.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Users returns the user repository.
func (s *Store) Users() *UserRepo { return &UserRepo{coll: s.db.Collection(collUsers)} }

// Farms returns the farm repository.
func (s *Store) Farms() *FarmRepo { return &FarmRepo{coll: s.db.Collection(collFarms)} }

// Pastures returns the pasture repository.
func (s *Store) Pastures() *PastureRepo { return &PastureRepo{coll: s.db.Collection(collPastures)} }

// Animals returns the animal repository.
func (s *Store) Animals() *AnimalRepo { return &AnimalRepo{coll: s.db.Collection(collAnimals)} }

// Medical returns the medical event repository.
func (s *Store) Medical() *MedicalRepo { return &MedicalRepo{coll: s.db.Collection(collMedical)} }

// Milk returns the milk record repository.
func (s *Store) Milk() *MilkRepo { return &MilkRepo{coll: s.db.Collection(collMilk)} }

// Weights returns the weight record repository.
func (s *Store) Weights() *WeightRepo { return &WeightRepo{coll: s.db.Collection(collWeights)} }

// Alerts returns the alert repository.
func (s *Store) Alerts() *AlertRepo { return &AlertRepo{coll: s.db.Collection(collAlerts)} }

// Reports returns the herd report repository.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{coll: s.db.Collection(collReports)} }

// dependencyErr wraps driver failures into the domain taxonomy.
func dependencyErr(op string, err error) error {
	return &models.DependencyError{Op: op, Err: err}
}
