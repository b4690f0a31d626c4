// Package repository defines the persistence contracts consumed by the
// services. Implementations must report "not found" with
// models.NotFoundError; list operations return empty slices, never an error,
// when nothing matches.
package repository

import (
	"context"

	"github.com/mamadbah2/manea/internal/domain/models"
)

// UserRepository stores principals and their credentials. The password hash
// is handled out-of-struct so it never leaks through models.User.
type UserRepository interface {
	Insert(ctx context.Context, user models.User, passwordHash string) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, string, error)
	List(ctx context.Context) ([]models.User, error)
}

// FarmRepository stores farms.
type FarmRepository interface {
	Insert(ctx context.Context, farm models.Farm) error
	FindByID(ctx context.Context, id string) (*models.Farm, error)
	List(ctx context.Context) ([]models.Farm, error)
	Update(ctx context.Context, farm models.Farm) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// PastureRepository stores pastures.
type PastureRepository interface {
	Insert(ctx context.Context, pasture models.Pasture) error
	ListByFarm(ctx context.Context, farmID string) ([]models.Pasture, error)
}

// AnimalRepository stores animals and serves the herd-level groupings the
// dashboard needs.
type AnimalRepository interface {
	Insert(ctx context.Context, animal models.Animal) error
	FindByID(ctx context.Context, id string) (*models.Animal, error)
	FindByTag(ctx context.Context, farmID, tagNumber string) (*models.Animal, error)
	FindByToken(ctx context.Context, token string) (*models.Animal, error)
	List(ctx context.Context, farmID string) ([]models.Animal, error)
	Update(ctx context.Context, animal models.Animal) error
	UpdateWeight(ctx context.Context, id string, weightKg float64) error
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)
	CountActiveByCategory(ctx context.Context) (map[models.Category]int, error)
	CountActiveBySaleStatus(ctx context.Context) (map[models.SaleStatus]int, error)
}

// MedicalRepository stores immutable medical events.
type MedicalRepository interface {
	Insert(ctx context.Context, event models.MedicalEvent) error
	ListByAnimal(ctx context.Context, animalID string, limit int) ([]models.MedicalEvent, error)
	DeleteByAnimal(ctx context.Context, animalID string) error
}

// MilkRepository stores milk records.
type MilkRepository interface {
	Insert(ctx context.Context, record models.MilkRecord) error
	FindByAnimalAndDate(ctx context.Context, animalID, recordDate string) (*models.MilkRecord, error)
	ListByAnimal(ctx context.Context, animalID string, limit int) ([]models.MilkRecord, error)
	SumLitersSince(ctx context.Context, minDate string) (float64, error)
	DeleteByAnimal(ctx context.Context, animalID string) error
}

// WeightRepository stores weight records.
type WeightRepository interface {
	Insert(ctx context.Context, record models.WeightRecord) error
	ListByAnimal(ctx context.Context, animalID string, limit int) ([]models.WeightRecord, error)
	DeleteByAnimal(ctx context.Context, animalID string) error
}

// AlertRepository stores alerts.
type AlertRepository interface {
	Insert(ctx context.Context, alert models.Alert) error
	FindByID(ctx context.Context, id string) (*models.Alert, error)
	List(ctx context.Context, active *bool) ([]models.Alert, error)
	Update(ctx context.Context, alert models.Alert) error
	CountActive(ctx context.Context) (int, error)
	DeleteByAnimal(ctx context.Context, animalID string) error
}

// ReportRepository stores nightly herd report snapshots.
type ReportRepository interface {
	Insert(ctx context.Context, report models.HerdReport) error
}
