// Package herd manages farms, pastures and animal identity: registration
// with per-farm tag uniqueness, the public lookup token, and the cascading
// cleanup when an animal is removed.
package herd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/repository"
)

const (
	publicMedicalLimit    = 5
	publicProductionLimit = 10
)

// Dispatcher consumes domain events emitted after entity writes.
type Dispatcher interface {
	Dispatch(ctx context.Context, event models.Event) error
}

// Service implements farm and animal management.
type Service struct {
	farms    repository.FarmRepository
	pastures repository.PastureRepository
	animals  repository.AnimalRepository
	medical  repository.MedicalRepository
	milk     repository.MilkRepository
	weights  repository.WeightRepository
	alerts   repository.AlertRepository
	engine   Dispatcher
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a herd service instance.
func NewService(
	farms repository.FarmRepository,
	pastures repository.PastureRepository,
	animals repository.AnimalRepository,
	medical repository.MedicalRepository,
	milk repository.MilkRepository,
	weights repository.WeightRepository,
	alerts repository.AlertRepository,
	engine Dispatcher,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		farms:    farms,
		pastures: pastures,
		animals:  animals,
		medical:  medical,
		milk:     milk,
		weights:  weights,
		alerts:   alerts,
		engine:   engine,
		logger:   logger,
		now:      time.Now,
	}
}

// AnimalInput carries the caller-settable attributes of an animal. The farm
// id is fixed at registration and the public token is never caller-settable.
type AnimalInput struct {
	FarmID         string
	TagNumber      string
	OfficialEarTag string
	Name           string
	Sex            models.Sex
	Breed          string
	BirthDate      string
	WeightKg       *float64
	Category       models.Category
	Lifecycle      models.LifecycleStatus
	SaleStatus     models.SaleStatus
	Price          *float64
	PhotoURL       string
	ContactName    string
	ContactPhone   string
	SireID         string
	DamID          string
}

// RegisterAnimal validates tag uniqueness within the farm, assigns the id
// and public lookup token, persists the animal and feeds the registration
// event to the rules engine. A failing rule never fails the registration.
func (s *Service) RegisterAnimal(ctx context.Context, principalID string, input AnimalInput) (*models.Animal, error) {
	if input.FarmID == "" {
		return nil, &models.ValidationError{Field: "farm_id", Reason: "must not be empty"}
	}
	if input.TagNumber == "" {
		return nil, &models.ValidationError{Field: "tag_number", Reason: "must not be empty"}
	}

	if _, err := s.farms.FindByID(ctx, input.FarmID); err != nil {
		return nil, err
	}

	if err := s.ensureTagFree(ctx, input.FarmID, input.TagNumber); err != nil {
		return nil, err
	}

	animal := models.Animal{
		ID:             uuid.NewString(),
		FarmID:         input.FarmID,
		TagNumber:      input.TagNumber,
		OfficialEarTag: input.OfficialEarTag,
		Name:           input.Name,
		Sex:            input.Sex,
		Breed:          input.Breed,
		BirthDate:      input.BirthDate,
		WeightKg:       input.WeightKg,
		Category:       input.Category,
		Lifecycle:      input.Lifecycle,
		SaleStatus:     input.SaleStatus,
		Price:          input.Price,
		PhotoURL:       input.PhotoURL,
		ContactName:    input.ContactName,
		ContactPhone:   input.ContactPhone,
		SireID:         input.SireID,
		DamID:          input.DamID,
		PublicToken:    uuid.NewString(),
		CreatedAt:      s.now().UTC(),
	}
	if animal.Lifecycle == "" {
		animal.Lifecycle = models.LifecycleActive
	}
	if animal.SaleStatus == "" {
		animal.SaleStatus = models.SaleAvailable
	}

	if err := s.animals.Insert(ctx, animal); err != nil {
		return nil, err
	}

	s.dispatch(ctx, models.AnimalRegistered{Animal: animal, PrincipalID: principalID})

	s.logger.Info("animal registered",
		zap.String("animal_id", animal.ID),
		zap.String("farm_id", animal.FarmID),
		zap.String("tag_number", animal.TagNumber))
	return &animal, nil
}

// GetAnimal fetches one animal by id.
func (s *Service) GetAnimal(ctx context.Context, id string) (*models.Animal, error) {
	return s.animals.FindByID(ctx, id)
}

// ListAnimals returns all animals, optionally filtered by farm.
func (s *Service) ListAnimals(ctx context.Context, farmID string) ([]models.Animal, error) {
	return s.animals.List(ctx, farmID)
}

// UpdateAnimal applies the input to an existing animal. The owning farm is
// immutable; a changed tag number is re-checked for uniqueness; the public
// token and the current weight are preserved as-is.
func (s *Service) UpdateAnimal(ctx context.Context, id string, input AnimalInput) (*models.Animal, error) {
	existing, err := s.animals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FarmID != "" && input.FarmID != existing.FarmID {
		return nil, &models.ValidationError{Field: "farm_id", Reason: "cannot be changed after registration"}
	}

	if input.TagNumber != "" && input.TagNumber != existing.TagNumber {
		if err := s.ensureTagFree(ctx, existing.FarmID, input.TagNumber); err != nil {
			return nil, err
		}
		existing.TagNumber = input.TagNumber
	}

	existing.OfficialEarTag = input.OfficialEarTag
	existing.Name = input.Name
	if input.Sex != "" {
		existing.Sex = input.Sex
	}
	existing.Breed = input.Breed
	existing.BirthDate = input.BirthDate
	if input.Category != "" {
		existing.Category = input.Category
	}
	if input.Lifecycle != "" {
		existing.Lifecycle = input.Lifecycle
	}
	if input.SaleStatus != "" {
		existing.SaleStatus = input.SaleStatus
	}
	existing.Price = input.Price
	existing.PhotoURL = input.PhotoURL
	existing.ContactName = input.ContactName
	existing.ContactPhone = input.ContactPhone
	existing.SireID = input.SireID
	existing.DamID = input.DamID

	if err := s.animals.Update(ctx, *existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteAnimal removes an animal and cascades to its medical events,
// production records and alerts. The cascade is a best-effort sequence, not
// a transaction.
func (s *Service) DeleteAnimal(ctx context.Context, id string) error {
	if _, err := s.animals.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.medical.DeleteByAnimal(ctx, id); err != nil {
		return fmt.Errorf("cascade medical events: %w", err)
	}
	if err := s.milk.DeleteByAnimal(ctx, id); err != nil {
		return fmt.Errorf("cascade milk records: %w", err)
	}
	if err := s.weights.DeleteByAnimal(ctx, id); err != nil {
		return fmt.Errorf("cascade weight records: %w", err)
	}
	if err := s.alerts.DeleteByAnimal(ctx, id); err != nil {
		return fmt.Errorf("cascade alerts: %w", err)
	}

	return s.animals.Delete(ctx, id)
}

// PublicSummary resolves a public lookup token into the read-only animal
// summary served to QR scans. It is the one read path that requires no
// principal.
func (s *Service) PublicSummary(ctx context.Context, token string) (*models.PublicAnimalSummary, error) {
	animal, err := s.animals.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	farm, err := s.farms.FindByID(ctx, animal.FarmID)
	if err != nil {
		return nil, err
	}

	events, err := s.medical.ListByAnimal(ctx, animal.ID, publicMedicalLimit)
	if err != nil {
		return nil, err
	}

	summary := &models.PublicAnimalSummary{
		Animal:        *animal,
		Farm:          *farm,
		MedicalEvents: events,
	}

	if animal.IsDairy() {
		milk, err := s.milk.ListByAnimal(ctx, animal.ID, publicProductionLimit)
		if err != nil {
			return nil, err
		}
		summary.MilkRecords = milk
	}
	if animal.IsBeef() {
		weights, err := s.weights.ListByAnimal(ctx, animal.ID, publicProductionLimit)
		if err != nil {
			return nil, err
		}
		summary.WeightRecords = weights
	}

	return summary, nil
}

// FarmInput carries the caller-settable attributes of a farm.
type FarmInput struct {
	Name         string
	CountryCode  string
	Location     *models.GeoPoint
	Boundary     []models.GeoPoint
	AreaHa       *float64
	ContactName  string
	ContactPhone string
}

// CreateFarm persists a new farm.
func (s *Service) CreateFarm(ctx context.Context, input FarmInput) (*models.Farm, error) {
	if input.Name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	farm := models.Farm{
		ID:           uuid.NewString(),
		Name:         input.Name,
		CountryCode:  input.CountryCode,
		Location:     input.Location,
		Boundary:     input.Boundary,
		AreaHa:       input.AreaHa,
		ContactName:  input.ContactName,
		ContactPhone: input.ContactPhone,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.farms.Insert(ctx, farm); err != nil {
		return nil, err
	}
	return &farm, nil
}

// GetFarm fetches one farm by id.
func (s *Service) GetFarm(ctx context.Context, id string) (*models.Farm, error) {
	return s.farms.FindByID(ctx, id)
}

// ListFarms returns all farms.
func (s *Service) ListFarms(ctx context.Context) ([]models.Farm, error) {
	return s.farms.List(ctx)
}

// UpdateFarm applies the input to an existing farm.
func (s *Service) UpdateFarm(ctx context.Context, id string, input FarmInput) (*models.Farm, error) {
	existing, err := s.farms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		existing.Name = input.Name
	}
	if input.CountryCode != "" {
		existing.CountryCode = input.CountryCode
	}
	existing.Location = input.Location
	existing.Boundary = input.Boundary
	existing.AreaHa = input.AreaHa
	existing.ContactName = input.ContactName
	existing.ContactPhone = input.ContactPhone

	if err := s.farms.Update(ctx, *existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteFarm removes one farm. Animals are left untouched; removing them
// first is the caller's responsibility.
func (s *Service) DeleteFarm(ctx context.Context, id string) error {
	return s.farms.Delete(ctx, id)
}

// PastureInput carries the caller-settable attributes of a pasture.
type PastureInput struct {
	FarmID  string
	Name    string
	AreaHa  *float64
	Polygon []models.GeoPoint
}

// CreatePasture persists a new pasture within a farm.
func (s *Service) CreatePasture(ctx context.Context, input PastureInput) (*models.Pasture, error) {
	if input.FarmID == "" {
		return nil, &models.ValidationError{Field: "farm_id", Reason: "must not be empty"}
	}
	if input.Name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if _, err := s.farms.FindByID(ctx, input.FarmID); err != nil {
		return nil, err
	}

	pasture := models.Pasture{
		ID:        uuid.NewString(),
		FarmID:    input.FarmID,
		Name:      input.Name,
		AreaHa:    input.AreaHa,
		Polygon:   input.Polygon,
		CreatedAt: s.now().UTC(),
	}

	if err := s.pastures.Insert(ctx, pasture); err != nil {
		return nil, err
	}
	return &pasture, nil
}

// ListPastures returns the pastures of one farm, or all when farmID is
// empty.
func (s *Service) ListPastures(ctx context.Context, farmID string) ([]models.Pasture, error) {
	return s.pastures.ListByFarm(ctx, farmID)
}

func (s *Service) ensureTagFree(ctx context.Context, farmID, tagNumber string) error {
	_, err := s.animals.FindByTag(ctx, farmID, tagNumber)
	if err == nil {
		return &models.DuplicateError{Entity: "animal", Key: fmt.Sprintf("tag %s in farm %s", tagNumber, farmID)}
	}
	if !models.IsNotFound(err) {
		return err
	}
	return nil
}

func (s *Service) dispatch(ctx context.Context, event models.Event) {
	if s.engine == nil {
		return
	}
	if err := s.engine.Dispatch(ctx, event); err != nil {
		s.logger.Warn("rule evaluation failed", zap.String("event", event.EventName()), zap.Error(err))
	}
}
