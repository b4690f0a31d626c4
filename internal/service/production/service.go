// Package production records milk and weight samples and derives the fields
// that depend on an animal's history.
package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/repository"
)

const dateLayout = "2006-01-02"

// Dispatcher consumes domain events emitted after entity writes.
type Dispatcher interface {
	Dispatch(ctx context.Context, event models.Event) error
}

// Service implements production record writes.
type Service struct {
	animals repository.AnimalRepository
	milk    repository.MilkRepository
	weights repository.WeightRepository
	engine  Dispatcher
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a production service instance.
func NewService(animals repository.AnimalRepository, milk repository.MilkRepository, weights repository.WeightRepository, engine Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		animals: animals,
		milk:    milk,
		weights: weights,
		engine:  engine,
		logger:  logger,
		now:     time.Now,
	}
}

// MilkInput carries the caller-settable attributes of a milk record.
type MilkInput struct {
	AnimalID     string
	RecordDate   string
	Liters       float64
	FatPct       *float64
	ProteinPct   *float64
	QualityGrade string
}

// AddMilkRecord persists a milk sample. At most one record may exist per
// animal and date. The anomaly check runs after the write and can never
// fail it.
func (s *Service) AddMilkRecord(ctx context.Context, principalID string, input MilkInput) (*models.MilkRecord, error) {
	if err := validDate("record_date", input.RecordDate); err != nil {
		return nil, err
	}
	if input.Liters <= 0 {
		return nil, &models.ValidationError{Field: "liters", Reason: "must be positive"}
	}

	if _, err := s.animals.FindByID(ctx, input.AnimalID); err != nil {
		return nil, err
	}

	if _, err := s.milk.FindByAnimalAndDate(ctx, input.AnimalID, input.RecordDate); err == nil {
		return nil, &models.DuplicateError{Entity: "milk record", Key: fmt.Sprintf("%s on %s", input.AnimalID, input.RecordDate)}
	} else if !models.IsNotFound(err) {
		return nil, err
	}

	record := models.MilkRecord{
		ID:           uuid.NewString(),
		AnimalID:     input.AnimalID,
		RecordDate:   input.RecordDate,
		Liters:       input.Liters,
		FatPct:       input.FatPct,
		ProteinPct:   input.ProteinPct,
		QualityGrade: input.QualityGrade,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.milk.Insert(ctx, record); err != nil {
		return nil, err
	}

	s.dispatch(ctx, models.MilkRecordAdded{Record: record, PrincipalID: principalID})
	return &record, nil
}

// ListMilkRecords returns the animal's milk records, newest first.
func (s *Service) ListMilkRecords(ctx context.Context, animalID string, limit int) ([]models.MilkRecord, error) {
	return s.milk.ListByAnimal(ctx, animalID, limit)
}

// WeightInput carries the caller-settable attributes of a weight record.
// GainKg may be left nil to have the gain computed from the previous
// weighing.
type WeightInput struct {
	AnimalID     string
	RecordDate   string
	WeightKg     float64
	GainKg       *float64
	FeedingNotes string
}

// AddWeightRecord persists a weighing. When the caller supplied no gain, it
// is derived from the most recent prior record; with no prior record the
// gain stays unset. The animal's current weight is updated by the rules
// engine after the write.
func (s *Service) AddWeightRecord(ctx context.Context, principalID string, input WeightInput) (*models.WeightRecord, error) {
	if err := validDate("record_date", input.RecordDate); err != nil {
		return nil, err
	}
	if input.WeightKg <= 0 {
		return nil, &models.ValidationError{Field: "weight_kg", Reason: "must be positive"}
	}

	if _, err := s.animals.FindByID(ctx, input.AnimalID); err != nil {
		return nil, err
	}

	gain := input.GainKg
	if gain == nil {
		prior, err := s.weights.ListByAnimal(ctx, input.AnimalID, 1)
		if err != nil {
			return nil, err
		}
		if len(prior) > 0 {
			delta := input.WeightKg - prior[0].WeightKg
			gain = &delta
		}
	}

	record := models.WeightRecord{
		ID:           uuid.NewString(),
		AnimalID:     input.AnimalID,
		RecordDate:   input.RecordDate,
		WeightKg:     input.WeightKg,
		GainKg:       gain,
		FeedingNotes: input.FeedingNotes,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.weights.Insert(ctx, record); err != nil {
		return nil, err
	}

	s.dispatch(ctx, models.WeightRecordAdded{Record: record, PrincipalID: principalID})
	return &record, nil
}

// ListWeightRecords returns the animal's weight records, newest first.
func (s *Service) ListWeightRecords(ctx context.Context, animalID string, limit int) ([]models.WeightRecord, error) {
	return s.weights.ListByAnimal(ctx, animalID, limit)
}

func (s *Service) dispatch(ctx context.Context, event models.Event) {
	if s.engine == nil {
		return
	}
	if err := s.engine.Dispatch(ctx, event); err != nil {
		s.logger.Warn("rule evaluation failed", zap.String("event", event.EventName()), zap.Error(err))
	}
}

func validDate(field, value string) error {
	if value == "" {
		return &models.ValidationError{Field: field, Reason: "must not be empty"}
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return &models.ValidationError{Field: field, Reason: "must use the YYYY-MM-DD layout"}
	}
	return nil
}
