// Package medical records veterinary events. Events are immutable; a
// next-due date on an event makes the rules engine derive a follow-up
// alert.
package medical

import (
	"context"
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

// Service implements medical event recording.
type Service struct {
	medical repository.MedicalRepository
	engine  Dispatcher
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a medical service instance.
func NewService(medical repository.MedicalRepository, engine Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		medical: medical,
		engine:  engine,
		logger:  logger,
		now:     time.Now,
	}
}

// EventInput carries the caller-settable attributes of a medical event.
type EventInput struct {
	AnimalID    string
	Kind        models.MedicalEventKind
	Description string
	Medication  string
	Dose        string
	PerformedBy string
	EventDate   string
	NextDueDate string
	Cost        *float64
}

// RecordEvent persists a medical event and hands it to the rules engine.
// The animal reference is deliberately not verified here: the follow-up rule
// tolerates an unresolvable animal, and the event itself is valid history
// either way.
func (s *Service) RecordEvent(ctx context.Context, principalID string, input EventInput) (*models.MedicalEvent, error) {
	if input.AnimalID == "" {
		return nil, &models.ValidationError{Field: "animal_id", Reason: "must not be empty"}
	}
	if err := validDate("event_date", input.EventDate); err != nil {
		return nil, err
	}
	if input.NextDueDate != "" {
		if err := validDate("next_due_date", input.NextDueDate); err != nil {
			return nil, err
		}
	}

	event := models.MedicalEvent{
		ID:          uuid.NewString(),
		AnimalID:    input.AnimalID,
		Kind:        input.Kind,
		Description: input.Description,
		Medication:  input.Medication,
		Dose:        input.Dose,
		PerformedBy: input.PerformedBy,
		EventDate:   input.EventDate,
		NextDueDate: input.NextDueDate,
		Cost:        input.Cost,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.medical.Insert(ctx, event); err != nil {
		return nil, err
	}

	if s.engine != nil {
		if err := s.engine.Dispatch(ctx, models.MedicalEventRecorded{Event: event, PrincipalID: principalID}); err != nil {
			s.logger.Warn("rule evaluation failed", zap.String("event_id", event.ID), zap.Error(err))
		}
	}

	return &event, nil
}

// ListEvents returns medical events ordered by event date descending,
// optionally scoped to one animal.
func (s *Service) ListEvents(ctx context.Context, animalID string, limit int) ([]models.MedicalEvent, error) {
	return s.medical.ListByAnimal(ctx, animalID, limit)
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
