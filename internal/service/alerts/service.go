// Package alerts manages user-raised alerts and the resolve lifecycle.
package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/repository"
)

// Service implements alert creation and resolution.
type Service struct {
	animals repository.AnimalRepository
	alerts  repository.AlertRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires an alerts service instance.
func NewService(animals repository.AnimalRepository, alerts repository.AlertRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		animals: animals,
		alerts:  alerts,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateInput carries the caller-settable attributes of a manual alert.
type CreateInput struct {
	AnimalID string
	Kind     models.AlertKind
	Severity int
	Title    string
	Message  string
	DueDate  string
}

// Create raises a manual alert against an existing animal, attributed to
// the acting principal.
func (s *Service) Create(ctx context.Context, principalID string, input CreateInput) (*models.Alert, error) {
	if input.AnimalID == "" {
		return nil, &models.ValidationError{Field: "animal_id", Reason: "must not be empty"}
	}
	if input.Severity < models.SeverityLow || input.Severity > models.SeverityHigh {
		return nil, &models.ValidationError{Field: "severity", Reason: "must be 1, 2 or 3"}
	}

	if _, err := s.animals.FindByID(ctx, input.AnimalID); err != nil {
		return nil, err
	}

	alert := models.Alert{
		ID:        uuid.NewString(),
		AnimalID:  input.AnimalID,
		Kind:      input.Kind,
		Severity:  input.Severity,
		Title:     input.Title,
		Message:   input.Message,
		DueDate:   input.DueDate,
		Active:    true,
		CreatedBy: principalID,
		CreatedAt: s.now().UTC(),
	}

	if err := s.alerts.Insert(ctx, alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// List returns alerts ordered by severity descending, optionally filtered by
// the active flag.
func (s *Service) List(ctx context.Context, active *bool) ([]models.Alert, error) {
	return s.alerts.List(ctx, active)
}

// Resolve closes an alert exactly once, recording the resolver and the
// resolution instant. Resolving an already resolved alert is rejected.
func (s *Service) Resolve(ctx context.Context, principalID, id string) (*models.Alert, error) {
	alert, err := s.alerts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !alert.Active {
		return nil, &models.ValidationError{Field: "active", Reason: "alert is already resolved"}
	}

	resolvedAt := s.now().UTC()
	alert.Active = false
	alert.ResolvedAt = &resolvedAt
	alert.ResolvedBy = principalID

	if err := s.alerts.Update(ctx, *alert); err != nil {
		return nil, err
	}

	s.logger.Info("alert resolved", zap.String("alert_id", id), zap.String("resolved_by", principalID))
	return alert, nil
}
