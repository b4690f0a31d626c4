// Package rules is the monitoring and alerting engine. Entity writes emit
// typed domain events; the engine consumes each event and runs the single
// rule bound to it, materializing follow-up obligations and anomaly findings
// as alert records. Rules never deliver notifications and never retry.
package rules

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

// Onboarding checklist offsets, counted from the registration instant.
const (
	vaccinationDueDays = 7
	fatteningDueDays   = 15
	weightCheckDueDays = 30
)

// lowProductionFactor is the fraction of the trailing baseline below which a
// milk sample counts as anomalous.
const lowProductionFactor = 0.8

// anomalyWindow and anomalyMinRecords bound the trailing baseline: the
// detector looks at up to anomalyWindow recent records and stays silent
// below anomalyMinRecords of history.
const (
	anomalyWindow     = 10
	anomalyMinRecords = 5
)

// Engine evaluates domain events against the alerting rules.
type Engine struct {
	animals repository.AnimalRepository
	milk    repository.MilkRepository
	alerts  repository.AlertRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewEngine wires a rules engine instance.
func NewEngine(animals repository.AnimalRepository, milk repository.MilkRepository, alerts repository.AlertRepository, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		animals: animals,
		milk:    milk,
		alerts:  alerts,
		logger:  logger,
		now:     time.Now,
	}
}

// Dispatch routes one event to its rule. Callers invoke it after the
// principal write has succeeded; a failing rule must not retroactively fail
// that write, so callers log the returned error instead of propagating it.
func (e *Engine) Dispatch(ctx context.Context, event models.Event) error {
	e.logger.Debug("dispatching event", zap.String("event", event.EventName()))

	switch ev := event.(type) {
	case models.AnimalRegistered:
		return e.onboardingChecklist(ctx, ev)
	case models.MedicalEventRecorded:
		return e.medicalFollowUp(ctx, ev)
	case models.MilkRecordAdded:
		return e.lowProductionCheck(ctx, ev)
	case models.WeightRecordAdded:
		return e.propagateCurrentWeight(ctx, ev)
	default:
		return fmt.Errorf("no rule bound to event %s", event.EventName())
	}
}

// onboardingChecklist creates the fixed set of alerts owed to every newly
// registered animal: an initial vaccination for all categories, plus the
// weight follow-ups matching the production category. Dual-category animals
// get both follow-ups.
func (e *Engine) onboardingChecklist(ctx context.Context, ev models.AnimalRegistered) error {
	animal := ev.Animal
	registeredAt := e.now().UTC()

	checklist := []models.Alert{}

	if animal.IsDairy() {
		checklist = append(checklist, e.newAlert(animal.ID, ev.PrincipalID, models.AlertWeightCheck, models.SeverityMedium,
			"Monthly weight check",
			fmt.Sprintf("Schedule the monthly weight check for %s.", animal.DisplayName()),
			dueDate(registeredAt, weightCheckDueDays)))
	}
	if animal.IsBeef() {
		checklist = append(checklist, e.newAlert(animal.ID, ev.PrincipalID, models.AlertWeightCheck, models.SeverityMedium,
			"Fattening check",
			fmt.Sprintf("Schedule the fattening check for %s.", animal.DisplayName()),
			dueDate(registeredAt, fatteningDueDays)))
	}
	checklist = append(checklist, e.newAlert(animal.ID, ev.PrincipalID, models.AlertMedicalDue, models.SeverityHigh,
		"Initial vaccination",
		fmt.Sprintf("Initial vaccination due for %s.", animal.DisplayName()),
		dueDate(registeredAt, vaccinationDueDays)))

	for _, alert := range checklist {
		if err := e.alerts.Insert(ctx, alert); err != nil {
			return fmt.Errorf("onboarding alert %q: %w", alert.Title, err)
		}
	}

	e.logger.Info("onboarding checklist created",
		zap.String("animal_id", animal.ID),
		zap.Int("alerts", len(checklist)))
	return nil
}

// medicalFollowUp derives one follow-up alert from a medical event carrying
// a next-due date. An unresolvable animal is skipped silently: the medical
// event is already durable and must not be failed after the fact.
func (e *Engine) medicalFollowUp(ctx context.Context, ev models.MedicalEventRecorded) error {
	if ev.Event.NextDueDate == "" {
		return nil
	}

	animal, err := e.animals.FindByID(ctx, ev.Event.AnimalID)
	if err != nil {
		if models.IsNotFound(err) {
			e.logger.Debug("skip follow-up for unresolvable animal", zap.String("animal_id", ev.Event.AnimalID))
			return nil
		}
		return fmt.Errorf("resolve animal for follow-up: %w", err)
	}

	alert := e.newAlert(animal.ID, ev.PrincipalID, models.AlertMedicalDue, models.SeverityMedium,
		"Medical follow-up",
		fmt.Sprintf("%s follow-up due for %s on %s.", ev.Event.Kind, animal.DisplayName(), ev.Event.NextDueDate),
		ev.Event.NextDueDate)

	if err := e.alerts.Insert(ctx, alert); err != nil {
		return fmt.Errorf("follow-up alert: %w", err)
	}
	return nil
}

// lowProductionCheck compares a new milk sample against the trailing mean of
// the animal's recent records. The baseline excludes the most recent record
// so a sample is never judged against itself, and the rule stays silent
// until enough history exists.
func (e *Engine) lowProductionCheck(ctx context.Context, ev models.MilkRecordAdded) error {
	records, err := e.milk.ListByAnimal(ctx, ev.Record.AnimalID, anomalyWindow)
	if err != nil {
		return fmt.Errorf("load milk history: %w", err)
	}
	if len(records) < anomalyMinRecords {
		return nil
	}

	var sum float64
	for _, record := range records[1:] {
		sum += record.Liters
	}
	baseline := sum / float64(len(records)-1)

	if ev.Record.Liters >= baseline*lowProductionFactor {
		return nil
	}

	animal, err := e.animals.FindByID(ctx, ev.Record.AnimalID)
	if err != nil {
		return fmt.Errorf("resolve animal for low-production alert: %w", err)
	}

	alert := e.newAlert(animal.ID, ev.PrincipalID, models.AlertLowProduction, models.SeverityMedium,
		"Low milk production",
		fmt.Sprintf("%s produced %.1f L on %s, below the recent average of %.1f L.",
			animal.DisplayName(), ev.Record.Liters, ev.Record.RecordDate, baseline),
		"")

	if err := e.alerts.Insert(ctx, alert); err != nil {
		return fmt.Errorf("low-production alert: %w", err)
	}

	e.logger.Info("low production detected",
		zap.String("animal_id", animal.ID),
		zap.Float64("liters", ev.Record.Liters),
		zap.Float64("baseline", baseline))
	return nil
}

// propagateCurrentWeight copies the new sample's weight onto the animal's
// current-weight field. Last write wins: a back-dated sample still becomes
// the current weight.
func (e *Engine) propagateCurrentWeight(ctx context.Context, ev models.WeightRecordAdded) error {
	if err := e.animals.UpdateWeight(ctx, ev.Record.AnimalID, ev.Record.WeightKg); err != nil {
		return fmt.Errorf("propagate current weight: %w", err)
	}
	return nil
}

func (e *Engine) newAlert(animalID, principalID string, kind models.AlertKind, severity int, title, message, due string) models.Alert {
	return models.Alert{
		ID:        uuid.NewString(),
		AnimalID:  animalID,
		Kind:      kind,
		Severity:  severity,
		Title:     title,
		Message:   message,
		DueDate:   due,
		Active:    true,
		CreatedBy: principalID,
		CreatedAt: e.now().UTC(),
	}
}

func dueDate(from time.Time, days int) string {
	return from.AddDate(0, 0, days).Format(dateLayout)
}
