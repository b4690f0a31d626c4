package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/repository/memory"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type engineFixture struct {
	engine  *Engine
	animals *memory.AnimalRepo
	milk    *memory.MilkRepo
	alerts  *memory.AlertRepo
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	animals := memory.NewAnimalRepo()
	milk := memory.NewMilkRepo()
	alerts := memory.NewAlertRepo()

	engine := NewEngine(animals, milk, alerts, nil)
	engine.now = func() time.Time { return testNow }

	return &engineFixture{engine: engine, animals: animals, milk: milk, alerts: alerts}
}

func (f *engineFixture) seedAnimal(t *testing.T, id string, category models.Category) models.Animal {
	t.Helper()
	animal := models.Animal{
		ID:        id,
		FarmID:    "farm-1",
		TagNumber: "TAG-" + id,
		Category:  category,
		Lifecycle: models.LifecycleActive,
	}
	require.NoError(t, f.animals.Insert(context.Background(), animal))
	return animal
}

func (f *engineFixture) allAlerts(t *testing.T) []models.Alert {
	t.Helper()
	alerts, err := f.alerts.List(context.Background(), nil)
	require.NoError(t, err)
	return alerts
}

func findAlert(alerts []models.Alert, title string) *models.Alert {
	for i := range alerts {
		if alerts[i].Title == title {
			return &alerts[i]
		}
	}
	return nil
}

// TestOnboardingChecklist_Dairy verifies a dairy registration yields the
// monthly weight check and the initial vaccination.
func TestOnboardingChecklist_Dairy(t *testing.T) {
	f := newEngineFixture(t)
	animal := f.seedAnimal(t, "a1", models.CategoryDairy)

	err := f.engine.Dispatch(context.Background(), models.AnimalRegistered{Animal: animal, PrincipalID: "user-1"})
	require.NoError(t, err)

	alerts := f.allAlerts(t)
	require.Len(t, alerts, 2, "dairy onboarding should create two alerts")

	weight := findAlert(alerts, "Monthly weight check")
	require.NotNil(t, weight, "monthly weight check should exist")
	assert.Equal(t, models.AlertWeightCheck, weight.Kind)
	assert.Equal(t, models.SeverityMedium, weight.Severity)
	assert.Equal(t, "2026-03-31", weight.DueDate, "weight check should be due 30 days out")
	assert.True(t, weight.Active)
	assert.Equal(t, "user-1", weight.CreatedBy)

	vaccination := findAlert(alerts, "Initial vaccination")
	require.NotNil(t, vaccination, "initial vaccination should exist")
	assert.Equal(t, models.AlertMedicalDue, vaccination.Kind)
	assert.Equal(t, models.SeverityHigh, vaccination.Severity)
	assert.Equal(t, "2026-03-08", vaccination.DueDate, "vaccination should be due 7 days out")
}

// TestOnboardingChecklist_Beef verifies a beef registration yields the
// fattening check instead of the monthly weight check.
func TestOnboardingChecklist_Beef(t *testing.T) {
	f := newEngineFixture(t)
	animal := f.seedAnimal(t, "a1", models.CategoryBeef)

	err := f.engine.Dispatch(context.Background(), models.AnimalRegistered{Animal: animal, PrincipalID: "user-1"})
	require.NoError(t, err)

	alerts := f.allAlerts(t)
	require.Len(t, alerts, 2, "beef onboarding should create two alerts")

	fattening := findAlert(alerts, "Fattening check")
	require.NotNil(t, fattening, "fattening check should exist")
	assert.Equal(t, models.AlertWeightCheck, fattening.Kind)
	assert.Equal(t, models.SeverityMedium, fattening.Severity)
	assert.Equal(t, "2026-03-16", fattening.DueDate, "fattening check should be due 15 days out")

	assert.Nil(t, findAlert(alerts, "Monthly weight check"),
		"beef animals should not get the dairy weight check")
	assert.NotNil(t, findAlert(alerts, "Initial vaccination"))
}

// TestOnboardingChecklist_Dual verifies dual-category animals get both
// weight follow-ups plus the vaccination.
func TestOnboardingChecklist_Dual(t *testing.T) {
	f := newEngineFixture(t)
	animal := f.seedAnimal(t, "a1", models.CategoryDual)

	err := f.engine.Dispatch(context.Background(), models.AnimalRegistered{Animal: animal, PrincipalID: "user-1"})
	require.NoError(t, err)

	alerts := f.allAlerts(t)
	require.Len(t, alerts, 3, "dual onboarding should create three alerts")
	assert.NotNil(t, findAlert(alerts, "Monthly weight check"))
	assert.NotNil(t, findAlert(alerts, "Fattening check"))
	assert.NotNil(t, findAlert(alerts, "Initial vaccination"))
}

// TestMedicalFollowUp creates one follow-up alert carrying the event's
// next-due date.
func TestMedicalFollowUp(t *testing.T) {
	f := newEngineFixture(t)
	f.seedAnimal(t, "a1", models.CategoryDairy)

	event := models.MedicalEvent{
		ID:          "m1",
		AnimalID:    "a1",
		Kind:        models.MedicalVaccination,
		EventDate:   "2026-02-20",
		NextDueDate: "2026-05-20",
	}
	err := f.engine.Dispatch(context.Background(), models.MedicalEventRecorded{Event: event, PrincipalID: "vet-1"})
	require.NoError(t, err)

	alerts := f.allAlerts(t)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertMedicalDue, alerts[0].Kind)
	assert.Equal(t, models.SeverityMedium, alerts[0].Severity)
	assert.Equal(t, "2026-05-20", alerts[0].DueDate, "due date should come from the event")
	assert.Equal(t, "vet-1", alerts[0].CreatedBy)
}

// TestMedicalFollowUp_NoDueDate verifies an event without a next-due date
// creates nothing.
func TestMedicalFollowUp_NoDueDate(t *testing.T) {
	f := newEngineFixture(t)
	f.seedAnimal(t, "a1", models.CategoryDairy)

	event := models.MedicalEvent{ID: "m1", AnimalID: "a1", Kind: models.MedicalExam, EventDate: "2026-02-20"}
	err := f.engine.Dispatch(context.Background(), models.MedicalEventRecorded{Event: event, PrincipalID: "vet-1"})
	require.NoError(t, err)

	assert.Empty(t, f.allAlerts(t), "no due date should mean no follow-up")
}

// TestMedicalFollowUp_MissingAnimal verifies an unresolvable animal is
// skipped without error.
func TestMedicalFollowUp_MissingAnimal(t *testing.T) {
	f := newEngineFixture(t)

	event := models.MedicalEvent{
		ID:          "m1",
		AnimalID:    "ghost",
		Kind:        models.MedicalTreatment,
		EventDate:   "2026-02-20",
		NextDueDate: "2026-03-20",
	}
	err := f.engine.Dispatch(context.Background(), models.MedicalEventRecorded{Event: event, PrincipalID: "vet-1"})
	require.NoError(t, err, "missing animal should be skipped silently")

	assert.Empty(t, f.allAlerts(t))
}

func (f *engineFixture) seedMilkHistory(t *testing.T, animalID string, liters []float64) {
	t.Helper()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, l := range liters {
		date := base.AddDate(0, 0, i).Format("2006-01-02")
		record := models.MilkRecord{
			ID:         "milk-" + date,
			AnimalID:   animalID,
			RecordDate: date,
			Liters:     l,
		}
		require.NoError(t, f.milk.Insert(context.Background(), record))
	}
}

// TestLowProductionCheck_Alert verifies a sample far below the recent
// average raises a low-production alert.
func TestLowProductionCheck_Alert(t *testing.T) {
	f := newEngineFixture(t)
	f.seedAnimal(t, "a1", models.CategoryDairy)
	f.seedMilkHistory(t, "a1", []float64{20, 21, 19, 20})

	// The new sample is the most recent record; the baseline excludes it.
	newRecord := models.MilkRecord{ID: "m-new", AnimalID: "a1", RecordDate: "2026-02-10", Liters: 10}
	require.NoError(t, f.milk.Insert(context.Background(), newRecord))

	err := f.engine.Dispatch(context.Background(), models.MilkRecordAdded{Record: newRecord, PrincipalID: "user-1"})
	require.NoError(t, err)

	alerts := f.allAlerts(t)
	require.Len(t, alerts, 1, "10 L against a 20 L baseline should alert")
	assert.Equal(t, models.AlertLowProduction, alerts[0].Kind)
	assert.Equal(t, models.SeverityMedium, alerts[0].Severity)
	assert.True(t, alerts[0].Active)
}

// TestLowProductionCheck_AboveThreshold verifies a sample at or above 80%
// of the baseline stays silent.
func TestLowProductionCheck_AboveThreshold(t *testing.T) {
	f := newEngineFixture(t)
	f.seedAnimal(t, "a1", models.CategoryDairy)
	f.seedMilkHistory(t, "a1", []float64{20, 21, 19, 20})

	newRecord := models.MilkRecord{ID: "m-new", AnimalID: "a1", RecordDate: "2026-02-10", Liters: 17}
	require.NoError(t, f.milk.Insert(context.Background(), newRecord))

	err := f.engine.Dispatch(context.Background(), models.MilkRecordAdded{Record: newRecord, PrincipalID: "user-1"})
	require.NoError(t, err)

	assert.Empty(t, f.allAlerts(t), "17 L against a 20 L baseline should not alert")
}

// TestLowProductionCheck_TooLittleHistory verifies the detector stays
// silent until enough records exist.
func TestLowProductionCheck_TooLittleHistory(t *testing.T) {
	f := newEngineFixture(t)
	f.seedAnimal(t, "a1", models.CategoryDairy)
	f.seedMilkHistory(t, "a1", []float64{20, 21, 19})

	newRecord := models.MilkRecord{ID: "m-new", AnimalID: "a1", RecordDate: "2026-02-10", Liters: 1}
	require.NoError(t, f.milk.Insert(context.Background(), newRecord))

	err := f.engine.Dispatch(context.Background(), models.MilkRecordAdded{Record: newRecord, PrincipalID: "user-1"})
	require.NoError(t, err)

	assert.Empty(t, f.allAlerts(t), "fewer than five records should mean no anomaly check")
}

// TestPropagateCurrentWeight verifies a weighing becomes the animal's
// current weight, including back-dated samples.
func TestPropagateCurrentWeight(t *testing.T) {
	f := newEngineFixture(t)
	f.seedAnimal(t, "a1", models.CategoryBeef)

	record := models.WeightRecord{ID: "w1", AnimalID: "a1", RecordDate: "2026-02-10", WeightKg: 412.5}
	err := f.engine.Dispatch(context.Background(), models.WeightRecordAdded{Record: record, PrincipalID: "user-1"})
	require.NoError(t, err)

	animal, err := f.animals.FindByID(context.Background(), "a1")
	require.NoError(t, err)
	require.NotNil(t, animal.WeightKg)
	assert.Equal(t, 412.5, *animal.WeightKg)

	// Last write wins even when the sample is dated earlier.
	backdated := models.WeightRecord{ID: "w2", AnimalID: "a1", RecordDate: "2026-01-01", WeightKg: 380}
	err = f.engine.Dispatch(context.Background(), models.WeightRecordAdded{Record: backdated, PrincipalID: "user-1"})
	require.NoError(t, err)

	animal, err = f.animals.FindByID(context.Background(), "a1")
	require.NoError(t, err)
	require.NotNil(t, animal.WeightKg)
	assert.Equal(t, 380.0, *animal.WeightKg, "a back-dated weighing still overwrites the current weight")
}

type unknownEvent struct{}

func (unknownEvent) EventName() string { return "unknown" }

// TestDispatch_UnknownEvent verifies unbound events are reported.
func TestDispatch_UnknownEvent(t *testing.T) {
	f := newEngineFixture(t)

	err := f.engine.Dispatch(context.Background(), unknownEvent{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rule bound")
}
