package medical

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

type recordingDispatcher struct {
	events []models.Event
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, event models.Event) error {
	d.events = append(d.events, event)
	return d.err
}

func newMedicalService(t *testing.T) (*Service, *memory.MedicalRepo, *recordingDispatcher) {
	t.Helper()
	repo := memory.NewMedicalRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewService(repo, dispatcher, nil)
	svc.now = func() time.Time { return testNow }
	return svc, repo, dispatcher
}

// TestRecordEvent verifies persistence and the emitted event.
func TestRecordEvent(t *testing.T) {
	svc, repo, dispatcher := newMedicalService(t)

	event, err := svc.RecordEvent(context.Background(), "vet-1", EventInput{
		AnimalID:    "a1",
		Kind:        models.MedicalVaccination,
		Medication:  "Clostridial 8-way",
		EventDate:   "2026-02-20",
		NextDueDate: "2026-08-20",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, testNow, event.CreatedAt)

	stored, err := repo.ListByAnimal(context.Background(), "a1", 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	require.Len(t, dispatcher.events, 1)
	recorded, ok := dispatcher.events[0].(models.MedicalEventRecorded)
	require.True(t, ok, "a medical write should emit MedicalEventRecorded")
	assert.Equal(t, event.ID, recorded.Event.ID)
	assert.Equal(t, "vet-1", recorded.PrincipalID)
}

// TestRecordEvent_Validation rejects malformed input.
func TestRecordEvent_Validation(t *testing.T) {
	svc, _, dispatcher := newMedicalService(t)
	ctx := context.Background()

	_, err := svc.RecordEvent(ctx, "vet-1", EventInput{Kind: models.MedicalExam, EventDate: "2026-02-20"})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "an empty animal id should be rejected")

	_, err = svc.RecordEvent(ctx, "vet-1", EventInput{AnimalID: "a1", Kind: models.MedicalExam, EventDate: "20.02.2026"})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "a non-ISO event date should be rejected")

	_, err = svc.RecordEvent(ctx, "vet-1", EventInput{AnimalID: "a1", Kind: models.MedicalExam, EventDate: "2026-02-20", NextDueDate: "soon"})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "a non-ISO next-due date should be rejected")

	assert.Empty(t, dispatcher.events)
}

// TestRecordEvent_UnknownAnimalAccepted verifies the write does not check
// the animal reference; the follow-up rule tolerates it downstream.
func TestRecordEvent_UnknownAnimalAccepted(t *testing.T) {
	svc, repo, _ := newMedicalService(t)

	_, err := svc.RecordEvent(context.Background(), "vet-1", EventInput{
		AnimalID:  "never-registered",
		Kind:      models.MedicalDeworming,
		EventDate: "2026-02-20",
	})
	require.NoError(t, err, "medical history is valid even without a resolvable animal")

	stored, err := repo.ListByAnimal(context.Background(), "never-registered", 0)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

// TestRecordEvent_RuleFailureDoesNotFailWrite verifies a failing rule
// leaves the event intact.
func TestRecordEvent_RuleFailureDoesNotFailWrite(t *testing.T) {
	svc, repo, dispatcher := newMedicalService(t)
	dispatcher.err = assert.AnError

	event, err := svc.RecordEvent(context.Background(), "vet-1", EventInput{
		AnimalID:  "a1",
		Kind:      models.MedicalTreatment,
		EventDate: "2026-02-20",
	})
	require.NoError(t, err, "a failing rule must not fail the write")

	stored, err := repo.ListByAnimal(context.Background(), "a1", 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, event.ID, stored[0].ID)
}

// TestListEvents returns events newest first.
func TestListEvents(t *testing.T) {
	svc, _, _ := newMedicalService(t)
	ctx := context.Background()

	for _, date := range []string{"2026-01-10", "2026-02-10", "2026-03-10"} {
		_, err := svc.RecordEvent(ctx, "vet-1", EventInput{AnimalID: "a1", Kind: models.MedicalExam, EventDate: date})
		require.NoError(t, err)
	}

	events, err := svc.ListEvents(ctx, "a1", 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2026-03-10", events[0].EventDate, "events should come newest first")
	assert.Equal(t, "2026-02-10", events[1].EventDate)
}
