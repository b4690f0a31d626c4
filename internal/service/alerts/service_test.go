package alerts

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

func newAlertService(t *testing.T) (*Service, *memory.AnimalRepo, *memory.AlertRepo) {
	t.Helper()
	animals := memory.NewAnimalRepo()
	alerts := memory.NewAlertRepo()
	svc := NewService(animals, alerts, nil)
	svc.now = func() time.Time { return testNow }

	require.NoError(t, animals.Insert(context.Background(), models.Animal{
		ID:        "a1",
		FarmID:    "farm-1",
		TagNumber: "V-001",
		Lifecycle: models.LifecycleActive,
	}))
	return svc, animals, alerts
}

// TestCreate verifies a manual alert is stored active and attributed.
func TestCreate(t *testing.T) {
	svc, _, _ := newAlertService(t)

	alert, err := svc.Create(context.Background(), "user-1", CreateInput{
		AnimalID: "a1",
		Kind:     models.AlertGestationCheck,
		Severity: models.SeverityHigh,
		Title:    "Gestation check",
		DueDate:  "2026-04-01",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, alert.ID)
	assert.True(t, alert.Active)
	assert.Equal(t, "user-1", alert.CreatedBy)
	assert.Equal(t, testNow, alert.CreatedAt)
}

// TestCreate_Validation rejects out-of-range severities and unknown
// animals.
func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newAlertService(t)
	ctx := context.Background()

	for _, severity := range []int{0, 4, -1} {
		_, err := svc.Create(ctx, "user-1", CreateInput{AnimalID: "a1", Kind: models.AlertMedicalDue, Severity: severity})
		require.Error(t, err, "severity %d should be rejected", severity)
		assert.True(t, models.IsValidation(err))
	}

	_, err := svc.Create(ctx, "user-1", CreateInput{AnimalID: "ghost", Kind: models.AlertMedicalDue, Severity: 2})
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err), "manual alerts require an existing animal")
}

// TestResolve closes an alert exactly once.
func TestResolve(t *testing.T) {
	svc, _, _ := newAlertService(t)
	ctx := context.Background()

	alert, err := svc.Create(ctx, "user-1", CreateInput{AnimalID: "a1", Kind: models.AlertMedicalDue, Severity: 2, Title: "Check"})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, "user-2", alert.ID)
	require.NoError(t, err)
	assert.False(t, resolved.Active)
	assert.Equal(t, "user-2", resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, testNow, *resolved.ResolvedAt)

	_, err = svc.Resolve(ctx, "user-2", alert.ID)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "resolving twice should be rejected")
}

// TestResolve_Unknown rejects unknown ids.
func TestResolve_Unknown(t *testing.T) {
	svc, _, _ := newAlertService(t)

	_, err := svc.Resolve(context.Background(), "user-1", "ghost")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

// TestList filters on the active flag.
func TestList(t *testing.T) {
	svc, _, _ := newAlertService(t)
	ctx := context.Background()

	open, err := svc.Create(ctx, "user-1", CreateInput{AnimalID: "a1", Kind: models.AlertMedicalDue, Severity: 2, Title: "Open"})
	require.NoError(t, err)
	closed, err := svc.Create(ctx, "user-1", CreateInput{AnimalID: "a1", Kind: models.AlertMedicalDue, Severity: 3, Title: "Closed"})
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, "user-1", closed.ID)
	require.NoError(t, err)

	active := true
	alerts, err := svc.List(ctx, &active)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, open.ID, alerts[0].ID)

	inactive := false
	alerts, err = svc.List(ctx, &inactive)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, closed.ID, alerts[0].ID)

	alerts, err = svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, alerts, 2, "a nil filter should return everything")
}
