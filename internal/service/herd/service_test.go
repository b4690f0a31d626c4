package herd

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

// recordingDispatcher captures the events a write hands to the engine.
type recordingDispatcher struct {
	events []models.Event
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, event models.Event) error {
	d.events = append(d.events, event)
	return d.err
}

type herdFixture struct {
	svc        *Service
	farms      *memory.FarmRepo
	pastures   *memory.PastureRepo
	animals    *memory.AnimalRepo
	medical    *memory.MedicalRepo
	milk       *memory.MilkRepo
	weights    *memory.WeightRepo
	alerts     *memory.AlertRepo
	dispatcher *recordingDispatcher
}

func newHerdFixture(t *testing.T) *herdFixture {
	t.Helper()
	f := &herdFixture{
		farms:      memory.NewFarmRepo(),
		pastures:   memory.NewPastureRepo(),
		animals:    memory.NewAnimalRepo(),
		medical:    memory.NewMedicalRepo(),
		milk:       memory.NewMilkRepo(),
		weights:    memory.NewWeightRepo(),
		alerts:     memory.NewAlertRepo(),
		dispatcher: &recordingDispatcher{},
	}
	f.svc = NewService(f.farms, f.pastures, f.animals, f.medical, f.milk, f.weights, f.alerts, f.dispatcher, nil)
	f.svc.now = func() time.Time { return testNow }
	return f
}

func (f *herdFixture) seedFarm(t *testing.T, id string) models.Farm {
	t.Helper()
	farm := models.Farm{ID: id, Name: "Farm " + id, CreatedAt: testNow}
	require.NoError(t, f.farms.Insert(context.Background(), farm))
	return farm
}

// TestRegisterAnimal verifies defaults, token minting and the registration
// event.
func TestRegisterAnimal(t *testing.T) {
	f := newHerdFixture(t)
	f.seedFarm(t, "farm-1")

	animal, err := f.svc.RegisterAnimal(context.Background(), "user-1", AnimalInput{
		FarmID:    "farm-1",
		TagNumber: "V-001",
		Sex:       models.SexFemale,
		Category:  models.CategoryDairy,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, animal.ID)
	assert.NotEmpty(t, animal.PublicToken, "a public token should be minted at registration")
	assert.Equal(t, models.LifecycleActive, animal.Lifecycle, "lifecycle should default to active")
	assert.Equal(t, models.SaleAvailable, animal.SaleStatus, "sale status should default to available")

	require.Len(t, f.dispatcher.events, 1)
	registered, ok := f.dispatcher.events[0].(models.AnimalRegistered)
	require.True(t, ok, "registration should emit AnimalRegistered")
	assert.Equal(t, animal.ID, registered.Animal.ID)
	assert.Equal(t, "user-1", registered.PrincipalID)
}

// TestRegisterAnimal_UnknownFarm rejects registration against a missing
// farm.
func TestRegisterAnimal_UnknownFarm(t *testing.T) {
	f := newHerdFixture(t)

	_, err := f.svc.RegisterAnimal(context.Background(), "user-1", AnimalInput{FarmID: "ghost", TagNumber: "V-001"})
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
	assert.Empty(t, f.dispatcher.events, "no event should be emitted for a failed registration")
}

// TestRegisterAnimal_DuplicateTag verifies tag uniqueness is scoped to the
// farm: a clash within the farm is rejected, the same tag on another farm
// is fine.
func TestRegisterAnimal_DuplicateTag(t *testing.T) {
	f := newHerdFixture(t)
	f.seedFarm(t, "farm-1")
	f.seedFarm(t, "farm-2")

	_, err := f.svc.RegisterAnimal(context.Background(), "user-1", AnimalInput{FarmID: "farm-1", TagNumber: "V-001"})
	require.NoError(t, err)

	_, err = f.svc.RegisterAnimal(context.Background(), "user-1", AnimalInput{FarmID: "farm-1", TagNumber: "V-001"})
	require.Error(t, err)
	assert.True(t, models.IsDuplicate(err), "same tag on the same farm should collide")

	_, err = f.svc.RegisterAnimal(context.Background(), "user-1", AnimalInput{FarmID: "farm-2", TagNumber: "V-001"})
	assert.NoError(t, err, "the same tag on another farm should be allowed")
}

// TestRegisterAnimal_RuleFailureDoesNotFailWrite verifies a failing rule
// leaves the registration intact.
func TestRegisterAnimal_RuleFailureDoesNotFailWrite(t *testing.T) {
	f := newHerdFixture(t)
	f.seedFarm(t, "farm-1")
	f.dispatcher.err = assert.AnError

	animal, err := f.svc.RegisterAnimal(context.Background(), "user-1", AnimalInput{FarmID: "farm-1", TagNumber: "V-001"})
	require.NoError(t, err, "a failing rule must not fail the registration")

	stored, err := f.animals.FindByID(context.Background(), animal.ID)
	require.NoError(t, err)
	assert.Equal(t, "V-001", stored.TagNumber)
}

// TestUpdateAnimal_FarmImmutable rejects moving an animal between farms.
func TestUpdateAnimal_FarmImmutable(t *testing.T) {
	f := newHerdFixture(t)
	f.seedFarm(t, "farm-1")
	f.seedFarm(t, "farm-2")

	animal, err := f.svc.RegisterAnimal(context.Background(), "user-1", AnimalInput{FarmID: "farm-1", TagNumber: "V-001"})
	require.NoError(t, err)

	_, err = f.svc.UpdateAnimal(context.Background(), animal.ID, AnimalInput{FarmID: "farm-2", TagNumber: "V-001"})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "changing the farm should be a validation error")
}

// TestUpdateAnimal_PreservesToken verifies the public token survives
// updates.
func TestUpdateAnimal_PreservesToken(t *testing.T) {
	f := newHerdFixture(t)
	f.seedFarm(t, "farm-1")

	animal, err := f.svc.RegisterAnimal(context.Background(), "user-1", AnimalInput{FarmID: "farm-1", TagNumber: "V-001"})
	require.NoError(t, err)
	token := animal.PublicToken

	updated, err := f.svc.UpdateAnimal(context.Background(), animal.ID, AnimalInput{TagNumber: "V-002", Name: "Bella"})
	require.NoError(t, err)
	assert.Equal(t, token, updated.PublicToken, "the token is minted once and never regenerated")
	assert.Equal(t, "V-002", updated.TagNumber)
	assert.Equal(t, "Bella", updated.Name)
}

// TestDeleteAnimal_Cascades verifies deleting an animal removes its
// medical, production and alert records.
func TestDeleteAnimal_Cascades(t *testing.T) {
	f := newHerdFixture(t)
	f.seedFarm(t, "farm-1")
	ctx := context.Background()

	animal, err := f.svc.RegisterAnimal(ctx, "user-1", AnimalInput{FarmID: "farm-1", TagNumber: "V-001"})
	require.NoError(t, err)

	require.NoError(t, f.medical.Insert(ctx, models.MedicalEvent{ID: "m1", AnimalID: animal.ID, EventDate: "2026-02-01"}))
	require.NoError(t, f.milk.Insert(ctx, models.MilkRecord{ID: "l1", AnimalID: animal.ID, RecordDate: "2026-02-01", Liters: 20}))
	require.NoError(t, f.weights.Insert(ctx, models.WeightRecord{ID: "w1", AnimalID: animal.ID, RecordDate: "2026-02-01", WeightKg: 400}))
	require.NoError(t, f.alerts.Insert(ctx, models.Alert{ID: "al1", AnimalID: animal.ID, Active: true}))

	require.NoError(t, f.svc.DeleteAnimal(ctx, animal.ID))

	_, err = f.animals.FindByID(ctx, animal.ID)
	assert.True(t, models.IsNotFound(err), "the animal itself should be gone")

	events, err := f.medical.ListByAnimal(ctx, animal.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, events, "medical events should cascade")

	milk, err := f.milk.ListByAnimal(ctx, animal.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, milk, "milk records should cascade")

	weights, err := f.weights.ListByAnimal(ctx, animal.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, weights, "weight records should cascade")

	alerts, err := f.alerts.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, alerts, "alerts should cascade")
}

// TestPublicSummary verifies the token lookup and the category-scoped
// production slices.
func TestPublicSummary(t *testing.T) {
	f := newHerdFixture(t)
	f.seedFarm(t, "farm-1")
	ctx := context.Background()

	register := func(tag string, category models.Category) *models.Animal {
		animal, err := f.svc.RegisterAnimal(ctx, "user-1", AnimalInput{FarmID: "farm-1", TagNumber: tag, Category: category})
		require.NoError(t, err)
		require.NoError(t, f.milk.Insert(ctx, models.MilkRecord{ID: "l-" + tag, AnimalID: animal.ID, RecordDate: "2026-02-01", Liters: 18}))
		require.NoError(t, f.weights.Insert(ctx, models.WeightRecord{ID: "w-" + tag, AnimalID: animal.ID, RecordDate: "2026-02-01", WeightKg: 350}))
		require.NoError(t, f.medical.Insert(ctx, models.MedicalEvent{ID: "m-" + tag, AnimalID: animal.ID, EventDate: "2026-01-15"}))
		return animal
	}

	dairy := register("V-001", models.CategoryDairy)
	beef := register("V-002", models.CategoryBeef)
	dual := register("V-003", models.CategoryDual)

	summary, err := f.svc.PublicSummary(ctx, dairy.PublicToken)
	require.NoError(t, err)
	assert.Equal(t, dairy.ID, summary.Animal.ID)
	assert.Equal(t, "farm-1", summary.Farm.ID)
	assert.Len(t, summary.MedicalEvents, 1)
	assert.Len(t, summary.MilkRecords, 1, "dairy summaries carry milk records")
	assert.Empty(t, summary.WeightRecords, "dairy summaries omit weight records")

	summary, err = f.svc.PublicSummary(ctx, beef.PublicToken)
	require.NoError(t, err)
	assert.Empty(t, summary.MilkRecords, "beef summaries omit milk records")
	assert.Len(t, summary.WeightRecords, 1, "beef summaries carry weight records")

	summary, err = f.svc.PublicSummary(ctx, dual.PublicToken)
	require.NoError(t, err)
	assert.Len(t, summary.MilkRecords, 1, "dual summaries carry both record kinds")
	assert.Len(t, summary.WeightRecords, 1)
}

// TestPublicSummary_UnknownToken rejects lookups with a stale token.
func TestPublicSummary_UnknownToken(t *testing.T) {
	f := newHerdFixture(t)

	_, err := f.svc.PublicSummary(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

// TestCreateFarm validates the name and stamps the creation time.
func TestCreateFarm(t *testing.T) {
	f := newHerdFixture(t)

	_, err := f.svc.CreateFarm(context.Background(), FarmInput{})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "an empty name should be rejected")

	farm, err := f.svc.CreateFarm(context.Background(), FarmInput{Name: "La Esperanza", CountryCode: "AR"})
	require.NoError(t, err)
	assert.NotEmpty(t, farm.ID)
	assert.Equal(t, testNow, farm.CreatedAt)
}

// TestCreatePasture requires an existing farm.
func TestCreatePasture(t *testing.T) {
	f := newHerdFixture(t)
	f.seedFarm(t, "farm-1")

	_, err := f.svc.CreatePasture(context.Background(), PastureInput{FarmID: "ghost", Name: "North"})
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))

	pasture, err := f.svc.CreatePasture(context.Background(), PastureInput{FarmID: "farm-1", Name: "North"})
	require.NoError(t, err)

	pastures, err := f.svc.ListPastures(context.Background(), "farm-1")
	require.NoError(t, err)
	require.Len(t, pastures, 1)
	assert.Equal(t, pasture.ID, pastures[0].ID)
}
