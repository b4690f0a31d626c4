// Package memory provides map-backed implementations of the repository
// contracts. They mirror the mongodb implementations' semantics, including
// sort orders and the NotFoundError convention, and back the service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/repository"
)

// UserRepo is an in-memory repository.UserRepository.
type UserRepo struct {
	mu     sync.Mutex
	users  map[string]models.User
	hashes map[string]string
}

// NewUserRepo returns an empty in-memory user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[string]models.User{}, hashes: map[string]string{}}
}

func (r *UserRepo) Insert(_ context.Context, user models.User, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	r.hashes[user.ID] = passwordHash
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "user", ID: id}
	}
	return &user, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*models.User, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, user := range r.users {
		if user.Email == email {
			return &user, r.hashes[id], nil
		}
	}
	return nil, "", &models.NotFoundError{Entity: "user", ID: email}
}

func (r *UserRepo) List(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

// FarmRepo is an in-memory repository.FarmRepository.
type FarmRepo struct {
	mu    sync.Mutex
	farms map[string]models.Farm
}

// NewFarmRepo returns an empty in-memory farm repository.
func NewFarmRepo() *FarmRepo {
	return &FarmRepo{farms: map[string]models.Farm{}}
}

func (r *FarmRepo) Insert(_ context.Context, farm models.Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.farms[farm.ID] = farm
	return nil
}

func (r *FarmRepo) FindByID(_ context.Context, id string) (*models.Farm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	farm, ok := r.farms[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "farm", ID: id}
	}
	return &farm, nil
}

func (r *FarmRepo) List(_ context.Context) ([]models.Farm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Farm, 0, len(r.farms))
	for _, farm := range r.farms {
		out = append(out, farm)
	}
	return out, nil
}

func (r *FarmRepo) Update(_ context.Context, farm models.Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.farms[farm.ID]; !ok {
		return &models.NotFoundError{Entity: "farm", ID: farm.ID}
	}
	r.farms[farm.ID] = farm
	return nil
}

func (r *FarmRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.farms[id]; !ok {
		return &models.NotFoundError{Entity: "farm", ID: id}
	}
	delete(r.farms, id)
	return nil
}

func (r *FarmRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.farms), nil
}

// PastureRepo is an in-memory repository.PastureRepository.
type PastureRepo struct {
	mu       sync.Mutex
	pastures []models.Pasture
}

// NewPastureRepo returns an empty in-memory pasture repository.
func NewPastureRepo() *PastureRepo {
	return &PastureRepo{}
}

func (r *PastureRepo) Insert(_ context.Context, pasture models.Pasture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pastures = append(r.pastures, pasture)
	return nil
}

func (r *PastureRepo) ListByFarm(_ context.Context, farmID string) ([]models.Pasture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Pasture{}
	for _, pasture := range r.pastures {
		if farmID == "" || pasture.FarmID == farmID {
			out = append(out, pasture)
		}
	}
	return out, nil
}

// AnimalRepo is an in-memory repository.AnimalRepository.
type AnimalRepo struct {
	mu      sync.Mutex
	animals map[string]models.Animal
}

// NewAnimalRepo returns an empty in-memory animal repository.
func NewAnimalRepo() *AnimalRepo {
	return &AnimalRepo{animals: map[string]models.Animal{}}
}

func (r *AnimalRepo) Insert(_ context.Context, animal models.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.animals[animal.ID] = animal
	return nil
}

func (r *AnimalRepo) FindByID(_ context.Context, id string) (*models.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	animal, ok := r.animals[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "animal", ID: id}
	}
	return &animal, nil
}

func (r *AnimalRepo) FindByTag(_ context.Context, farmID, tagNumber string) (*models.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, animal := range r.animals {
		if animal.FarmID == farmID && animal.TagNumber == tagNumber {
			return &animal, nil
		}
	}
	return nil, &models.NotFoundError{Entity: "animal", ID: tagNumber}
}

func (r *AnimalRepo) FindByToken(_ context.Context, token string) (*models.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, animal := range r.animals {
		if animal.PublicToken == token {
			return &animal, nil
		}
	}
	return nil, &models.NotFoundError{Entity: "animal", ID: token}
}

func (r *AnimalRepo) List(_ context.Context, farmID string) ([]models.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Animal{}
	for _, animal := range r.animals {
		if farmID == "" || animal.FarmID == farmID {
			out = append(out, animal)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TagNumber < out[j].TagNumber })
	return out, nil
}

func (r *AnimalRepo) Update(_ context.Context, animal models.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.animals[animal.ID]; !ok {
		return &models.NotFoundError{Entity: "animal", ID: animal.ID}
	}
	r.animals[animal.ID] = animal
	return nil
}

func (r *AnimalRepo) UpdateWeight(_ context.Context, id string, weightKg float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	animal, ok := r.animals[id]
	if !ok {
		return &models.NotFoundError{Entity: "animal", ID: id}
	}
	animal.WeightKg = &weightKg
	r.animals[id] = animal
	return nil
}

func (r *AnimalRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.animals[id]; !ok {
		return &models.NotFoundError{Entity: "animal", ID: id}
	}
	delete(r.animals, id)
	return nil
}

func (r *AnimalRepo) CountActive(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, animal := range r.animals {
		if animal.Lifecycle == models.LifecycleActive {
			count++
		}
	}
	return count, nil
}

func (r *AnimalRepo) CountActiveByCategory(_ context.Context) (map[models.Category]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[models.Category]int{}
	for _, animal := range r.animals {
		if animal.Lifecycle == models.LifecycleActive {
			out[animal.Category]++
		}
	}
	return out, nil
}

func (r *AnimalRepo) CountActiveBySaleStatus(_ context.Context) (map[models.SaleStatus]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[models.SaleStatus]int{}
	for _, animal := range r.animals {
		if animal.Lifecycle == models.LifecycleActive {
			out[animal.SaleStatus]++
		}
	}
	return out, nil
}

// MedicalRepo is an in-memory repository.MedicalRepository.
type MedicalRepo struct {
	mu     sync.Mutex
	events []models.MedicalEvent
}

// NewMedicalRepo returns an empty in-memory medical repository.
func NewMedicalRepo() *MedicalRepo {
	return &MedicalRepo{}
}

func (r *MedicalRepo) Insert(_ context.Context, event models.MedicalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *MedicalRepo) ListByAnimal(_ context.Context, animalID string, limit int) ([]models.MedicalEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.MedicalEvent{}
	for _, event := range r.events {
		if animalID == "" || event.AnimalID == animalID {
			out = append(out, event)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate > out[j].EventDate })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MedicalRepo) DeleteByAnimal(_ context.Context, animalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.events[:0]
	for _, event := range r.events {
		if event.AnimalID != animalID {
			kept = append(kept, event)
		}
	}
	r.events = kept
	return nil
}

// MilkRepo is an in-memory repository.MilkRepository.
type MilkRepo struct {
	mu      sync.Mutex
	records []models.MilkRecord
}

// NewMilkRepo returns an empty in-memory milk repository.
func NewMilkRepo() *MilkRepo {
	return &MilkRepo{}
}

func (r *MilkRepo) Insert(_ context.Context, record models.MilkRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *MilkRepo) FindByAnimalAndDate(_ context.Context, animalID, recordDate string) (*models.MilkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.AnimalID == animalID && record.RecordDate == recordDate {
			return &record, nil
		}
	}
	return nil, &models.NotFoundError{Entity: "milk record", ID: animalID + "/" + recordDate}
}

func (r *MilkRepo) ListByAnimal(_ context.Context, animalID string, limit int) ([]models.MilkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.MilkRecord{}
	for _, record := range r.records {
		if animalID == "" || record.AnimalID == animalID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordDate > out[j].RecordDate })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MilkRepo) SumLitersSince(_ context.Context, minDate string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, record := range r.records {
		if record.RecordDate >= minDate {
			sum += record.Liters
		}
	}
	return sum, nil
}

func (r *MilkRepo) DeleteByAnimal(_ context.Context, animalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	for _, record := range r.records {
		if record.AnimalID != animalID {
			kept = append(kept, record)
		}
	}
	r.records = kept
	return nil
}

// WeightRepo is an in-memory repository.WeightRepository.
type WeightRepo struct {
	mu      sync.Mutex
	records []models.WeightRecord
}

// NewWeightRepo returns an empty in-memory weight repository.
func NewWeightRepo() *WeightRepo {
	return &WeightRepo{}
}

func (r *WeightRepo) Insert(_ context.Context, record models.WeightRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *WeightRepo) ListByAnimal(_ context.Context, animalID string, limit int) ([]models.WeightRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.WeightRecord{}
	for _, record := range r.records {
		if animalID == "" || record.AnimalID == animalID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordDate > out[j].RecordDate })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *WeightRepo) DeleteByAnimal(_ context.Context, animalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	for _, record := range r.records {
		if record.AnimalID != animalID {
			kept = append(kept, record)
		}
	}
	r.records = kept
	return nil
}

// AlertRepo is an in-memory repository.AlertRepository.
type AlertRepo struct {
	mu     sync.Mutex
	alerts map[string]models.Alert
}

// NewAlertRepo returns an empty in-memory alert repository.
func NewAlertRepo() *AlertRepo {
	return &AlertRepo{alerts: map[string]models.Alert{}}
}

func (r *AlertRepo) Insert(_ context.Context, alert models.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts[alert.ID] = alert
	return nil
}

func (r *AlertRepo) FindByID(_ context.Context, id string) (*models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert, ok := r.alerts[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "alert", ID: id}
	}
	return &alert, nil
}

func (r *AlertRepo) List(_ context.Context, active *bool) ([]models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Alert{}
	for _, alert := range r.alerts {
		if active == nil || alert.Active == *active {
			out = append(out, alert)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Severity > out[j].Severity })
	return out, nil
}

func (r *AlertRepo) Update(_ context.Context, alert models.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.alerts[alert.ID]; !ok {
		return &models.NotFoundError{Entity: "alert", ID: alert.ID}
	}
	r.alerts[alert.ID] = alert
	return nil
}

func (r *AlertRepo) CountActive(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, alert := range r.alerts {
		if alert.Active {
			count++
		}
	}
	return count, nil
}

func (r *AlertRepo) DeleteByAnimal(_ context.Context, animalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, alert := range r.alerts {
		if alert.AnimalID == animalID {
			delete(r.alerts, id)
		}
	}
	return nil
}

// ReportRepo is an in-memory repository.ReportRepository.
type ReportRepo struct {
	mu      sync.Mutex
	reports []models.HerdReport
}

// NewReportRepo returns an empty in-memory report repository.
func NewReportRepo() *ReportRepo {
	return &ReportRepo{}
}

func (r *ReportRepo) Insert(_ context.Context, report models.HerdReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return nil
}

// Reports returns the stored snapshots in insertion order.
func (r *ReportRepo) Reports() []models.HerdReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.HerdReport{}, r.reports...)
}

// Interface conformance checks.
var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.FarmRepository    = (*FarmRepo)(nil)
	_ repository.PastureRepository = (*PastureRepo)(nil)
	_ repository.AnimalRepository  = (*AnimalRepo)(nil)
	_ repository.MedicalRepository = (*MedicalRepo)(nil)
	_ repository.MilkRepository    = (*MilkRepo)(nil)
	_ repository.WeightRepository  = (*WeightRepo)(nil)
	_ repository.AlertRepository   = (*AlertRepo)(nil)
	_ repository.ReportRepository  = (*ReportRepo)(nil)
)
