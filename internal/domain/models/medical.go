package models

import "time"

// MedicalEventKind enumerates the supported veterinary interventions.
type MedicalEventKind string

const (
	MedicalVaccination MedicalEventKind = "vaccination"
	MedicalDeworming   MedicalEventKind = "deworming"
	MedicalTreatment   MedicalEventKind = "treatment"
	MedicalExam        MedicalEventKind = "exam"
)

// MedicalEvent records one veterinary intervention on an animal. Events are
// immutable once created. EventDate and NextDueDate use the YYYY-MM-DD
// layout; a present NextDueDate triggers a follow-up alert.
type MedicalEvent struct {
	ID          string           `bson:"id" json:"id"`
	AnimalID    string           `bson:"animal_id" json:"animal_id"`
	Kind        MedicalEventKind `bson:"kind" json:"kind"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	Medication  string           `bson:"medication,omitempty" json:"medication,omitempty"`
	Dose        string           `bson:"dose,omitempty" json:"dose,omitempty"`
	PerformedBy string           `bson:"performed_by,omitempty" json:"performed_by,omitempty"`
	EventDate   string           `bson:"event_date" json:"event_date"`
	NextDueDate string           `bson:"next_due_date,omitempty" json:"next_due_date,omitempty"`
	Cost        *float64         `bson:"cost,omitempty" json:"cost,omitempty"`
	CreatedAt   time.Time        `bson:"created_at" json:"created_at"`
}
