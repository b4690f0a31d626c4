package models

// Event is the marker for typed domain events emitted by entity writes.
// Each write produces exactly one event; the rules engine consumes it and
// runs the single rule bound to that event type.
type Event interface {
	EventName() string
}

// AnimalRegistered is emitted after a new animal is persisted.
type AnimalRegistered struct {
	Animal      Animal
	PrincipalID string
}

func (AnimalRegistered) EventName() string { return "animal_registered" }

// MedicalEventRecorded is emitted after a medical event is persisted.
type MedicalEventRecorded struct {
	Event       MedicalEvent
	PrincipalID string
}

func (MedicalEventRecorded) EventName() string { return "medical_event_recorded" }

// MilkRecordAdded is emitted after a milk record is persisted.
type MilkRecordAdded struct {
	Record      MilkRecord
	PrincipalID string
}

func (MilkRecordAdded) EventName() string { return "milk_record_added" }

// WeightRecordAdded is emitted after a weight record is persisted.
type WeightRecordAdded struct {
	Record      WeightRecord
	PrincipalID string
}

func (WeightRecordAdded) EventName() string { return "weight_record_added" }
