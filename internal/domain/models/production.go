package models

import "time"

// MilkRecord captures one day's milk yield for an animal. At most one record
// may exist per (AnimalID, RecordDate).
type MilkRecord struct {
	ID           string    `bson:"id" json:"id"`
	AnimalID     string    `bson:"animal_id" json:"animal_id"`
	RecordDate   string    `bson:"record_date" json:"record_date"`
	Liters       float64   `bson:"liters" json:"liters"`
	FatPct       *float64  `bson:"fat_pct,omitempty" json:"fat_pct,omitempty"`
	ProteinPct   *float64  `bson:"protein_pct,omitempty" json:"protein_pct,omitempty"`
	QualityGrade string    `bson:"quality_grade,omitempty" json:"quality_grade,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// WeightRecord captures one weighing of an animal. GainKg is the delta since
// the previous weighing; nil means no baseline existed, which is distinct
// from a zero gain.
type WeightRecord struct {
	ID           string    `bson:"id" json:"id"`
	AnimalID     string    `bson:"animal_id" json:"animal_id"`
	RecordDate   string    `bson:"record_date" json:"record_date"`
	WeightKg     float64   `bson:"weight_kg" json:"weight_kg"`
	GainKg       *float64  `bson:"gain_kg,omitempty" json:"gain_kg,omitempty"`
	FeedingNotes string    `bson:"feeding_notes,omitempty" json:"feeding_notes,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
