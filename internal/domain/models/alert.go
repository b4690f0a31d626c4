package models

import "time"

// AlertKind enumerates the alert categories raised by users or the rules
// engine.
type AlertKind string

const (
	AlertMedicalDue     AlertKind = "medical-due"
	AlertGestationCheck AlertKind = "gestation-check"
	AlertWeightCheck    AlertKind = "weight-check"
	AlertLowProduction  AlertKind = "low-production"
)

// Alert severities.
const (
	SeverityLow    = 1
	SeverityMedium = 2
	SeverityHigh   = 3
)

// Alert is a resolvable reminder or warning tied to one animal. Alerts are
// resolved exactly once and never deleted directly; they only cascade when
// their animal is deleted.
type Alert struct {
	ID         string     `bson:"id" json:"id"`
	AnimalID   string     `bson:"animal_id" json:"animal_id"`
	Kind       AlertKind  `bson:"kind" json:"kind"`
	Severity   int        `bson:"severity" json:"severity"`
	Title      string     `bson:"title" json:"title"`
	Message    string     `bson:"message,omitempty" json:"message,omitempty"`
	DueDate    string     `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Active     bool       `bson:"active" json:"active"`
	CreatedBy  string     `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	ResolvedAt *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
	ResolvedBy string     `bson:"resolved_by,omitempty" json:"resolved_by,omitempty"`
}
