package models

import "time"

// DashboardStats summarizes the current herd state. Counts and sums are
// always materialized, zero-valued for empty sets.
type DashboardStats struct {
	ActiveAnimals     int                `json:"active_animals"`
	TotalFarms        int                `json:"total_farms"`
	ActiveAlerts      int                `json:"active_alerts"`
	AnimalsByCategory map[Category]int   `json:"animals_by_category"`
	AnimalsBySale     map[SaleStatus]int `json:"animals_by_sale_status"`
	MilkLiters30d     float64            `json:"milk_liters_30d"`
}

// HerdReport is the nightly dashboard snapshot persisted by the scheduler.
type HerdReport struct {
	ID                string             `bson:"id" json:"id"`
	ReportDate        string             `bson:"report_date" json:"report_date"`
	ActiveAnimals     int                `bson:"active_animals" json:"active_animals"`
	TotalFarms        int                `bson:"total_farms" json:"total_farms"`
	ActiveAlerts      int                `bson:"active_alerts" json:"active_alerts"`
	AnimalsByCategory map[Category]int   `bson:"animals_by_category" json:"animals_by_category"`
	AnimalsBySale     map[SaleStatus]int `bson:"animals_by_sale_status" json:"animals_by_sale_status"`
	MilkLiters30d     float64            `bson:"milk_liters_30d" json:"milk_liters_30d"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}

// PublicAnimalSummary is the read-only payload served to unauthenticated QR
// scans. Production slices carry only the kinds relevant to the animal's
// category.
type PublicAnimalSummary struct {
	Animal        Animal         `json:"animal"`
	Farm          Farm           `json:"farm"`
	MedicalEvents []MedicalEvent `json:"medical_events"`
	MilkRecords   []MilkRecord   `json:"milk_records,omitempty"`
	WeightRecords []WeightRecord `json:"weight_records,omitempty"`
}
