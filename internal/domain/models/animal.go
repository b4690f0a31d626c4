package models

import "time"

// Category classifies an animal's production purpose.
type Category string

const (
	CategoryDairy Category = "dairy"
	CategoryBeef  Category = "beef"
	CategoryDual  Category = "dual"
)

// LifecycleStatus tracks where an animal is in its life on the farm.
type LifecycleStatus string

const (
	LifecycleActive   LifecycleStatus = "active"
	LifecycleSold     LifecycleStatus = "sold"
	LifecycleReserved LifecycleStatus = "reserved"
	LifecycleDead     LifecycleStatus = "dead"
	LifecycleRetired  LifecycleStatus = "retired"
)

// SaleStatus tracks the commercial availability of an animal.
type SaleStatus string

const (
	SaleAvailable SaleStatus = "available"
	SaleReserved  SaleStatus = "reserved"
	SaleSold      SaleStatus = "sold"
)

// Sex of an animal.
type Sex string

const (
	SexFemale Sex = "F"
	SexMale   Sex = "M"
)

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Animal is a single tracked head of livestock. The (FarmID, TagNumber)
// pair is unique; PublicToken is minted at registration and resolves the
// unauthenticated QR summary.
type Animal struct {
	ID             string          `bson:"id" json:"id"`
	FarmID         string          `bson:"farm_id" json:"farm_id"`
	TagNumber      string          `bson:"tag_number" json:"tag_number"`
	OfficialEarTag string          `bson:"official_ear_tag,omitempty" json:"official_ear_tag,omitempty"`
	Name           string          `bson:"name,omitempty" json:"name,omitempty"`
	Sex            Sex             `bson:"sex" json:"sex"`
	Breed          string          `bson:"breed,omitempty" json:"breed,omitempty"`
	BirthDate      string          `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
	WeightKg       *float64        `bson:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	Category       Category        `bson:"category" json:"category"`
	Lifecycle      LifecycleStatus `bson:"lifecycle" json:"lifecycle"`
	SaleStatus     SaleStatus      `bson:"sale_status" json:"sale_status"`
	Price          *float64        `bson:"price,omitempty" json:"price,omitempty"`
	PhotoURL       string          `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	ContactName    string          `bson:"contact_name,omitempty" json:"contact_name,omitempty"`
	ContactPhone   string          `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	SireID         string          `bson:"sire_id,omitempty" json:"sire_id,omitempty"`
	DamID          string          `bson:"dam_id,omitempty" json:"dam_id,omitempty"`
	LastPosition   *GeoPoint       `bson:"last_position,omitempty" json:"last_position,omitempty"`
	LastPositionAt *time.Time      `bson:"last_position_at,omitempty" json:"last_position_at,omitempty"`
	PublicToken    string          `bson:"public_token" json:"public_token"`
	CreatedAt      time.Time       `bson:"created_at" json:"created_at"`
}

// DisplayName returns the animal's name, falling back to its tag number.
func (a Animal) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.TagNumber
}

// IsDairy reports whether the animal's category includes dairy production.
func (a Animal) IsDairy() bool {
	return a.Category == CategoryDairy || a.Category == CategoryDual
}

// IsBeef reports whether the animal's category includes beef production.
func (a Animal) IsBeef() bool {
	return a.Category == CategoryBeef || a.Category == CategoryDual
}
