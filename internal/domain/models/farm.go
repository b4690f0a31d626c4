package models

import "time"

// Farm groups animals and pastures under one holding.
type Farm struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	CountryCode  string     `bson:"country_code" json:"country_code"`
	Location     *GeoPoint  `bson:"location,omitempty" json:"location,omitempty"`
	Boundary     []GeoPoint `bson:"boundary,omitempty" json:"boundary,omitempty"`
	AreaHa       *float64   `bson:"area_ha,omitempty" json:"area_ha,omitempty"`
	ContactName  string     `bson:"contact_name,omitempty" json:"contact_name,omitempty"`
	ContactPhone string     `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
}

// Pasture is a named paddock within a farm, delimited by a polygon.
type Pasture struct {
	ID        string     `bson:"id" json:"id"`
	FarmID    string     `bson:"farm_id" json:"farm_id"`
	Name      string     `bson:"name" json:"name"`
	AreaHa    *float64   `bson:"area_ha,omitempty" json:"area_ha,omitempty"`
	Polygon   []GeoPoint `bson:"polygon" json:"polygon"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
}
