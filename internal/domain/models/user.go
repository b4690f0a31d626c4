package models

import "time"

// Role of a user within the system.
type Role string

const (
	RoleFarmer       Role = "farmer"
	RoleVeterinarian Role = "veterinarian"
	RoleAdmin        Role = "admin"
)

// User is an authenticated principal. The engine only ever consumes the ID
// for attribution; credentials live outside this struct.
type User struct {
	ID        string    `bson:"id" json:"id"`
	FullName  string    `bson:"full_name" json:"full_name"`
	Email     string    `bson:"email" json:"email"`
	Role      Role      `bson:"role" json:"role"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
