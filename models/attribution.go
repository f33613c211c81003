package models

import "time"

// Attribution assigns a car within a race. Under PER_USER mode there is
// one row per participant; under ALL_USERS a single row with a nil UserID
// represents the shared car.
type Attribution struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RaceID    uint      `json:"race_id" gorm:"index;not null"`
	UserID    *uint     `json:"user_id,omitempty"`
	CarID     uint      `json:"car_id" gorm:"not null"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User *User `json:"user,omitempty"`
	Car  *Car  `json:"car,omitempty"`
}
