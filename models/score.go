package models

import "time"

// Score records one submitted result per (race, user) pair. Rank is what
// the racer reports; Points is derived so that first place scores the
// most (points = participants - rank + 1).
type Score struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RaceID        uint      `json:"race_id" gorm:"index:uniq_race_user,priority:1,unique;not null"`
	UserID        uint      `json:"user_id" gorm:"index:uniq_race_user,priority:2,unique;not null"`
	Rank          int       `json:"rank" gorm:"not null"`
	Points        int       `json:"points" gorm:"not null"`
	SubmittedByID uint      `json:"submitted_by_id" gorm:"not null"`
	SubmittedAt   time.Time `json:"submitted_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	User        *User `json:"user,omitempty"`
	SubmittedBy *User `json:"submitted_by,omitempty"`
}
