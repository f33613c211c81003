package models

import "time"

// RaceParameter is an optional feature toggle (e.g. a game modifier) that
// a race may be created with. A random subset is attached at creation.
type RaceParameter struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Description string    `json:"description,omitempty" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
