package models

import "time"

// Car is a catalog entry handed out by the attribution algorithms.
type Car struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	PictureURL string    `json:"picture_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
