package models

import (
	"strings"
	"time"
)

type RaceStatus string

const (
	RaceStatusPending    RaceStatus = "PENDING"
	RaceStatusInProgress RaceStatus = "IN_PROGRESS"
	RaceStatusCompleted  RaceStatus = "COMPLETED"
	RaceStatusCancelled  RaceStatus = "CANCELLED"
)

// ParseRaceStatus normalizes and validates a caller-supplied status string.
func ParseRaceStatus(s string) (RaceStatus, bool) {
	switch status := RaceStatus(strings.ToUpper(s)); status {
	case RaceStatusPending, RaceStatusInProgress, RaceStatusCompleted, RaceStatusCancelled:
		return status, true
	default:
		return "", false
	}
}

// AttributionMode controls how cars are assigned when a race starts.
type AttributionMode string

const (
	// AttributionPerUser gives every participant their own car, round-robin
	// over a shuffled catalog.
	AttributionPerUser AttributionMode = "PER_USER"
	// AttributionAllUsers gives the whole race a single shared car.
	AttributionAllUsers AttributionMode = "ALL_USERS"
)

func ParseAttributionMode(s string) (AttributionMode, bool) {
	switch mode := AttributionMode(strings.ToUpper(s)); mode {
	case AttributionPerUser, AttributionAllUsers:
		return mode, true
	default:
		return "", false
	}
}

type Race struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	PartyID          uint            `json:"party_id" gorm:"index;not null"`
	CreatorID        uint            `json:"creator_id"`
	Status           RaceStatus      `json:"status" gorm:"not null;default:'PENDING';index;size:20"`
	AttributionMode  AttributionMode `json:"attribution_mode" gorm:"not null;default:'PER_USER';size:20"`
	TrackID          uint            `json:"track_id"`
	ScoreCollectorID *uint           `json:"score_collector_id,omitempty"`
	StartedAt        *time.Time      `json:"started_at,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationships
	Creator        *User           `json:"creator,omitempty"`
	Track          *Track          `json:"track,omitempty"`
	ScoreCollector *User           `json:"score_collector,omitempty"`
	Participants   []User          `json:"participants,omitempty" gorm:"many2many:race_participants"`
	Attributions   []Attribution   `json:"attributions,omitempty" gorm:"foreignKey:RaceID;constraint:OnDelete:CASCADE"`
	Scores         []Score         `json:"scores,omitempty" gorm:"foreignKey:RaceID;constraint:OnDelete:CASCADE"`
	Parameters     []RaceParameter `json:"parameters,omitempty" gorm:"many2many:race_race_parameters"`
}

func (r *Race) IsParticipant(userID uint) bool {
	for i := range r.Participants {
		if r.Participants[i].ID == userID {
			return true
		}
	}
	return false
}

func (r *Race) Start(collectorID uint) {
	now := time.Now()
	r.Status = RaceStatusInProgress
	r.StartedAt = &now
	r.ScoreCollectorID = &collectorID
}

func (r *Race) Complete() {
	now := time.Now()
	r.Status = RaceStatusCompleted
	r.CompletedAt = &now
}

func (r *Race) Cancel() {
	r.Status = RaceStatusCancelled
}

// EffectiveCar resolves "the race's car" under ALL_USERS mode: the single
// attribution row carrying no user reference.
func (r *Race) EffectiveCar() *uint {
	for i := range r.Attributions {
		if r.Attributions[i].UserID == nil {
			id := r.Attributions[i].CarID
			return &id
		}
	}
	return nil
}
