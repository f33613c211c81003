package models

import "time"

// PartyRole is the role a user holds within a single party.
type PartyRole string

const (
	PartyRoleHost        PartyRole = "HOST"
	PartyRoleCoHost      PartyRole = "CO_HOST"
	PartyRoleParticipant PartyRole = "PARTICIPANT"
)

// PartyMember binds a user to a party with exactly one role. The
// (party, user) pair is unique.
type PartyMember struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PartyID     uint      `json:"party_id" gorm:"index:uniq_party_user,priority:1,unique;not null"`
	UserID      uint      `json:"user_id" gorm:"index:uniq_party_user,priority:2,unique;not null"`
	Role        PartyRole `json:"role" gorm:"not null;default:'PARTICIPANT';size:20"`
	InvitedByID *uint     `json:"invited_by_id,omitempty"`
	JoinedAt    time.Time `json:"joined_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	User User `json:"user,omitempty"`
}

func (m *PartyMember) IsHost() bool {
	return m.Role == PartyRoleHost
}

func (m *PartyMember) IsCoHost() bool {
	return m.Role == PartyRoleCoHost
}

// CanManageParty reports whether this membership alone grants party
// management rights. Admin bypass is handled at the party level.
func (m *PartyMember) CanManageParty() bool {
	return m.Role == PartyRoleHost || m.Role == PartyRoleCoHost
}
