package models

import "time"

// Party is the daily gathering that races run under. At most one party
// exists per calendar date; the unique index on party_date is what makes
// concurrent get-or-create calls safe.
type Party struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PartyDate time.Time `json:"party_date" gorm:"type:date;uniqueIndex;not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatorID uint      `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Creator *User         `json:"creator,omitempty"`
	Members []PartyMember `json:"members,omitempty" gorm:"foreignKey:PartyID;constraint:OnDelete:CASCADE"`
	Races   []Race        `json:"races,omitempty" gorm:"foreignKey:PartyID;constraint:OnDelete:CASCADE"`
}

// MemberOf returns the membership row for userID, or nil.
func (p *Party) MemberOf(userID uint) *PartyMember {
	for i := range p.Members {
		if p.Members[i].UserID == userID {
			return &p.Members[i]
		}
	}
	return nil
}

func (p *Party) IsMember(userID uint) bool {
	return p.MemberOf(userID) != nil
}

// Host returns the membership row holding the HOST role. Every active
// party has exactly one.
func (p *Party) Host() *PartyMember {
	for i := range p.Members {
		if p.Members[i].IsHost() {
			return &p.Members[i]
		}
	}
	return nil
}

func (p *Party) IsHost(userID uint) bool {
	m := p.MemberOf(userID)
	return m != nil && m.IsHost()
}

// CanManage reports whether the user may administer this party: HOST,
// CO_HOST, or holder of the reserved admin role.
func (p *Party) CanManage(user *User) bool {
	if user.IsAdmin() {
		return true
	}
	m := p.MemberOf(user.ID)
	return m != nil && m.CanManageParty()
}
