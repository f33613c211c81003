package models

import "time"

type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Username  string     `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email     string     `json:"email" gorm:"uniqueIndex;size:100"`
	Password  string     `json:"-" gorm:"not null"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relationships
	Roles  []Role  `json:"roles,omitempty" gorm:"many2many:user_roles"`
	Scores []Score `json:"-" gorm:"foreignKey:UserID"`
}

// PrimaryRole is the legacy single-role view of the role set, kept for
// clients that predate multi-role users. It is derived, never stored.
func (u *User) PrimaryRole() *Role {
	if len(u.Roles) == 0 {
		return nil
	}
	return &u.Roles[0]
}

// IsAdmin reports whether the user owns the reserved GREAT_ADMIN role.
func (u *User) IsAdmin() bool {
	for i := range u.Roles {
		if u.Roles[i].IsReserved() {
			return true
		}
	}
	return false
}

// HasPermission checks the union of all owned roles. GREAT_ADMIN holders
// pass regardless of explicit permission sets.
func (u *User) HasPermission(p Permission) bool {
	if u.IsAdmin() {
		return true
	}
	for i := range u.Roles {
		if u.Roles[i].HasPermission(p) {
			return true
		}
	}
	return false
}

// Authorities returns the deduplicated union of permissions across roles.
func (u *User) Authorities() []Permission {
	seen := make(map[Permission]bool)
	var out []Permission
	for i := range u.Roles {
		for _, p := range u.Roles[i].Permissions {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
