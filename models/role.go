package models

import "time"

// Permission is a single action a role may grant.
type Permission string

const (
	// User management
	PermissionCreateUser   Permission = "CREATE_USER"
	PermissionUpdateUser   Permission = "UPDATE_USER"
	PermissionDeleteUser   Permission = "DELETE_USER"
	PermissionViewAllUsers Permission = "VIEW_ALL_USERS"
	PermissionAssignRoles  Permission = "ASSIGN_ROLES"

	// Party management
	PermissionCreateParty Permission = "CREATE_PARTY"
	PermissionJoinParty   Permission = "JOIN_PARTY"
	PermissionManageParty Permission = "MANAGE_PARTY"
	PermissionDeleteParty Permission = "DELETE_PARTY"
	PermissionViewParty   Permission = "VIEW_PARTY"

	// Race management
	PermissionCreateRace Permission = "CREATE_RACE"
	PermissionStartRace  Permission = "START_RACE"
	PermissionJoinRace   Permission = "JOIN_RACE"
	PermissionLeaveRace  Permission = "LEAVE_RACE"
	PermissionViewRace   Permission = "VIEW_RACE"
	PermissionDeleteRace Permission = "DELETE_RACE"

	// Score management
	PermissionSubmitScore Permission = "SUBMIT_SCORE"
	PermissionViewScore   Permission = "VIEW_SCORE"
	PermissionEditScore   Permission = "EDIT_SCORE"

	// Catalog and statistics
	PermissionViewCars       Permission = "VIEW_CARS"
	PermissionViewTracks     Permission = "VIEW_TRACKS"
	PermissionViewStatistics Permission = "VIEW_STATISTICS"
	PermissionViewHistory    Permission = "VIEW_HISTORY"

	// Profile management
	PermissionUpdateOwnProfile Permission = "UPDATE_OWN_PROFILE"
	PermissionViewOwnProfile   Permission = "VIEW_OWN_PROFILE"

	// Sentinel granting every permission. Checked in HasPermission so the
	// bypass lives in exactly one place.
	PermissionAll Permission = "ALL_PERMISSIONS"
)

// RoleGreatAdmin is the reserved super-admin role name. It cannot be
// created, modified or deleted through role management.
const RoleGreatAdmin = "GREAT_ADMIN"

type Role struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"uniqueIndex;not null;size:50"`
	Description string       `json:"description" gorm:"size:255"`
	Permissions []Permission `json:"permissions" gorm:"serializer:json"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// HasPermission reports whether the role grants the permission, either
// explicitly or via the ALL_PERMISSIONS sentinel.
func (r *Role) HasPermission(p Permission) bool {
	for _, have := range r.Permissions {
		if have == PermissionAll || have == p {
			return true
		}
	}
	return false
}

func (r *Role) IsReserved() bool {
	return r.Name == RoleGreatAdmin
}
