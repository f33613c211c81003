package models

import "testing"

func TestRoleHasPermission(t *testing.T) {
	role := Role{Name: "RACER", Permissions: []Permission{PermissionJoinRace, PermissionSubmitScore}}

	if !role.HasPermission(PermissionJoinRace) {
		t.Error("explicit permission not granted")
	}
	if role.HasPermission(PermissionDeleteUser) {
		t.Error("permission granted without being listed")
	}
}

func TestRoleAllPermissionsSentinel(t *testing.T) {
	role := Role{Name: RoleGreatAdmin, Permissions: []Permission{PermissionAll}}

	for _, p := range []Permission{PermissionCreateUser, PermissionDeleteRace, PermissionViewStatistics} {
		if !role.HasPermission(p) {
			t.Errorf("sentinel did not grant %s", p)
		}
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := User{Roles: []Role{{Name: RoleGreatAdmin}}}
	racer := User{Roles: []Role{{Name: "RACER"}}}

	if !admin.IsAdmin() {
		t.Error("GREAT_ADMIN holder not recognized as admin")
	}
	if racer.IsAdmin() {
		t.Error("racer recognized as admin")
	}
}

func TestUserHasPermission_AdminBypass(t *testing.T) {
	admin := User{Roles: []Role{{Name: RoleGreatAdmin}}}
	if !admin.HasPermission(PermissionDeleteUser) {
		t.Error("admin bypass did not grant permission")
	}
}

func TestUserAuthorities_Deduplicated(t *testing.T) {
	user := User{Roles: []Role{
		{Name: "A", Permissions: []Permission{PermissionJoinRace, PermissionViewParty}},
		{Name: "B", Permissions: []Permission{PermissionJoinRace, PermissionSubmitScore}},
	}}

	authorities := user.Authorities()
	if len(authorities) != 3 {
		t.Fatalf("expected 3 deduplicated permissions, got %d", len(authorities))
	}
	seen := make(map[Permission]bool)
	for _, p := range authorities {
		if seen[p] {
			t.Errorf("permission %s appears twice", p)
		}
		seen[p] = true
	}
}

func TestPrimaryRole(t *testing.T) {
	var none User
	if none.PrimaryRole() != nil {
		t.Error("expected nil primary role for user without roles")
	}
	user := User{Roles: []Role{{Name: "RACER"}, {Name: "PARTY_MANAGER"}}}
	if got := user.PrimaryRole(); got == nil || got.Name != "RACER" {
		t.Errorf("expected first role as primary, got %v", got)
	}
}

func TestParseRaceStatus(t *testing.T) {
	if status, ok := ParseRaceStatus("in_progress"); !ok || status != RaceStatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %q (ok=%v)", status, ok)
	}
	if _, ok := ParseRaceStatus("RUNNING"); ok {
		t.Error("unknown status accepted")
	}
}

func TestParseAttributionMode(t *testing.T) {
	if mode, ok := ParseAttributionMode("all_users"); !ok || mode != AttributionAllUsers {
		t.Errorf("expected ALL_USERS, got %q (ok=%v)", mode, ok)
	}
	if _, ok := ParseAttributionMode("SHARED"); ok {
		t.Error("unknown mode accepted")
	}
}

func TestPartyHostHelpers(t *testing.T) {
	party := Party{Members: []PartyMember{
		{UserID: 1, Role: PartyRoleHost},
		{UserID: 2, Role: PartyRoleCoHost},
		{UserID: 3, Role: PartyRoleParticipant},
	}}

	if host := party.Host(); host == nil || host.UserID != 1 {
		t.Error("Host did not return the HOST member")
	}
	if !party.IsHost(1) || party.IsHost(2) {
		t.Error("IsHost misidentified the host")
	}
	if !party.IsMember(3) || party.IsMember(4) {
		t.Error("IsMember misidentified membership")
	}

	cohost := User{ID: 2}
	participant := User{ID: 3}
	admin := User{ID: 9, Roles: []Role{{Name: RoleGreatAdmin}}}
	if !party.CanManage(&cohost) {
		t.Error("co-host cannot manage party")
	}
	if party.CanManage(&participant) {
		t.Error("participant can manage party")
	}
	if !party.CanManage(&admin) {
		t.Error("admin bypass missing for party management")
	}
}

func TestRaceEffectiveCar(t *testing.T) {
	userID := uint(1)
	perUser := Race{Attributions: []Attribution{{UserID: &userID, CarID: 5}}}
	if perUser.EffectiveCar() != nil {
		t.Error("EffectiveCar resolved a per-user attribution as shared")
	}

	shared := Race{Attributions: []Attribution{{CarID: 7}}}
	if car := shared.EffectiveCar(); car == nil || *car != 7 {
		t.Error("EffectiveCar did not resolve the shared attribution")
	}
}
