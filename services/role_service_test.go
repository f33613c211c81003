package services

import (
	"testing"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

func TestCreateRole_NormalizesName(t *testing.T) {
	svc := NewRoleService(newTestDB(t))

	role, err := svc.Create("  track builder ", "builds tracks", []models.Permission{models.PermissionViewTracks})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if role.Name != "TRACK_BUILDER" {
		t.Errorf("expected TRACK_BUILDER, got %s", role.Name)
	}
}

func TestCreateRole_ReservedNameRejected(t *testing.T) {
	svc := NewRoleService(newTestDB(t))
	_, err := svc.Create("great admin", "", nil)
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Errorf("expected BadRequest creating reserved role, got %v", err)
	}
}

func TestCreateRole_DuplicateConflict(t *testing.T) {
	svc := NewRoleService(newTestDB(t))
	if _, err := svc.Create("PIT_CREW", "", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := svc.Create("pit crew", "", nil)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("expected Conflict for duplicate role, got %v", err)
	}
}

func TestUpdateRole_ReservedRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)
	admin := models.Role{Name: models.RoleGreatAdmin, Permissions: []models.Permission{models.PermissionAll}}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin role: %v", err)
	}
	desc := "renamed"
	_, err := svc.Update(admin.ID, &desc, nil)
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Errorf("expected BadRequest updating reserved role, got %v", err)
	}
}

func TestDeleteRole_DetachesFromUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)

	role, err := svc.Create("PIT_CREW", "", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	user := createTestUser(t, db, "alice")
	if err := db.Model(user).Association("Roles").Append(role); err != nil {
		t.Fatalf("failed to assign role: %v", err)
	}

	if err := svc.Delete(role.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var reloaded models.User
	if err := db.Preload("Roles").First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if len(reloaded.Roles) != 0 {
		t.Errorf("expected role detached from user, still has %d roles", len(reloaded.Roles))
	}
}

func TestDeleteRole_ReservedRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)
	admin := models.Role{Name: models.RoleGreatAdmin, Permissions: []models.Permission{models.PermissionAll}}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin role: %v", err)
	}
	err := svc.Delete(admin.ID)
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Errorf("expected BadRequest deleting reserved role, got %v", err)
	}
}
