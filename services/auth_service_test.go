package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	racer := models.Role{
		Name:        RoleRacer,
		Permissions: []models.Permission{models.PermissionJoinRace, models.PermissionSubmitScore},
	}
	if err := db.Create(&racer).Error; err != nil {
		t.Fatalf("failed to seed racer role: %v", err)
	}
	return NewAuthService(db, "test-secret"), db
}

func TestRegister_AssignsRacerRole(t *testing.T) {
	svc, _ := setupAuthService(t)

	resp, err := svc.Register(&RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("registration did not issue a token pair")
	}
	if resp.User.Role != RoleRacer {
		t.Errorf("expected legacy role %s, got %s", RoleRacer, resp.User.Role)
	}
	if len(resp.User.Roles) != 1 || resp.User.Roles[0] != RoleRacer {
		t.Errorf("expected roles [%s], got %v", RoleRacer, resp.User.Roles)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := setupAuthService(t)

	if _, err := svc.Register(&RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, err := svc.Register(&RegisterRequest{Username: "alice", Password: "secret2"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("expected Conflict for duplicate username, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, db := setupAuthService(t)

	if _, err := svc.Register(&RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := svc.Login(&LoginRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("expected Bearer token type, got %s", resp.TokenType)
	}

	var user models.User
	if err := db.Where("username = ?", "alice").First(&user).Error; err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if user.LastLogin == nil {
		t.Error("login did not record last_login")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := setupAuthService(t)

	if _, err := svc.Register(&RegisterRequest{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, err := svc.Login(&LoginRequest{Username: "alice", Password: "wrong"})
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expected Unauthorized for wrong password, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := setupAuthService(t)
	_, err := svc.Login(&LoginRequest{Username: "nobody", Password: "secret1"})
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expected Unauthorized for unknown user, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	svc, _ := setupAuthService(t)

	registered, err := svc.Register(&RegisterRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	refreshed, err := svc.Refresh(registered.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.User.ID != registered.User.ID {
		t.Errorf("refresh returned a different user: %d vs %d", refreshed.User.ID, registered.User.ID)
	}
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	svc, _ := setupAuthService(t)

	registered, err := svc.Register(&RegisterRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, err = svc.Refresh(registered.Token)
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expected Unauthorized refreshing with access token, got %v", err)
	}
}
