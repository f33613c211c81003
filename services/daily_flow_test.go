package services

import (
	"testing"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

// TestDailyRaceFlow walks the happy path of one evening: A opens today's
// party, creates a race, B joins, the race runs, and B reports the win.
func TestDailyRaceFlow(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db, 3, 3)
	parties := NewPartyService(db)
	races := NewRaceService(db, parties, testRNG(7))
	scores := NewScoreService(db, nil)

	a := createTestUser(t, db, "a")
	b := createTestUser(t, db, "b")

	party, err := parties.GetOrCreateToday(a.ID)
	if err != nil {
		t.Fatalf("GetOrCreateToday failed: %v", err)
	}
	if !party.Active || !party.IsHost(a.ID) {
		t.Fatal("party not active with A as host")
	}

	race, err := races.Create(party.ID, models.AttributionPerUser, a.ID)
	if err != nil {
		t.Fatalf("Create race failed: %v", err)
	}
	if race.Status != models.RaceStatusPending || race.TrackID == 0 {
		t.Fatalf("expected pending race with a track, got status=%s track=%d", race.Status, race.TrackID)
	}

	if race, err = races.AddParticipant(race.ID, a.ID); err != nil {
		t.Fatalf("AddParticipant A failed: %v", err)
	}
	if race, err = races.AddParticipant(race.ID, b.ID); err != nil {
		t.Fatalf("AddParticipant B failed: %v", err)
	}

	race, err = races.Start(race.ID, b.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if race.Status != models.RaceStatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", race.Status)
	}
	if len(race.Attributions) != 2 {
		t.Errorf("expected 2 attributions, got %d", len(race.Attributions))
	}
	if race.ScoreCollectorID == nil || !race.IsParticipant(*race.ScoreCollectorID) {
		t.Error("score collector is not one of the participants")
	}

	score, err := scores.Submit(race.ID, b.ID, 1, b.ID)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if score.Points != 2 {
		t.Errorf("expected 2 points for winning a 2-racer race, got %d", score.Points)
	}

	_, err = parties.Leave(party.ID, a.ID)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("expected Forbidden when the host tries to leave, got %v", err)
	}
}
