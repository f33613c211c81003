package services

import (
	"sync"
	"testing"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

func makeTracks(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range tracks {
		tracks[i] = models.Track{ID: uint(i + 1)}
	}
	return tracks
}

func makeCars(n int) []models.Car {
	cars := make([]models.Car, n)
	for i := range cars {
		cars[i] = models.Car{ID: uint(i + 1)}
	}
	return cars
}

func makeUsers(n int) []models.User {
	users := make([]models.User, n)
	for i := range users {
		users[i] = models.User{ID: uint(i + 1)}
	}
	return users
}

func TestPickTrack_NeverRepeatsLastTrack(t *testing.T) {
	rng := testRNG(1)
	tracks := makeTracks(4)
	last := uint(2)
	for i := 0; i < 1000; i++ {
		track, err := pickTrack(rng, tracks, &last)
		if err != nil {
			t.Fatalf("pickTrack failed: %v", err)
		}
		if track.ID == last {
			t.Fatalf("iteration %d: picked excluded track %d", i, last)
		}
	}
}

func TestPickTrack_ConcurrentDraws(t *testing.T) {
	// The generator is shared by every request handler, so parallel draws
	// must be safe.
	rng := testRNG(12)
	tracks := makeTracks(4)
	last := uint(1)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				track, err := pickTrack(rng, tracks, &last)
				if err != nil {
					t.Errorf("pickTrack failed: %v", err)
					return
				}
				if track.ID == last {
					t.Errorf("picked excluded track %d", last)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestPickTrack_SingleTrackIgnoresExclusion(t *testing.T) {
	rng := testRNG(2)
	tracks := makeTracks(1)
	last := uint(1)
	track, err := pickTrack(rng, tracks, &last)
	if err != nil {
		t.Fatalf("pickTrack failed: %v", err)
	}
	if track.ID != 1 {
		t.Errorf("expected the only track, got %d", track.ID)
	}
}

func TestPickTrack_EmptyCatalog(t *testing.T) {
	rng := testRNG(3)
	_, err := pickTrack(rng, nil, nil)
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Errorf("expected BadRequest for empty catalog, got %v", err)
	}
}

func TestPickCar_NeverRepeatsCurrentCar(t *testing.T) {
	rng := testRNG(4)
	cars := makeCars(3)
	current := uint(1)
	for i := 0; i < 1000; i++ {
		car, err := pickCar(rng, cars, &current)
		if err != nil {
			t.Fatalf("pickCar failed: %v", err)
		}
		if car.ID == current {
			t.Fatalf("iteration %d: picked excluded car %d", i, current)
		}
	}
}

func TestBuildAttributions_PerUserFairness(t *testing.T) {
	rng := testRNG(5)
	participants := makeUsers(5)
	cars := makeCars(3)

	attributions, err := buildAttributions(rng, 1, models.AttributionPerUser, participants, cars, nil)
	if err != nil {
		t.Fatalf("buildAttributions failed: %v", err)
	}
	if len(attributions) != len(participants) {
		t.Fatalf("expected %d attributions, got %d", len(participants), len(attributions))
	}

	usage := make(map[uint]int)
	for _, a := range attributions {
		if a.UserID == nil {
			t.Fatal("PER_USER attribution missing user reference")
		}
		usage[a.CarID]++
	}
	if len(usage) != len(cars) {
		t.Errorf("expected all %d cars to be used, got %d", len(cars), len(usage))
	}
	min, max := len(participants), 0
	for _, n := range usage {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if max-min > 1 {
		t.Errorf("unfair car distribution: min %d, max %d", min, max)
	}
}

func TestBuildAttributions_AllUsersSingleSharedRecord(t *testing.T) {
	rng := testRNG(6)
	participants := makeUsers(4)
	cars := makeCars(3)

	attributions, err := buildAttributions(rng, 1, models.AttributionAllUsers, participants, cars, nil)
	if err != nil {
		t.Fatalf("buildAttributions failed: %v", err)
	}
	if len(attributions) != 1 {
		t.Fatalf("expected a single shared attribution, got %d", len(attributions))
	}
	if attributions[0].UserID != nil {
		t.Error("shared attribution must not reference a user")
	}
	if attributions[0].CarID == 0 {
		t.Error("shared attribution has no car")
	}
}

func TestBuildAttributions_AllUsersExcludesCurrentCar(t *testing.T) {
	rng := testRNG(7)
	cars := makeCars(2)
	current := uint(2)
	for i := 0; i < 200; i++ {
		attributions, err := buildAttributions(rng, 1, models.AttributionAllUsers, makeUsers(2), cars, &current)
		if err != nil {
			t.Fatalf("buildAttributions failed: %v", err)
		}
		if attributions[0].CarID == current {
			t.Fatalf("iteration %d: reassigned the same shared car %d", i, current)
		}
	}
}

func TestBuildAttributions_NoCars(t *testing.T) {
	rng := testRNG(8)
	_, err := buildAttributions(rng, 1, models.AttributionPerUser, makeUsers(2), nil, nil)
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Errorf("expected BadRequest for empty car catalog, got %v", err)
	}
}

func TestBuildAttributions_PerUserWithoutParticipants(t *testing.T) {
	rng := testRNG(9)
	_, err := buildAttributions(rng, 1, models.AttributionPerUser, nil, makeCars(2), nil)
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Errorf("expected BadRequest for empty participant list, got %v", err)
	}
}

func TestPickParameters_SubsetWithinBounds(t *testing.T) {
	rng := testRNG(10)
	params := []models.RaceParameter{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}

	sawEmpty, sawFull := false, false
	for i := 0; i < 1000; i++ {
		chosen := pickParameters(rng, params)
		if len(chosen) > len(params) {
			t.Fatalf("picked %d parameters from a catalog of %d", len(chosen), len(params))
		}
		seen := make(map[uint]bool)
		for _, p := range chosen {
			if seen[p.ID] {
				t.Fatalf("parameter %d picked twice", p.ID)
			}
			seen[p.ID] = true
		}
		if len(chosen) == 0 {
			sawEmpty = true
		}
		if len(chosen) == len(params) {
			sawFull = true
		}
	}
	if !sawEmpty || !sawFull {
		t.Errorf("expected both empty and full subsets over 1000 draws (empty=%v, full=%v)", sawEmpty, sawFull)
	}
}

func TestPickScoreCollector_ReturnsParticipant(t *testing.T) {
	rng := testRNG(11)
	participants := makeUsers(3)
	for i := 0; i < 100; i++ {
		collector := pickScoreCollector(rng, participants)
		if collector.ID < 1 || collector.ID > 3 {
			t.Fatalf("collector %d is not a participant", collector.ID)
		}
	}
}
