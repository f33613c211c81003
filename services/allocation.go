package services

import (
	"math/rand/v2"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

// The allocation helpers are pure with respect to their inputs: catalog
// snapshot in, assignment out, randomness via the injected *rand.Rand so
// tests can seed it.

// pickTrack chooses a track uniformly at random, excluding lastTrackID
// when more than one track exists. If the exclusion would leave no
// candidates, the full catalog is used.
func pickTrack(rng *rand.Rand, tracks []models.Track, lastTrackID *uint) (models.Track, error) {
	if len(tracks) == 0 {
		return models.Track{}, apperr.BadRequest("no tracks available, please add tracks to the system")
	}
	candidates := tracks
	if lastTrackID != nil && len(tracks) > 1 {
		filtered := make([]models.Track, 0, len(tracks)-1)
		for _, t := range tracks {
			if t.ID != *lastTrackID {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}
	return candidates[rng.IntN(len(candidates))], nil
}

// pickCar chooses a car uniformly at random, excluding currentCarID when
// more than one car exists.
func pickCar(rng *rand.Rand, cars []models.Car, currentCarID *uint) (models.Car, error) {
	if len(cars) == 0 {
		return models.Car{}, apperr.BadRequest("no cars available, please add cars to the system")
	}
	candidates := cars
	if currentCarID != nil && len(cars) > 1 {
		filtered := make([]models.Car, 0, len(cars)-1)
		for _, c := range cars {
			if c.ID != *currentCarID {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}
	return candidates[rng.IntN(len(candidates))], nil
}

// buildAttributions produces the attribution set for a race.
//
// ALL_USERS: one shared car, stored as a single row with no user
// reference. PER_USER: the car catalog is shuffled once and participants
// are assigned round-robin over it, so no car repeats before every car
// has been used.
func buildAttributions(rng *rand.Rand, raceID uint, mode models.AttributionMode, participants []models.User, cars []models.Car, currentCarID *uint) ([]models.Attribution, error) {
	if len(cars) == 0 {
		return nil, apperr.BadRequest("no cars available, please add cars to the system")
	}

	if mode == models.AttributionAllUsers {
		car, err := pickCar(rng, cars, currentCarID)
		if err != nil {
			return nil, err
		}
		return []models.Attribution{{
			RaceID: raceID,
			CarID:  car.ID,
			Notes:  "Shared car for all participants",
		}}, nil
	}

	if len(participants) == 0 {
		return nil, apperr.BadRequest("no participants in the race to assign cars to")
	}

	shuffled := make([]models.Car, len(cars))
	copy(shuffled, cars)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	attributions := make([]models.Attribution, 0, len(participants))
	for i := range participants {
		userID := participants[i].ID
		attributions = append(attributions, models.Attribution{
			RaceID: raceID,
			UserID: &userID,
			CarID:  shuffled[i%len(shuffled)].ID,
		})
	}
	return attributions, nil
}

// pickParameters selects a random subset of race parameters. The subset
// size is drawn uniformly over 0..len(params), so small and large
// configurations are equally likely; which parameters fill the chosen
// count comes from a shuffle.
func pickParameters(rng *rand.Rand, params []models.RaceParameter) []models.RaceParameter {
	if len(params) == 0 {
		return nil
	}
	shuffled := make([]models.RaceParameter, len(params))
	copy(shuffled, params)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	count := rng.IntN(len(shuffled) + 1)
	return shuffled[:count]
}

// pickScoreCollector selects one participant uniformly at random to be
// responsible for entering results.
func pickScoreCollector(rng *rand.Rand, participants []models.User) models.User {
	return participants[rng.IntN(len(participants))]
}
