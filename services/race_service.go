package services

import (
	"errors"
	"log"
	"math/rand/v2"
	"time"

	"gorm.io/gorm"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

type RaceService struct {
	db      *gorm.DB
	parties *PartyService
	rng     *rand.Rand
}

func NewRaceService(db *gorm.DB, parties *PartyService, rng *rand.Rand) *RaceService {
	return &RaceService{db: db, parties: parties, rng: rng}
}

func (s *RaceService) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Creator").
		Preload("Track").
		Preload("ScoreCollector").
		Preload("Participants").
		Preload("Attributions.Car").
		Preload("Parameters").
		Preload("Scores")
}

func (s *RaceService) GetByID(raceID uint) (*models.Race, error) {
	var race models.Race
	if err := s.withAssociations(s.db).First(&race, raceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("race not found with ID: %d", raceID)
		}
		return nil, err
	}
	return &race, nil
}

// Create produces a PENDING race for the party. The actor is implicitly
// joined to the party if they are not yet a member. The track is drawn at
// random, biased against repeating the party's most recent one, and a
// random subset of race parameters is attached (subset size uniform over
// 0..N).
func (s *RaceService) Create(partyID uint, mode models.AttributionMode, actorID uint) (*models.Race, error) {
	party, err := s.parties.GetByID(partyID)
	if err != nil {
		return nil, err
	}
	if _, err := s.parties.getUser(actorID); err != nil {
		return nil, err
	}
	if err := s.parties.EnsureMember(party, actorID); err != nil {
		return nil, err
	}

	var tracks []models.Track
	if err := s.db.Find(&tracks).Error; err != nil {
		return nil, err
	}

	var lastTrackID *uint
	var lastRace models.Race
	err = s.db.Where("party_id = ?", partyID).Order("id DESC").First(&lastRace).Error
	if err == nil {
		lastTrackID = &lastRace.TrackID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	track, err := pickTrack(s.rng, tracks, lastTrackID)
	if err != nil {
		return nil, err
	}

	var params []models.RaceParameter
	if err := s.db.Find(&params).Error; err != nil {
		return nil, err
	}
	chosen := pickParameters(s.rng, params)

	race := models.Race{
		PartyID:         partyID,
		CreatorID:       actorID,
		Status:          models.RaceStatusPending,
		AttributionMode: mode,
		TrackID:         track.ID,
		Parameters:      chosen,
	}
	if err := s.db.Create(&race).Error; err != nil {
		return nil, err
	}
	log.Printf("Race %d created for party %d by user %d (mode=%s, track=%d, %d parameters)",
		race.ID, partyID, actorID, mode, track.ID, len(chosen))
	return s.GetByID(race.ID)
}

// AddParticipant joins a user to a PENDING race, implying party
// membership. Holders of the reserved admin role administer, they do not
// race.
func (s *RaceService) AddParticipant(raceID, userID uint) (*models.Race, error) {
	race, err := s.GetByID(raceID)
	if err != nil {
		return nil, err
	}
	if race.Status != models.RaceStatusPending {
		return nil, apperr.BadRequest("can only add participants to pending races")
	}
	user, err := s.parties.getUser(userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, apperr.Forbidden("administrators cannot participate in races, only racers can join")
	}
	party, err := s.parties.GetByID(race.PartyID)
	if err != nil {
		return nil, err
	}
	if err := s.parties.EnsureMember(party, userID); err != nil {
		return nil, err
	}
	if race.IsParticipant(userID) {
		return nil, apperr.Conflict("user is already a participant in this race")
	}
	if err := s.db.Model(race).Association("Participants").Append(user); err != nil {
		return nil, err
	}
	log.Printf("Participant %d added to race %d", userID, raceID)
	return s.GetByID(raceID)
}

func (s *RaceService) RemoveParticipant(raceID, userID uint) (*models.Race, error) {
	race, err := s.GetByID(raceID)
	if err != nil {
		return nil, err
	}
	if race.Status != models.RaceStatusPending {
		return nil, apperr.BadRequest("can only remove participants from pending races")
	}
	user, err := s.parties.getUser(userID)
	if err != nil {
		return nil, err
	}
	if !race.IsParticipant(userID) {
		return nil, apperr.BadRequest("user is not a participant in this race")
	}
	if err := s.db.Model(race).Association("Participants").Delete(user); err != nil {
		return nil, err
	}
	log.Printf("Participant %d removed from race %d", userID, raceID)
	return s.GetByID(raceID)
}

// Start moves a PENDING race to IN_PROGRESS. Car attributions are created
// exactly once: if any already exist (including ones written by a
// concurrent start), they are left untouched. One participant is chosen
// at random as score collector.
func (s *RaceService) Start(raceID, actorID uint) (*models.Race, error) {
	race, err := s.GetByID(raceID)
	if err != nil {
		return nil, err
	}
	if !race.IsParticipant(actorID) {
		return nil, apperr.Forbidden("only joined race participants can start the race")
	}
	if race.Status != models.RaceStatusPending {
		return nil, apperr.BadRequest("race must be in PENDING status to start")
	}
	if len(race.Participants) == 0 {
		return nil, apperr.BadRequest("cannot start race without participants")
	}

	collector := pickScoreCollector(s.rng, race.Participants)
	now := time.Now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Attribution{}).Where("race_id = ?", raceID).Count(&existing).Error; err != nil {
			return err
		}
		if existing == 0 {
			var cars []models.Car
			if err := tx.Find(&cars).Error; err != nil {
				return err
			}
			attributions, err := buildAttributions(s.rng, raceID, race.AttributionMode, race.Participants, cars, nil)
			if err != nil {
				return err
			}
			if err := tx.Create(&attributions).Error; err != nil {
				return err
			}
		} else {
			log.Printf("Race %d already has %d attributions, skipping attribution creation", raceID, existing)
		}
		return tx.Model(&models.Race{}).Where("id = ?", raceID).Updates(map[string]any{
			"status":             models.RaceStatusInProgress,
			"started_at":         now,
			"score_collector_id": collector.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Race %d started by user %d, score collector: %d", raceID, actorID, collector.ID)
	return s.GetByID(raceID)
}

func (s *RaceService) Complete(raceID, actorID uint) (*models.Race, error) {
	race, err := s.GetByID(raceID)
	if err != nil {
		return nil, err
	}
	if !race.IsParticipant(actorID) {
		return nil, apperr.Forbidden("only joined race participants can complete the race")
	}
	if race.Status != models.RaceStatusInProgress {
		return nil, apperr.BadRequest("race must be in IN_PROGRESS status to complete")
	}
	now := time.Now()
	err = s.db.Model(&models.Race{}).Where("id = ?", raceID).Updates(map[string]any{
		"status":       models.RaceStatusCompleted,
		"completed_at": now,
	}).Error
	if err != nil {
		return nil, err
	}
	log.Printf("Race %d completed by user %d", raceID, actorID)
	return s.GetByID(raceID)
}

// Cancel is a party-management action: only the race creator, a party
// manager or an admin may cancel, and never after completion.
func (s *RaceService) Cancel(raceID, actorID uint) (*models.Race, error) {
	race, err := s.GetByID(raceID)
	if err != nil {
		return nil, err
	}
	actor, err := s.parties.getUser(actorID)
	if err != nil {
		return nil, err
	}
	party, err := s.parties.GetByID(race.PartyID)
	if err != nil {
		return nil, err
	}
	if race.CreatorID != actorID && !party.CanManage(actor) {
		return nil, apperr.Forbidden("only the race creator or party managers can cancel races")
	}
	if race.Status == models.RaceStatusCompleted {
		return nil, apperr.BadRequest("cannot cancel completed race")
	}
	err = s.db.Model(&models.Race{}).Where("id = ?", raceID).
		Update("status", models.RaceStatusCancelled).Error
	if err != nil {
		return nil, err
	}
	log.Printf("Race %d cancelled by user %d", raceID, actorID)
	return s.GetByID(raceID)
}

// ChangeTrack re-rolls the track for a PENDING race, excluding the one
// currently assigned.
func (s *RaceService) ChangeTrack(raceID uint) (*models.Race, error) {
	race, err := s.GetByID(raceID)
	if err != nil {
		return nil, err
	}
	if race.Status != models.RaceStatusPending {
		return nil, apperr.BadRequest("can only change track for pending races")
	}
	var tracks []models.Track
	if err := s.db.Find(&tracks).Error; err != nil {
		return nil, err
	}
	current := race.TrackID
	track, err := pickTrack(s.rng, tracks, &current)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Race{}).Where("id = ?", raceID).Update("track_id", track.ID).Error; err != nil {
		return nil, err
	}
	log.Printf("Track changed for race %d to track %d", raceID, track.ID)
	return s.GetByID(raceID)
}

// ReassignCars discards all attributions of a PENDING race and draws new
// ones. Under ALL_USERS the previously shared car is excluded from the
// new draw.
func (s *RaceService) ReassignCars(raceID uint) (*models.Race, error) {
	race, err := s.GetByID(raceID)
	if err != nil {
		return nil, err
	}
	if race.Status != models.RaceStatusPending {
		return nil, apperr.BadRequest("can only reassign cars for pending races")
	}
	var cars []models.Car
	if err := s.db.Find(&cars).Error; err != nil {
		return nil, err
	}

	var currentCarID *uint
	if race.AttributionMode == models.AttributionAllUsers {
		currentCarID = race.EffectiveCar()
	}
	attributions, err := buildAttributions(s.rng, raceID, race.AttributionMode, race.Participants, cars, currentCarID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("race_id = ?", raceID).Delete(&models.Attribution{}).Error; err != nil {
			return err
		}
		return tx.Create(&attributions).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Reassigned %d car attributions for race %d", len(attributions), raceID)
	return s.GetByID(raceID)
}

func (s *RaceService) GetAll() ([]models.Race, error) {
	var races []models.Race
	if err := s.withAssociations(s.db).Find(&races).Error; err != nil {
		return nil, err
	}
	return races, nil
}

func (s *RaceService) GetByParty(partyID uint) ([]models.Race, error) {
	var races []models.Race
	if err := s.withAssociations(s.db).Where("party_id = ?", partyID).Find(&races).Error; err != nil {
		return nil, err
	}
	return races, nil
}

func (s *RaceService) GetByStatus(status string) ([]models.Race, error) {
	parsed, ok := models.ParseRaceStatus(status)
	if !ok {
		return nil, apperr.BadRequest("invalid race status: %s", status)
	}
	var races []models.Race
	if err := s.withAssociations(s.db).Where("status = ?", parsed).Find(&races).Error; err != nil {
		return nil, err
	}
	return races, nil
}

func (s *RaceService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Race{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
