package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

const leaderboardTTL = 10 * time.Minute

type ScoreService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewScoreService(db *gorm.DB, redis *redis.Client) *ScoreService {
	return &ScoreService{db: db, redis: redis}
}

type LeaderboardEntry struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Races    int    `json:"races"`
}

func (s *ScoreService) getRace(raceID uint) (*models.Race, error) {
	var race models.Race
	err := s.db.Preload("Participants").First(&race, raceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("race not found with ID: %d", raceID)
		}
		return nil, err
	}
	return &race, nil
}

// Submit records the rank a participant finished with and derives points
// so that first place scores the most: points = participants - rank + 1.
// One score per (race, user) pair; duplicates are a Conflict.
func (s *ScoreService) Submit(raceID, targetUserID uint, rank int, actorID uint) (*models.Score, error) {
	race, err := s.getRace(raceID)
	if err != nil {
		return nil, err
	}
	if race.Status != models.RaceStatusInProgress && race.Status != models.RaceStatusCompleted {
		return nil, apperr.BadRequest("scores can only be submitted for races in progress or completed")
	}
	if !race.IsParticipant(targetUserID) {
		return nil, apperr.BadRequest("user is not a participant in this race")
	}
	if !race.IsParticipant(actorID) {
		return nil, apperr.Forbidden("only race participants can submit scores")
	}

	participantCount := len(race.Participants)
	if rank < 1 || rank > participantCount {
		return nil, apperr.BadRequest("rank must be between 1 and %d", participantCount)
	}

	var existing int64
	err = s.db.Model(&models.Score{}).
		Where("race_id = ? AND user_id = ?", raceID, targetUserID).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperr.Conflict("score already submitted for this user in this race")
	}

	score := models.Score{
		RaceID:        raceID,
		UserID:        targetUserID,
		Rank:          rank,
		Points:        participantCount - rank + 1,
		SubmittedByID: actorID,
	}
	if err := s.db.Create(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("score already submitted for this user in this race")
		}
		return nil, err
	}
	s.invalidateLeaderboard(race.PartyID)
	log.Printf("Score submitted for user %d in race %d: rank %d, %d points (by user %d)",
		targetUserID, raceID, rank, score.Points, actorID)
	return s.GetByID(score.ID)
}

// Update re-validates the rank against the race's current participant
// count and recomputes points.
func (s *ScoreService) Update(scoreID uint, newRank int, actorID uint) (*models.Score, error) {
	score, err := s.GetByID(scoreID)
	if err != nil {
		return nil, err
	}
	race, err := s.getRace(score.RaceID)
	if err != nil {
		return nil, err
	}
	if race.Status == models.RaceStatusCancelled {
		return nil, apperr.BadRequest("cannot update scores of a cancelled race")
	}
	if !race.IsParticipant(actorID) {
		return nil, apperr.Forbidden("only race participants can update scores")
	}
	participantCount := len(race.Participants)
	if newRank < 1 || newRank > participantCount {
		return nil, apperr.BadRequest("rank must be between 1 and %d", participantCount)
	}
	err = s.db.Model(&models.Score{}).Where("id = ?", scoreID).Updates(map[string]any{
		"rank":   newRank,
		"points": participantCount - newRank + 1,
	}).Error
	if err != nil {
		return nil, err
	}
	s.invalidateLeaderboard(race.PartyID)
	log.Printf("Score %d updated to rank %d by user %d", scoreID, newRank, actorID)
	return s.GetByID(scoreID)
}

func (s *ScoreService) Delete(scoreID, actorID uint) error {
	score, err := s.GetByID(scoreID)
	if err != nil {
		return err
	}
	race, err := s.getRace(score.RaceID)
	if err != nil {
		return err
	}
	if !race.IsParticipant(actorID) {
		return apperr.Forbidden("only race participants can delete scores")
	}
	if err := s.db.Delete(&models.Score{}, scoreID).Error; err != nil {
		return err
	}
	s.invalidateLeaderboard(race.PartyID)
	log.Printf("Score %d deleted by user %d", scoreID, actorID)
	return nil
}

func (s *ScoreService) GetByID(scoreID uint) (*models.Score, error) {
	var score models.Score
	err := s.db.Preload("User").Preload("SubmittedBy").First(&score, scoreID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("score not found with ID: %d", scoreID)
		}
		return nil, err
	}
	return &score, nil
}

func (s *ScoreService) GetByUser(userID uint) ([]models.Score, error) {
	var scores []models.Score
	err := s.db.Preload("User").Preload("SubmittedBy").Where("user_id = ?", userID).Find(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *ScoreService) GetByRace(raceID uint) ([]models.Score, error) {
	var scores []models.Score
	err := s.db.Preload("User").Preload("SubmittedBy").
		Where("race_id = ?", raceID).Order("points DESC").Find(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *ScoreService) GetByRaceAndUser(raceID, userID uint) (*models.Score, error) {
	var score models.Score
	err := s.db.Preload("User").Preload("SubmittedBy").
		Where("race_id = ? AND user_id = ?", raceID, userID).First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no score for user %d in race %d", userID, raceID)
		}
		return nil, err
	}
	return &score, nil
}

// PartyLeaderboard aggregates points across all races of a party. The
// result is cached in redis and invalidated whenever a score changes.
func (s *ScoreService) PartyLeaderboard(partyID uint) ([]LeaderboardEntry, error) {
	key := leaderboardKey(partyID)
	if s.redis != nil {
		data, err := s.redis.Get(context.Background(), key).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(data), &entries); err == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			log.Printf("Redis error getting leaderboard for party %d: %v", partyID, err)
		}
	}

	var entries []LeaderboardEntry
	err := s.db.Model(&models.Score{}).
		Select("scores.user_id AS user_id, users.username AS username, SUM(scores.points) AS points, COUNT(scores.id) AS races").
		Joins("JOIN races ON races.id = scores.race_id").
		Joins("JOIN users ON users.id = scores.user_id").
		Where("races.party_id = ?", partyID).
		Group("scores.user_id, users.username").
		Order("points DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.redis.Set(context.Background(), key, data, leaderboardTTL).Err(); err != nil {
				log.Printf("Failed to cache leaderboard for party %d: %v", partyID, err)
			}
		}
	}
	return entries, nil
}

func (s *ScoreService) invalidateLeaderboard(partyID uint) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(context.Background(), leaderboardKey(partyID)).Err(); err != nil {
		log.Printf("Failed to invalidate leaderboard cache for party %d: %v", partyID, err)
	}
}

func leaderboardKey(partyID uint) string {
	return fmt.Sprintf("leaderboard:party:%d", partyID)
}
