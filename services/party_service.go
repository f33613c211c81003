package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
)

// Reasons reported by ActiveStatus.
const (
	PartyReasonOK          = "OK"
	PartyReasonDeactivated = "PARTY_DEACTIVATED"
	PartyReasonDateMissing = "PARTY_DATE_MISSING"
	PartyReasonNotToday    = "PARTY_DATE_NOT_TODAY"
)

type PartyActiveStatus struct {
	PartyID    uint   `json:"party_id"`
	Active     bool   `json:"active"`
	Actionable bool   `json:"actionable"`
	PartyDate  string `json:"party_date"`
	Today      string `json:"today"`
	Reason     string `json:"reason"`
}

type PartyService struct {
	db *gorm.DB
}

func NewPartyService(db *gorm.DB) *PartyService {
	return &PartyService{db: db}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *PartyService) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Creator").
		Preload("Members.User").
		Preload("Races")
}

func (s *PartyService) getUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Roles").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found with ID: %d", userID)
		}
		return nil, err
	}
	return &user, nil
}

func (s *PartyService) GetByID(partyID uint) (*models.Party, error) {
	var party models.Party
	if err := s.withAssociations(s.db).First(&party, partyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("party not found with ID: %d", partyID)
		}
		return nil, err
	}
	return &party, nil
}

func (s *PartyService) GetByDate(date time.Time) (*models.Party, error) {
	var party models.Party
	err := s.withAssociations(s.db).Where("party_date = ?", dateOnly(date)).First(&party).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no party found for date: %s", date.Format("2006-01-02"))
		}
		return nil, err
	}
	return &party, nil
}

func (s *PartyService) GetAll() ([]models.Party, error) {
	var parties []models.Party
	if err := s.withAssociations(s.db).Find(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

// GetOrCreateToday returns the active party for today, creating it with
// the actor as HOST if none exists yet. Creation races between concurrent
// callers are resolved by the unique index on party_date: a duplicate-key
// insert means somebody else won, so we re-fetch instead of failing.
// Callers who are not yet members are auto-joined as PARTICIPANT.
func (s *PartyService) GetOrCreateToday(actorID uint) (*models.Party, error) {
	today := dateOnly(time.Now())

	var party models.Party
	err := s.withAssociations(s.db).
		Where("party_date = ? AND active = ?", today, true).
		First(&party).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("No party exists for %s, creating one with user %d as host", today.Format("2006-01-02"), actorID)
		newParty := models.Party{
			PartyDate: today,
			Active:    true,
			CreatorID: actorID,
			Members: []models.PartyMember{
				{UserID: actorID, Role: models.PartyRoleHost},
			},
		}
		if createErr := s.db.Create(&newParty).Error; createErr != nil {
			if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
				return nil, createErr
			}
			// Another caller created today's party first; fall through to
			// the re-fetch below.
			log.Printf("Party for %s already created concurrently, re-fetching", today.Format("2006-01-02"))
		}
		if err := s.withAssociations(s.db).Where("party_date = ?", today).First(&party).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if err := s.EnsureMember(&party, actorID); err != nil {
		return nil, err
	}
	return s.GetByID(party.ID)
}

// EnsureMember is the single place implicit joins happen: any entry point
// that implies party membership calls it. It is an existence-checked
// upsert, so repeated calls are harmless.
func (s *PartyService) EnsureMember(party *models.Party, userID uint) error {
	if party.IsMember(userID) {
		return nil
	}
	var count int64
	err := s.db.Model(&models.PartyMember{}).
		Where("party_id = ? AND user_id = ?", party.ID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	member := models.PartyMember{
		PartyID: party.ID,
		UserID:  userID,
		Role:    models.PartyRoleParticipant,
	}
	if err := s.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	party.Members = append(party.Members, member)
	return nil
}

func (s *PartyService) Join(partyID, userID uint) (*models.Party, error) {
	party, err := s.GetByID(partyID)
	if err != nil {
		return nil, err
	}
	if !party.Active {
		return nil, apperr.BadRequest("cannot join inactive party")
	}
	if party.IsMember(userID) {
		return nil, apperr.Conflict("user is already a member of this party")
	}
	if _, err := s.getUser(userID); err != nil {
		return nil, err
	}
	member := models.PartyMember{
		PartyID: partyID,
		UserID:  userID,
		Role:    models.PartyRoleParticipant,
	}
	if err := s.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("user is already a member of this party")
		}
		return nil, err
	}
	log.Printf("User %d joined party %d", userID, partyID)
	return s.GetByID(partyID)
}

func (s *PartyService) Leave(partyID, userID uint) (*models.Party, error) {
	party, err := s.GetByID(partyID)
	if err != nil {
		return nil, err
	}
	member := party.MemberOf(userID)
	if member == nil {
		return nil, apperr.BadRequest("user is not a member of this party")
	}
	if member.IsHost() {
		return nil, apperr.Forbidden("party host cannot leave, transfer ownership or deactivate the party first")
	}
	if err := s.db.Delete(&models.PartyMember{}, member.ID).Error; err != nil {
		return nil, err
	}
	log.Printf("User %d left party %d", userID, partyID)
	return s.GetByID(partyID)
}

// AssignCoHost promotes a member to CO_HOST. Only the HOST (or an admin)
// may delegate.
func (s *PartyService) AssignCoHost(partyID, targetUserID, actorID uint) (*models.Party, error) {
	party, err := s.GetByID(partyID)
	if err != nil {
		return nil, err
	}
	actor, err := s.getUser(actorID)
	if err != nil {
		return nil, err
	}
	if !party.IsHost(actorID) && !actor.IsAdmin() {
		return nil, apperr.Forbidden("only the party host can assign co-hosts")
	}
	target := party.MemberOf(targetUserID)
	if target == nil {
		return nil, apperr.BadRequest("user must be a party member to become a co-host")
	}
	if target.IsHost() {
		return nil, apperr.BadRequest("the host cannot be assigned as co-host")
	}
	if target.IsCoHost() {
		return nil, apperr.Conflict("user is already a co-host of this party")
	}
	updates := map[string]any{"role": models.PartyRoleCoHost, "invited_by_id": actorID}
	if err := s.db.Model(&models.PartyMember{}).Where("id = ?", target.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	log.Printf("User %d assigned as co-host of party %d by %d", targetUserID, partyID, actorID)
	return s.GetByID(partyID)
}

func (s *PartyService) RemoveCoHost(partyID, targetUserID, actorID uint) (*models.Party, error) {
	party, err := s.GetByID(partyID)
	if err != nil {
		return nil, err
	}
	actor, err := s.getUser(actorID)
	if err != nil {
		return nil, err
	}
	if !party.IsHost(actorID) && !actor.IsAdmin() {
		return nil, apperr.Forbidden("only the party host can remove co-hosts")
	}
	target := party.MemberOf(targetUserID)
	if target == nil {
		return nil, apperr.BadRequest("user is not a member of this party")
	}
	if target.IsHost() {
		return nil, apperr.BadRequest("cannot demote the party host")
	}
	if !target.IsCoHost() {
		return nil, apperr.BadRequest("user is not a co-host of this party")
	}
	err = s.db.Model(&models.PartyMember{}).
		Where("id = ?", target.ID).
		Update("role", models.PartyRoleParticipant).Error
	if err != nil {
		return nil, err
	}
	log.Printf("User %d removed as co-host of party %d by %d", targetUserID, partyID, actorID)
	return s.GetByID(partyID)
}

// TransferOwnership demotes the current HOST to CO_HOST and promotes the
// target member to HOST, keeping exactly one host at all times.
func (s *PartyService) TransferOwnership(partyID, newHostID, actorID uint) (*models.Party, error) {
	party, err := s.GetByID(partyID)
	if err != nil {
		return nil, err
	}
	actor, err := s.getUser(actorID)
	if err != nil {
		return nil, err
	}
	if !party.IsHost(actorID) && !actor.IsAdmin() {
		return nil, apperr.Forbidden("only the current host can transfer party ownership")
	}
	host := party.Host()
	if host == nil {
		return nil, apperr.BadRequest("party has no host to transfer from")
	}
	target := party.MemberOf(newHostID)
	if target == nil {
		return nil, apperr.BadRequest("new host must be a party member")
	}
	if target.IsHost() {
		return nil, apperr.Conflict("user is already the host of this party")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PartyMember{}).Where("id = ?", host.ID).
			Update("role", models.PartyRoleCoHost).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PartyMember{}).Where("id = ?", target.ID).
			Update("role", models.PartyRoleHost).Error; err != nil {
			return err
		}
		return tx.Model(&models.Party{}).Where("id = ?", partyID).
			Update("creator_id", newHostID).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Party %d ownership transferred from %d to %d", partyID, host.UserID, newHostID)
	return s.GetByID(partyID)
}

// Deactivate soft-deletes the party. Membership rows and race history are
// kept.
func (s *PartyService) Deactivate(partyID, actorID uint) error {
	party, err := s.GetByID(partyID)
	if err != nil {
		return err
	}
	actor, err := s.getUser(actorID)
	if err != nil {
		return err
	}
	if !party.IsHost(actorID) && !actor.IsAdmin() {
		return apperr.Forbidden("only the party host can deactivate the party")
	}
	err = s.db.Model(&models.Party{}).Where("id = ?", partyID).Update("active", false).Error
	if err != nil {
		return err
	}
	log.Printf("Party %d deactivated by user %d", partyID, actorID)
	return nil
}

func (s *PartyService) Members(partyID uint) ([]models.PartyMember, error) {
	if _, err := s.GetByID(partyID); err != nil {
		return nil, err
	}
	var members []models.PartyMember
	err := s.db.Preload("User").Where("party_id = ?", partyID).Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// ActiveStatus answers whether the party can still be acted on: it must
// be active and dated today.
func (s *PartyService) ActiveStatus(partyID uint) (*PartyActiveStatus, error) {
	party, err := s.GetByID(partyID)
	if err != nil {
		return nil, err
	}
	today := dateOnly(time.Now())
	partyDate := dateOnly(party.PartyDate)
	isToday := !party.PartyDate.IsZero() && partyDate.Equal(today)

	reason := PartyReasonOK
	switch {
	case !party.Active:
		reason = PartyReasonDeactivated
	case party.PartyDate.IsZero():
		reason = PartyReasonDateMissing
	case !isToday:
		reason = PartyReasonNotToday
	}

	return &PartyActiveStatus{
		PartyID:    party.ID,
		Active:     party.Active,
		Actionable: party.Active && isToday,
		PartyDate:  partyDate.Format("2006-01-02"),
		Today:      today.Format("2006-01-02"),
		Reason:     reason,
	}, nil
}
