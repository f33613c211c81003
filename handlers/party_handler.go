package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jakemelvin/burApp/services"
)

type PartyHandler struct {
	partyService *services.PartyService
	scoreService *services.ScoreService
}

func NewPartyHandler(partyService *services.PartyService, scoreService *services.ScoreService) *PartyHandler {
	return &PartyHandler{partyService: partyService, scoreService: scoreService}
}

// GetAll lists parties; with ?date=YYYY-MM-DD it resolves a single party.
func (h *PartyHandler) GetAll(c *gin.Context) {
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		party, err := h.partyService.GetByDate(date)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, party)
		return
	}

	parties, err := h.partyService.GetAll()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, parties)
}

func (h *PartyHandler) GetByID(c *gin.Context) {
	partyID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	party, err := h.partyService.GetByID(partyID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, party)
}

func (h *PartyHandler) GetOrCreateToday(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	party, err := h.partyService.GetOrCreateToday(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, party)
}

func (h *PartyHandler) Join(c *gin.Context) {
	partyID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	party, err := h.partyService.Join(partyID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, party)
}

func (h *PartyHandler) Leave(c *gin.Context) {
	partyID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	party, err := h.partyService.Leave(partyID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, party)
}

func (h *PartyHandler) AssignCoHost(c *gin.Context) {
	partyID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	targetID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	party, err := h.partyService.AssignCoHost(partyID, targetID, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, party)
}

func (h *PartyHandler) RemoveCoHost(c *gin.Context) {
	partyID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	targetID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	party, err := h.partyService.RemoveCoHost(partyID, targetID, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, party)
}

func (h *PartyHandler) TransferOwnership(c *gin.Context) {
	partyID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	newHostID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	party, err := h.partyService.TransferOwnership(partyID, newHostID, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, party)
}

func (h *PartyHandler) Deactivate(c *gin.Context) {
	partyID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.partyService.Deactivate(partyID, actorID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Party deactivated successfully"})
}

func (h *PartyHandler) Members(c *gin.Context) {
	partyID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	members, err := h.partyService.Members(partyID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *PartyHandler) ActiveStatus(c *gin.Context) {
	partyID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	status, err := h.partyService.ActiveStatus(partyID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *PartyHandler) Leaderboard(c *gin.Context) {
	partyID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.partyService.GetByID(partyID); err != nil {
		abortWithError(c, err)
		return
	}
	entries, err := h.scoreService.PartyLeaderboard(partyID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
