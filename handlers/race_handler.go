package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakemelvin/burApp/models"
	"github.com/jakemelvin/burApp/services"
)

type RaceHandler struct {
	raceService *services.RaceService
}

func NewRaceHandler(raceService *services.RaceService) *RaceHandler {
	return &RaceHandler{raceService: raceService}
}

type createRaceRequest struct {
	PartyID         uint   `json:"party_id" binding:"required"`
	AttributionMode string `json:"attribution_mode"`
}

func (h *RaceHandler) Create(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	var req createRaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode := models.AttributionPerUser
	if req.AttributionMode != "" {
		parsed, valid := models.ParseAttributionMode(req.AttributionMode)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attribution mode: " + req.AttributionMode})
			return
		}
		mode = parsed
	}
	race, err := h.raceService.Create(req.PartyID, mode, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, race)
}

// GetAll lists races, filterable by ?partyId= or ?status=. The response
// envelope carries the total race count.
func (h *RaceHandler) GetAll(c *gin.Context) {
	partyID, hasParty, ok := uintQuery(c, "partyId")
	if !ok {
		return
	}

	var (
		races []models.Race
		err   error
	)
	if hasParty {
		races, err = h.raceService.GetByParty(partyID)
	} else if status := c.Query("status"); status != "" {
		races, err = h.raceService.GetByStatus(status)
	} else {
		races, err = h.raceService.GetAll()
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	total, err := h.raceService.Count()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": races, "total": total})
}

func (h *RaceHandler) GetByID(c *gin.Context) {
	raceID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	race, err := h.raceService.GetByID(raceID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, race)
}

func (h *RaceHandler) AddParticipant(c *gin.Context) {
	raceID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	race, err := h.raceService.AddParticipant(raceID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, race)
}

func (h *RaceHandler) RemoveParticipant(c *gin.Context) {
	raceID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	race, err := h.raceService.RemoveParticipant(raceID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, race)
}

func (h *RaceHandler) Start(c *gin.Context) {
	raceID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	race, err := h.raceService.Start(raceID, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, race)
}

func (h *RaceHandler) Complete(c *gin.Context) {
	raceID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	race, err := h.raceService.Complete(raceID, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, race)
}

func (h *RaceHandler) Cancel(c *gin.Context) {
	raceID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	race, err := h.raceService.Cancel(raceID, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, race)
}

func (h *RaceHandler) ChangeTrack(c *gin.Context) {
	raceID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	race, err := h.raceService.ChangeTrack(raceID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, race)
}

func (h *RaceHandler) ReassignCars(c *gin.Context) {
	raceID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	race, err := h.raceService.ReassignCars(raceID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, race)
}
