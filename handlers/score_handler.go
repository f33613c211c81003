package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakemelvin/burApp/services"
)

type ScoreHandler struct {
	scoreService *services.ScoreService
}

func NewScoreHandler(scoreService *services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

type submitScoreRequest struct {
	RaceID uint `json:"race_id" binding:"required"`
	UserID uint `json:"user_id" binding:"required"`
	Rank   int  `json:"rank" binding:"required"`
}

func (h *ScoreHandler) Submit(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	var req submitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	score, err := h.scoreService.Submit(req.RaceID, req.UserID, req.Rank, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, score)
}

func (h *ScoreHandler) Update(c *gin.Context) {
	scoreID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Rank int `json:"rank" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	score, err := h.scoreService.Update(scoreID, req.Rank, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *ScoreHandler) Delete(c *gin.Context) {
	scoreID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.scoreService.Delete(scoreID, actorID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Score deleted successfully"})
}

func (h *ScoreHandler) GetByID(c *gin.Context) {
	scoreID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	score, err := h.scoreService.GetByID(scoreID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// GetAll resolves scores by ?raceId=, ?userId=, or both (single score).
func (h *ScoreHandler) GetAll(c *gin.Context) {
	raceID, hasRace, ok := uintQuery(c, "raceId")
	if !ok {
		return
	}
	userID, hasUser, ok := uintQuery(c, "userId")
	if !ok {
		return
	}

	switch {
	case hasRace && hasUser:
		score, err := h.scoreService.GetByRaceAndUser(raceID, userID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, score)
	case hasRace:
		scores, err := h.scoreService.GetByRace(raceID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, scores)
	case hasUser:
		scores, err := h.scoreService.GetByUser(userID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, scores)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "raceId or userId query parameter required"})
	}
}
