package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakemelvin/burApp/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListCars(c *gin.Context) {
	cars, err := h.catalogService.ListCars()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

func (h *CatalogHandler) GetCar(c *gin.Context) {
	carID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	car, err := h.catalogService.GetCar(carID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

type catalogEntryRequest struct {
	Name        string `json:"name" binding:"required"`
	PictureURL  string `json:"picture_url"`
	Description string `json:"description"`
}

func (h *CatalogHandler) CreateCar(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	var req catalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	car, err := h.catalogService.CreateCar(req.Name, req.PictureURL, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

func (h *CatalogHandler) DeleteCar(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	carID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteCar(carID, actorID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
}

func (h *CatalogHandler) ListTracks(c *gin.Context) {
	tracks, err := h.catalogService.ListTracks()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracks)
}

func (h *CatalogHandler) GetTrack(c *gin.Context) {
	trackID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	track, err := h.catalogService.GetTrack(trackID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, track)
}

func (h *CatalogHandler) CreateTrack(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	var req catalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	track, err := h.catalogService.CreateTrack(req.Name, req.PictureURL, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, track)
}

func (h *CatalogHandler) DeleteTrack(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	trackID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteTrack(trackID, actorID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Track deleted successfully"})
}

func (h *CatalogHandler) ListRaceParameters(c *gin.Context) {
	params, err := h.catalogService.ListRaceParameters()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, params)
}

func (h *CatalogHandler) CreateRaceParameter(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	var req catalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	param, err := h.catalogService.CreateRaceParameter(req.Name, req.Description, actorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, param)
}
