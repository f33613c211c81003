package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/middleware"
)

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// uintQuery parses an optional query parameter. present is false when the
// parameter is absent; a malformed value writes a 400 response and clears
// ok, so absent and invalid are never confused.
func uintQuery(c *gin.Context, name string) (value uint, present, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false, false
	}
	return uint(v), true, true
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	return userID, true
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
}
