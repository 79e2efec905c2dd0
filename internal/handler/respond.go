package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"taskboard/internal/middleware"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// fail maps a service error onto a status code. Anything unrecognised is a
// fault: it is logged and answered with a generic message.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, service.ErrRejected):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request rejected"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Already exists"})
	default:
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	log.WithError(err).WithField("path", c.FullPath()).Debug("invalid request body")
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid input"})
}

func created(c *gin.Context, location string, body any) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, body)
}

func location(format string, id uint) string {
	return fmt.Sprintf(format, id)
}

// currentUser reads the id the auth middleware stored. It answers 401 itself
// when the id is missing.
func currentUser(c *gin.Context) (uint, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return 0, false
	}
	userID, ok := raw.(uint)
	if !ok || userID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return 0, false
	}
	return userID, true
}

// pathID parses a positive integer path parameter. A malformed id cannot
// name anything, so it is answered with 404.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return 0, false
	}
	return uint(id), true
}
