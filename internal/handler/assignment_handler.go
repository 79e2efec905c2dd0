package handler

import (
	"context"
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type AssignmentService interface {
	Assign(ctx context.Context, userID, cardID, assigneeID uint) error
	Unassign(ctx context.Context, userID, cardID, assigneeID uint) error
	ListAssignees(ctx context.Context, userID, cardID uint) ([]service.UserDTO, error)
}

type AssignmentHandler struct {
	assignments AssignmentService
}

func NewAssignmentHandler(assignments AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// Assign godoc
// @Summary   Assign a board member to a card
// @Tags      Cards
// @Accept    json
// @Param     id    path  int                  true  "Card ID"
// @Param     body  body  service.AssignInput  true  "Assignee"
// @Success   204
// @Failure   400  {object}  ErrorResponse
// @Failure   404  {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /cards/{id}/assignees [post]
func (h *AssignmentHandler) Assign(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.AssignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.assignments.Assign(c.Request.Context(), userID, cardID, req.UserID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AssignmentHandler) Unassign(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	assigneeID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := h.assignments.Unassign(c.Request.Context(), userID, cardID, assigneeID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AssignmentHandler) GetAssignees(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	users, err := h.assignments.ListAssignees(c.Request.Context(), userID, cardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
