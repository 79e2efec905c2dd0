package handler

import (
	"context"
	"fmt"
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type MemberService interface {
	AddMember(ctx context.Context, userID, boardID uint, in service.AddMemberInput) (*service.MemberDTO, error)
	ListMembers(ctx context.Context, userID, boardID uint) ([]service.MemberDTO, error)
	UpdateRole(ctx context.Context, userID, boardID, memberID uint, in service.UpdateMemberInput) (*service.MemberDTO, error)
	RemoveMember(ctx context.Context, userID, boardID, memberID uint) error
	Leave(ctx context.Context, userID, boardID uint) error
}

type MemberHandler struct {
	members MemberService
}

func NewMemberHandler(members MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

// Add godoc
// @Summary   Give a registered user access to a board
// @Tags      Members
// @Accept    json
// @Produce   json
// @Param     id      path      int                     true  "Board ID"
// @Param     member  body      service.AddMemberInput  true  "Member"
// @Success   201     {object}  service.MemberDTO
// @Failure   404     {object}  ErrorResponse
// @Failure   409     {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /boards/{id}/members [post]
func (h *MemberHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.AddMemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.members.AddMember(c.Request.Context(), userID, boardID, req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, fmt.Sprintf("/boards/%d/members/%d", boardID, member.UserID), member)
}

func (h *MemberHandler) GetAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.members.ListMembers(c.Request.Context(), userID, boardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *MemberHandler) UpdateRole(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	var req service.UpdateMemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.members.UpdateRole(c.Request.Context(), userID, boardID, memberID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) Remove(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := h.members.RemoveMember(c.Request.Context(), userID, boardID, memberID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Leave removes the caller from the board.
func (h *MemberHandler) Leave(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.members.Leave(c.Request.Context(), userID, boardID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
