package handler

import (
	"context"
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentService interface {
	Create(ctx context.Context, userID uint, in service.CreateCommentInput) (*service.CommentDTO, error)
	Get(ctx context.Context, userID, commentID uint) (*service.CommentDTO, error)
	ListForCard(ctx context.Context, userID, cardID uint) ([]service.CommentDTO, error)
	Update(ctx context.Context, userID, commentID uint, in service.UpdateCommentInput) (*service.CommentDTO, error)
	Delete(ctx context.Context, userID, commentID uint) error
}

type CommentHandler struct {
	comments CommentService
}

func NewCommentHandler(comments CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Create godoc
// @Summary   Comment on a card
// @Tags      Comments
// @Accept    json
// @Produce   json
// @Param     comment  body      service.CreateCommentInput  true  "Comment"
// @Success   201      {object}  service.CommentDTO
// @Failure   404      {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.CreateCommentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, location("/comments/%d", comment.ID), comment)
}

func (h *CommentHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comment, err := h.comments.Get(c.Request.Context(), userID, commentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) GetByCardID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.comments.ListForCard(c.Request.Context(), userID, cardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Update changes the text of the caller's own comment.
func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateCommentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), userID, commentID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), userID, commentID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
