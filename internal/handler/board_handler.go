package handler

import (
	"context"
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardService interface {
	Create(ctx context.Context, userID uint, in service.CreateBoardInput) (*service.BoardDTO, error)
	Get(ctx context.Context, userID, boardID uint) (*service.BoardDTO, error)
	ListForUser(ctx context.Context, userID uint) ([]service.BoardDTO, error)
	ListArchivedForUser(ctx context.Context, userID uint) ([]service.BoardDTO, error)
	Update(ctx context.Context, userID, boardID uint, in service.UpdateBoardInput) (*service.BoardDTO, error)
	Delete(ctx context.Context, userID, boardID uint) error
}

type BoardHandler struct {
	boards BoardService
}

func NewBoardHandler(boards BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// Create godoc
// @Summary      Create a board
// @Description  Creates a board and makes the caller its first member
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        board  body      service.CreateBoardInput  true  "Board"
// @Success      201    {object}  service.BoardDTO
// @Failure      400    {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.CreateBoardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	board, err := h.boards.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, location("/boards/%d", board.ID), board)
}

// GetAll godoc
// @Summary   List active boards of the caller
// @Tags      Boards
// @Produce   json
// @Param     archived  query  bool  false  "List archived boards instead"
// @Success   200  {array}  service.BoardDTO
// @Security  BearerAuth
// @Router    /boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list := h.boards.ListForUser
	if c.Query("archived") == "true" {
		list = h.boards.ListArchivedForUser
	}
	boards, err := list(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

// GetByID godoc
// @Summary   Get a board
// @Tags      Boards
// @Produce   json
// @Param     id   path      int  true  "Board ID"
// @Success   200  {object}  service.BoardDTO
// @Failure   404  {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	board, err := h.boards.Get(c.Request.Context(), userID, boardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// Update godoc
// @Summary      Update a board
// @Description  Only the fields present in the body are changed. is_archived moves the board between active and archived.
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        id     path      int                       true  "Board ID"
// @Param        board  body      service.UpdateBoardInput  true  "Fields to change"
// @Success      200    {object}  service.BoardDTO
// @Failure      404    {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /boards/{id} [patch]
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateBoardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	board, err := h.boards.Update(c.Request.Context(), userID, boardID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// Delete godoc
// @Summary   Delete a board with everything on it
// @Tags      Boards
// @Param     id  path  int  true  "Board ID"
// @Success   204
// @Failure   404  {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.boards.Delete(c.Request.Context(), userID, boardID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
