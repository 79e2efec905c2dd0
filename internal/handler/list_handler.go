package handler

import (
	"context"
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type ListService interface {
	Create(ctx context.Context, userID uint, in service.CreateListInput) (*service.ListDTO, error)
	Get(ctx context.Context, userID, listID uint) (*service.ListDTO, error)
	ListForBoard(ctx context.Context, userID, boardID uint) ([]service.ListDTO, error)
	Update(ctx context.Context, userID, listID uint, in service.UpdateListInput) (*service.ListDTO, error)
	Delete(ctx context.Context, userID, listID uint) error
}

type ListHandler struct {
	lists ListService
}

func NewListHandler(lists ListService) *ListHandler {
	return &ListHandler{lists: lists}
}

// Create godoc
// @Summary   Create a list on a board
// @Tags      Lists
// @Accept    json
// @Produce   json
// @Param     list  body      service.CreateListInput  true  "List"
// @Success   201   {object}  service.ListDTO
// @Failure   404   {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.CreateListInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.lists.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, location("/lists/%d", list.ID), list)
}

// GetAll godoc
// @Summary   Lists of a board ordered by position
// @Tags      Lists
// @Produce   json
// @Param     id   path     int  true  "Board ID"
// @Success   200  {array}  service.ListDTO
// @Security  BearerAuth
// @Router    /boards/{id}/lists [get]
func (h *ListHandler) GetAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	lists, err := h.lists.ListForBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (h *ListHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.lists.Get(c.Request.Context(), userID, listID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ListHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateListInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.lists.Update(c.Request.Context(), userID, listID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ListHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.lists.Delete(c.Request.Context(), userID, listID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
