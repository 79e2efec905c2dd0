package handler

import (
	"context"
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type LabelService interface {
	Create(ctx context.Context, userID uint, in service.CreateLabelInput) (*service.LabelDTO, error)
	Get(ctx context.Context, userID, labelID uint) (*service.LabelDTO, error)
	ListForBoard(ctx context.Context, userID, boardID uint) ([]service.LabelDTO, error)
	Update(ctx context.Context, userID, labelID uint, in service.UpdateLabelInput) (*service.LabelDTO, error)
	Delete(ctx context.Context, userID, labelID uint) error
	AttachToCard(ctx context.Context, userID, cardID, labelID uint) error
	DetachFromCard(ctx context.Context, userID, cardID, labelID uint) error
	ListForCard(ctx context.Context, userID, cardID uint) ([]service.LabelDTO, error)
	ListCards(ctx context.Context, userID, labelID uint) ([]service.CardDTO, error)
}

type LabelHandler struct {
	labels LabelService
}

func NewLabelHandler(labels LabelService) *LabelHandler {
	return &LabelHandler{labels: labels}
}

// Create godoc
// @Summary   Create a label on a board
// @Tags      Labels
// @Accept    json
// @Produce   json
// @Param     label  body      service.CreateLabelInput  true  "Label"
// @Success   201    {object}  service.LabelDTO
// @Failure   400    {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /labels [post]
func (h *LabelHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.CreateLabelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	label, err := h.labels.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, location("/labels/%d", label.ID), label)
}

func (h *LabelHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "id")
	if !ok {
		return
	}

	label, err := h.labels.Get(c.Request.Context(), userID, labelID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (h *LabelHandler) GetByBoardID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	labels, err := h.labels.ListForBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

func (h *LabelHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateLabelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	label, err := h.labels.Update(c.Request.Context(), userID, labelID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (h *LabelHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.labels.Delete(c.Request.Context(), userID, labelID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCardsWithLabel lists the cards tagged with the label.
func (h *LabelHandler) GetCardsWithLabel(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	labelID, ok := pathID(c, "id")
	if !ok {
		return
	}

	cards, err := h.labels.ListCards(c.Request.Context(), userID, labelID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// Attach godoc
// @Summary   Tag a card with a label of the same board
// @Tags      Labels
// @Param     id        path  int  true  "Card ID"
// @Param     label_id  path  int  true  "Label ID"
// @Success   204
// @Failure   400  {object}  ErrorResponse
// @Failure   404  {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /cards/{id}/labels/{label_id} [post]
func (h *LabelHandler) Attach(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	labelID, ok := pathID(c, "label_id")
	if !ok {
		return
	}

	if err := h.labels.AttachToCard(c.Request.Context(), userID, cardID, labelID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LabelHandler) Detach(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	labelID, ok := pathID(c, "label_id")
	if !ok {
		return
	}

	if err := h.labels.DetachFromCard(c.Request.Context(), userID, cardID, labelID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LabelHandler) GetCardLabels(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	labels, err := h.labels.ListForCard(c.Request.Context(), userID, cardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}
