package handler

import (
	"context"
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type CardService interface {
	Create(ctx context.Context, userID uint, in service.CreateCardInput) (*service.CardDTO, error)
	Get(ctx context.Context, userID, cardID uint) (*service.CardDTO, error)
	ListForList(ctx context.Context, userID, listID uint) ([]service.CardDTO, error)
	ListAssignedToUser(ctx context.Context, userID uint) ([]service.CardDTO, error)
	Update(ctx context.Context, userID, cardID uint, in service.UpdateCardInput) (*service.CardDTO, error)
	Delete(ctx context.Context, userID, cardID uint) error
}

type CardHandler struct {
	cards CardService
}

func NewCardHandler(cards CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

// Create godoc
// @Summary   Create a card in a list
// @Tags      Cards
// @Accept    json
// @Produce   json
// @Param     card  body      service.CreateCardInput  true  "Card"
// @Success   201   {object}  service.CardDTO
// @Failure   400   {object}  ErrorResponse
// @Failure   404   {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.CreateCardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	card, err := h.cards.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, location("/cards/%d", card.ID), card)
}

// GetByID godoc
// @Summary   Get a card with its labels and assignees
// @Tags      Cards
// @Produce   json
// @Param     id   path      int  true  "Card ID"
// @Success   200  {object}  service.CardDTO
// @Failure   404  {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /cards/{id} [get]
func (h *CardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	card, err := h.cards.Get(c.Request.Context(), userID, cardID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) GetByListID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	cards, err := h.cards.ListForList(c.Request.Context(), userID, listID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// GetAssigned returns the cards the caller is assigned to on boards they can access.
func (h *CardHandler) GetAssigned(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	cards, err := h.cards.ListAssignedToUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// Update godoc
// @Summary      Update a card
// @Description  Only the fields present in the body are changed. due_date null clears it, list_id moves the card.
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Card ID"
// @Param        card  body      service.UpdateCardInput  true  "Fields to change"
// @Success      200   {object}  service.CardDTO
// @Failure      404   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /cards/{id} [patch]
func (h *CardHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateCardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	card, err := h.cards.Update(c.Request.Context(), userID, cardID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.cards.Delete(c.Request.Context(), userID, cardID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
