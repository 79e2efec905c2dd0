package service

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

type CreateCardInput struct {
	ListID      uint       `json:"list_id" binding:"required"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority" binding:"omitempty,card_priority"`
}

// UpdateCardInput changes a card in place. ListID moves it to another list,
// appended at the end unless Position is also given. A null DueDate clears it.
type UpdateCardInput struct {
	Title       Optional[string]     `json:"title"`
	Description Optional[string]     `json:"description"`
	DueDate     Optional[*time.Time] `json:"due_date"`
	Priority    Optional[string]     `json:"priority"`
	IsCompleted Optional[bool]       `json:"is_completed"`
	ListID      Optional[uint]       `json:"list_id"`
	Position    Optional[int]        `json:"position"`
}

type CardDTO struct {
	ID          uint       `json:"id"`
	ListID      uint       `json:"list_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	IsCompleted bool       `json:"is_completed"`
	Position    int        `json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Labels      []LabelDTO `json:"labels,omitempty"`
	Assignees   []UserDTO  `json:"assignees,omitempty"`
}

func toCardDTO(c *model.Card) CardDTO {
	return CardDTO{
		ID:          c.ID,
		ListID:      c.ListID,
		Title:       c.Title,
		Description: c.Description,
		DueDate:     c.DueDate,
		Priority:    c.Priority,
		IsCompleted: c.IsCompleted,
		Position:    c.Position,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCardDTOs(cards []model.Card) []CardDTO {
	out := make([]CardDTO, len(cards))
	for i := range cards {
		out[i] = toCardDTO(&cards[i])
	}
	return out
}

type CardService struct {
	base
}

func NewCardService(store *repository.Store, opts ...Option) *CardService {
	return &CardService{base: newBase(store, opts)}
}

func (s *CardService) Create(ctx context.Context, userID uint, in CreateCardInput) (*CardDTO, error) {
	title := clean(in.Title)
	if title == "" {
		return nil, rejected("card title is empty", log.Fields{"user": userID, "list": in.ListID})
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityNone
	}
	if !model.IsCardPriority(priority) {
		return nil, rejected("unknown card priority", log.Fields{"user": userID, "priority": priority})
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	list, err := loadList(ctx, uow, userID, in.ListID)
	if err != nil {
		return nil, err
	}
	position, err := uow.Cards.NextPosition(ctx, list.ID)
	if err != nil {
		return nil, fmt.Errorf("next card position on list %d: %w", list.ID, err)
	}

	now := s.timestamp()
	card := &model.Card{
		ListID:      list.ID,
		Title:       title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    priority,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uow.Cards.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	dto := toCardDTO(card)
	return &dto, nil
}

// Get returns the card with its labels and assignees.
func (s *CardService) Get(ctx context.Context, userID, cardID uint) (*CardDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	card, err := loadCard(ctx, uow, userID, cardID)
	if err != nil {
		return nil, err
	}
	labels, err := uow.Labels.ListByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("list labels of card %d: %w", cardID, err)
	}
	assignees, err := uow.Users.ListByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("list assignees of card %d: %w", cardID, err)
	}

	dto := toCardDTO(card)
	dto.Labels = toLabelDTOs(labels)
	dto.Assignees = toUserDTOs(assignees)
	return &dto, nil
}

func (s *CardService) ListForList(ctx context.Context, userID, listID uint) ([]CardDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	if _, err := loadList(ctx, uow, userID, listID); err != nil {
		return nil, err
	}
	cards, err := uow.Cards.ListByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("list cards of list %d: %w", listID, err)
	}
	return toCardDTOs(cards), nil
}

// ListAssignedToUser returns the cards assigned to the caller.
func (s *CardService) ListAssignedToUser(ctx context.Context, userID uint) ([]CardDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	cards, err := uow.Cards.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards assigned to user %d: %w", userID, err)
	}
	return toCardDTOs(cards), nil
}

// Update applies the supplied fields. An unknown priority or a negative
// position leaves that field unchanged while the rest still apply. Moving to a
// list the caller cannot see fails the whole update as not found. A move to
// another board drops the card's labels and the assignees who are not members
// there.
func (s *CardService) Update(ctx context.Context, userID, cardID uint, in UpdateCardInput) (*CardDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	card, boardID, err := loadCardWithBoard(ctx, uow, userID, cardID)
	if err != nil {
		return nil, err
	}

	if listID, ok := in.ListID.Get(); ok && listID != card.ListID {
		target, err := loadList(ctx, uow, userID, listID)
		if err != nil {
			return nil, err
		}
		if target.BoardID != boardID {
			if err := detachFromBoard(ctx, uow, cardID, target.BoardID); err != nil {
				return nil, err
			}
		}
		position, err := uow.Cards.NextPosition(ctx, target.ID)
		if err != nil {
			return nil, fmt.Errorf("next card position on list %d: %w", target.ID, err)
		}
		card.ListID = target.ID
		card.Position = position
	}
	if title, ok := in.Title.Get(); ok && clean(title) != "" {
		card.Title = clean(title)
	}
	if description, ok := in.Description.Get(); ok {
		card.Description = description
	}
	if due, ok := in.DueDate.Get(); ok {
		card.DueDate = due
	}
	if priority, ok := in.Priority.Get(); ok {
		if model.IsCardPriority(priority) {
			card.Priority = priority
		} else {
			log.WithFields(log.Fields{"card": cardID, "priority": priority}).Warn("ignoring unknown card priority")
		}
	}
	if completed, ok := in.IsCompleted.Get(); ok {
		card.IsCompleted = completed
	}
	if position, ok := in.Position.Get(); ok {
		if position >= 0 {
			card.Position = position
		} else {
			log.WithFields(log.Fields{"card": cardID, "position": position}).Warn("ignoring negative card position")
		}
	}
	card.UpdatedAt = s.timestamp()

	if err := uow.Cards.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("update card %d: %w", cardID, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	dto := toCardDTO(card)
	return &dto, nil
}

// Delete removes the card with its comments, labels and assignments.
func (s *CardService) Delete(ctx context.Context, userID, cardID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	if _, err := loadCard(ctx, uow, userID, cardID); err != nil {
		return err
	}
	if err := uow.DeleteCardTree(ctx, cardID); err != nil {
		return err
	}
	return uow.Commit()
}

// detachFromBoard removes the edges that tie a card to the board it is leaving.
func detachFromBoard(ctx context.Context, uow *repository.UnitOfWork, cardID, targetBoardID uint) error {
	if err := uow.CardLabels.DeleteWhere(ctx, repository.Where("card_id = ?", cardID)); err != nil {
		return fmt.Errorf("drop labels of card %d: %w", cardID, err)
	}
	if err := uow.Assignments.DeleteNonMembers(ctx, cardID, targetBoardID); err != nil {
		return fmt.Errorf("drop assignees of card %d: %w", cardID, err)
	}
	return nil
}

func loadList(ctx context.Context, uow *repository.UnitOfWork, userID, listID uint) (*model.List, error) {
	list, err := uow.Lists.GetByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("get list %d: %w", listID, err)
	}
	if list == nil {
		return nil, notFound("list", listID)
	}
	if err := authorize(ctx, uow, userID, list.BoardID); err != nil {
		return nil, err
	}
	return list, nil
}

// loadCard fetches a card and checks membership of the board owning its list.
func loadCard(ctx context.Context, uow *repository.UnitOfWork, userID, cardID uint) (*model.Card, error) {
	card, _, err := loadCardWithBoard(ctx, uow, userID, cardID)
	return card, err
}

func loadCardWithBoard(ctx context.Context, uow *repository.UnitOfWork, userID, cardID uint) (*model.Card, uint, error) {
	card, err := uow.Cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, 0, fmt.Errorf("get card %d: %w", cardID, err)
	}
	if card == nil {
		return nil, 0, notFound("card", cardID)
	}
	boardID, err := uow.Cards.BoardID(ctx, cardID)
	if err != nil {
		return nil, 0, fmt.Errorf("resolve board of card %d: %w", cardID, err)
	}
	if boardID == 0 {
		return nil, 0, notFound("card", cardID)
	}
	if err := authorize(ctx, uow, userID, boardID); err != nil {
		return nil, 0, err
	}
	return card, boardID, nil
}
