package service

import (
	"context"
	"fmt"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

type AssignInput struct {
	UserID uint `json:"user_id" binding:"required"`
}

// AssignmentService manages UserCard edges.
type AssignmentService struct {
	base
}

func NewAssignmentService(store *repository.Store, opts ...Option) *AssignmentService {
	return &AssignmentService{base: newBase(store, opts)}
}

// Assign puts a member of the card's board on the card. Assigning twice is
// not an error; assigning a non-member is rejected.
func (s *AssignmentService) Assign(ctx context.Context, userID, cardID, assigneeID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	_, boardID, err := loadCardWithBoard(ctx, uow, userID, cardID)
	if err != nil {
		return err
	}
	member, err := access.NewGate(uow.Memberships).HasAccess(ctx, assigneeID, boardID)
	if err != nil {
		return err
	}
	if !member {
		return rejected("assignee is not a board member", log.Fields{"card": cardID, "assignee": assigneeID})
	}

	existing, err := uow.Assignments.Find(ctx, assigneeID, cardID)
	if err != nil {
		return fmt.Errorf("find assignment: %w", err)
	}
	if existing != nil {
		return nil
	}
	if err := uow.Assignments.Create(ctx, &model.UserCard{UserID: assigneeID, CardID: cardID}); err != nil {
		return fmt.Errorf("assign user %d to card %d: %w", assigneeID, cardID, err)
	}
	return uow.Commit()
}

func (s *AssignmentService) Unassign(ctx context.Context, userID, cardID, assigneeID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	if _, err := loadCard(ctx, uow, userID, cardID); err != nil {
		return err
	}
	edge, err := uow.Assignments.Find(ctx, assigneeID, cardID)
	if err != nil {
		return fmt.Errorf("find assignment: %w", err)
	}
	if edge == nil {
		return notFound("assignment", assigneeID)
	}
	if err := uow.Assignments.Delete(ctx, edge); err != nil {
		return fmt.Errorf("unassign user %d from card %d: %w", assigneeID, cardID, err)
	}
	return uow.Commit()
}

// ListAssignees returns the users assigned to a card.
func (s *AssignmentService) ListAssignees(ctx context.Context, userID, cardID uint) ([]UserDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	if _, err := loadCard(ctx, uow, userID, cardID); err != nil {
		return nil, err
	}
	users, err := uow.Users.ListByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("list assignees of card %d: %w", cardID, err)
	}
	return toUserDTOs(users), nil
}
