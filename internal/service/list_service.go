package service

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

type CreateListInput struct {
	BoardID  uint   `json:"board_id" binding:"required"`
	Title    string `json:"title" binding:"required,max=100"`
	Position *int   `json:"position" binding:"omitempty,min=0"`
}

type UpdateListInput struct {
	Title    Optional[string] `json:"title"`
	Position Optional[int]    `json:"position"`
}

type ListDTO struct {
	ID        uint      `json:"id"`
	BoardID   uint      `json:"board_id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toListDTO(l *model.List) ListDTO {
	return ListDTO{
		ID:        l.ID,
		BoardID:   l.BoardID,
		Title:     l.Title,
		Position:  l.Position,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

type ListService struct {
	base
}

func NewListService(store *repository.Store, opts ...Option) *ListService {
	return &ListService{base: newBase(store, opts)}
}

// Create appends a list to a board unless an explicit position is given.
func (s *ListService) Create(ctx context.Context, userID uint, in CreateListInput) (*ListDTO, error) {
	title := clean(in.Title)
	if title == "" {
		return nil, rejected("list title is empty", log.Fields{"user": userID, "board": in.BoardID})
	}
	if in.Position != nil && *in.Position < 0 {
		return nil, rejected("negative list position", log.Fields{"user": userID, "board": in.BoardID})
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	board, err := uow.Boards.GetByID(ctx, in.BoardID)
	if err != nil {
		return nil, fmt.Errorf("get board %d: %w", in.BoardID, err)
	}
	if board == nil {
		return nil, notFound("board", in.BoardID)
	}
	if err := authorize(ctx, uow, userID, board.ID); err != nil {
		return nil, err
	}

	position := 0
	if in.Position != nil {
		position = *in.Position
	} else if position, err = uow.Lists.NextPosition(ctx, board.ID); err != nil {
		return nil, fmt.Errorf("next list position on board %d: %w", board.ID, err)
	}

	now := s.timestamp()
	list := &model.List{
		BoardID:   board.ID,
		Title:     title,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.Lists.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	dto := toListDTO(list)
	return &dto, nil
}

func (s *ListService) Get(ctx context.Context, userID, listID uint) (*ListDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	list, err := s.load(ctx, uow, userID, listID)
	if err != nil {
		return nil, err
	}
	dto := toListDTO(list)
	return &dto, nil
}

// ListForBoard returns the lists of a board ordered by position.
func (s *ListService) ListForBoard(ctx context.Context, userID, boardID uint) ([]ListDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	if err := authorize(ctx, uow, userID, boardID); err != nil {
		return nil, err
	}
	lists, err := uow.Lists.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list lists of board %d: %w", boardID, err)
	}
	out := make([]ListDTO, len(lists))
	for i := range lists {
		out[i] = toListDTO(&lists[i])
	}
	return out, nil
}

func (s *ListService) Update(ctx context.Context, userID, listID uint, in UpdateListInput) (*ListDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	list, err := s.load(ctx, uow, userID, listID)
	if err != nil {
		return nil, err
	}
	if title, ok := in.Title.Get(); ok && clean(title) != "" {
		list.Title = clean(title)
	}
	if position, ok := in.Position.Get(); ok {
		if position >= 0 {
			list.Position = position
		} else {
			log.WithFields(log.Fields{"list": listID, "position": position}).Warn("ignoring negative list position")
		}
	}
	list.UpdatedAt = s.timestamp()

	if err := uow.Lists.Update(ctx, list); err != nil {
		return nil, fmt.Errorf("update list %d: %w", listID, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	dto := toListDTO(list)
	return &dto, nil
}

// Delete removes the list and every card beneath it.
func (s *ListService) Delete(ctx context.Context, userID, listID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	if _, err := s.load(ctx, uow, userID, listID); err != nil {
		return err
	}
	if err := uow.DeleteListTree(ctx, listID); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *ListService) load(ctx context.Context, uow *repository.UnitOfWork, userID, listID uint) (*model.List, error) {
	return loadList(ctx, uow, userID, listID)
}
