package service

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

type CreateBoardInput struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
	Background  string `json:"background" binding:"omitempty,board_background"`
}

type UpdateBoardInput struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Background  Optional[string] `json:"background"`
	IsArchived  Optional[bool]   `json:"is_archived"`
}

type BoardDTO struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Background  string     `json:"background"`
	IsArchived  bool       `json:"is_archived"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toBoardDTO(b *model.Board) BoardDTO {
	return BoardDTO{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Background:  b.Background,
		IsArchived:  b.IsArchived,
		ArchivedAt:  b.ArchivedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBoardDTOs(boards []model.Board) []BoardDTO {
	out := make([]BoardDTO, len(boards))
	for i := range boards {
		out[i] = toBoardDTO(&boards[i])
	}
	return out
}

type BoardService struct {
	base
}

func NewBoardService(store *repository.Store, opts ...Option) *BoardService {
	return &BoardService{base: newBase(store, opts)}
}

// Create stores a board together with the caller's membership in one commit.
func (s *BoardService) Create(ctx context.Context, userID uint, in CreateBoardInput) (*BoardDTO, error) {
	title := clean(in.Title)
	if title == "" {
		return nil, rejected("board title is empty", log.Fields{"user": userID})
	}
	background := in.Background
	if background == "" {
		background = model.DefaultBackground
	}
	if !model.IsBoardBackground(background) {
		return nil, rejected("unknown board background", log.Fields{"user": userID, "background": background})
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	now := s.timestamp()
	board := &model.Board{
		Title:       title,
		Description: in.Description,
		Background:  background,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uow.Boards.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	membership := &model.UserBoard{UserID: userID, BoardID: board.ID, Role: model.RoleMember}
	if err := uow.Memberships.Create(ctx, membership); err != nil {
		return nil, fmt.Errorf("create membership: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user": userID, "board": board.ID}).Info("board created")
	dto := toBoardDTO(board)
	return &dto, nil
}

// Get returns a board the caller is a member of. Archived boards are included.
func (s *BoardService) Get(ctx context.Context, userID, boardID uint) (*BoardDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	board, err := s.load(ctx, uow, userID, boardID)
	if err != nil {
		return nil, err
	}
	dto := toBoardDTO(board)
	return &dto, nil
}

// ListForUser returns the caller's active boards.
func (s *BoardService) ListForUser(ctx context.Context, userID uint) ([]BoardDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	boards, err := uow.Boards.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards of user %d: %w", userID, err)
	}
	return toBoardDTOs(boards), nil
}

// ListArchivedForUser returns the caller's archived boards.
func (s *BoardService) ListArchivedForUser(ctx context.Context, userID uint) ([]BoardDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	boards, err := uow.Boards.ListArchivedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list archived boards of user %d: %w", userID, err)
	}
	return toBoardDTOs(boards), nil
}

// Update applies the supplied fields. An unknown background is ignored while
// the other fields still apply. Archiving stamps ArchivedAt; restoring keeps it.
func (s *BoardService) Update(ctx context.Context, userID, boardID uint, in UpdateBoardInput) (*BoardDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	board, err := s.load(ctx, uow, userID, boardID)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	if title, ok := in.Title.Get(); ok && clean(title) != "" {
		board.Title = clean(title)
	}
	if description, ok := in.Description.Get(); ok {
		board.Description = description
	}
	if background, ok := in.Background.Get(); ok {
		if model.IsBoardBackground(background) {
			board.Background = background
		} else {
			log.WithFields(log.Fields{"board": boardID, "background": background}).Warn("ignoring unknown board background")
		}
	}
	if archived, ok := in.IsArchived.Get(); ok {
		if archived {
			board.Archive(now)
		} else {
			board.Restore()
		}
	}
	board.UpdatedAt = now

	if err := uow.Boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("update board %d: %w", boardID, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	dto := toBoardDTO(board)
	return &dto, nil
}

// Delete removes the board with its lists, cards, labels and memberships.
func (s *BoardService) Delete(ctx context.Context, userID, boardID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	if _, err := s.load(ctx, uow, userID, boardID); err != nil {
		return err
	}
	if err := uow.DeleteBoardTree(ctx, boardID); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"user": userID, "board": boardID}).Info("board deleted")
	return nil
}

func (s *BoardService) load(ctx context.Context, uow *repository.UnitOfWork, userID, boardID uint) (*model.Board, error) {
	board, err := uow.Boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("get board %d: %w", boardID, err)
	}
	if board == nil {
		return nil, notFound("board", boardID)
	}
	if err := authorize(ctx, uow, userID, boardID); err != nil {
		return nil, err
	}
	return board, nil
}
