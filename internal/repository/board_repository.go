package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

type BoardRepository struct {
	Repository[model.Board]
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{Repository: NewRepository[model.Board](db)}
}

func (r *BoardRepository) GetByID(ctx context.Context, id uint) (*model.Board, error) {
	return r.Get(ctx, Where("id = ?", id))
}

// ListByUser returns the active boards the user is a member of.
func (r *BoardRepository) ListByUser(ctx context.Context, userID uint) ([]model.Board, error) {
	return r.listByUser(ctx, userID, false)
}

// ListArchivedByUser returns the archived boards the user is a member of.
func (r *BoardRepository) ListArchivedByUser(ctx context.Context, userID uint) ([]model.Board, error) {
	return r.listByUser(ctx, userID, true)
}

func (r *BoardRepository) listByUser(ctx context.Context, userID uint, archived bool) ([]model.Board, error) {
	return r.List(ctx,
		Distinct(),
		Join("JOIN user_boards ON user_boards.board_id = boards.id"),
		Where("user_boards.user_id = ?", userID),
		Where("boards.is_archived = ?", archived),
		OrderBy("boards.id"),
	)
}
