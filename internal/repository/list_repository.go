package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

type ListRepository struct {
	Repository[model.List]
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{Repository: NewRepository[model.List](db)}
}

func (r *ListRepository) GetByID(ctx context.Context, id uint) (*model.List, error) {
	return r.Get(ctx, Where("id = ?", id))
}

func (r *ListRepository) ListByBoard(ctx context.Context, boardID uint) ([]model.List, error) {
	return r.List(ctx, Where("board_id = ?", boardID), OrderBy("position"), OrderBy("id"))
}

// NextPosition returns the position after the last list of the board.
func (r *ListRepository) NextPosition(ctx context.Context, boardID uint) (int, error) {
	var next struct {
		Next int
	}
	err := r.conn(ctx).Model(&model.List{}).
		Select("COALESCE(MAX(position), -1) + 1 AS next").
		Where("board_id = ?", boardID).
		Scan(&next).Error
	return next.Next, err
}
