package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

type LabelRepository struct {
	Repository[model.Label]
}

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{Repository: NewRepository[model.Label](db)}
}

// GetByID retrieves a label by its ID
func (r *LabelRepository) GetByID(ctx context.Context, id uint) (*model.Label, error) {
	return r.Get(ctx, Where("id = ?", id))
}

// ListByBoard retrieves all labels for a specific board
func (r *LabelRepository) ListByBoard(ctx context.Context, boardID uint) ([]model.Label, error) {
	return r.List(ctx, Where("board_id = ?", boardID), OrderBy("id"))
}

// ListByCard retrieves all labels attached to a specific card
func (r *LabelRepository) ListByCard(ctx context.Context, cardID uint) ([]model.Label, error) {
	return r.List(ctx,
		Distinct(),
		Join("JOIN card_labels ON card_labels.label_id = labels.id"),
		Where("card_labels.card_id = ?", cardID),
		OrderBy("labels.id"),
	)
}
