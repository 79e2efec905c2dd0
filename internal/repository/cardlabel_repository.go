package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

// CardLabelRepository stores CardLabel edges.
type CardLabelRepository struct {
	Repository[model.CardLabel]
}

func NewCardLabelRepository(db *gorm.DB) *CardLabelRepository {
	return &CardLabelRepository{Repository: NewRepository[model.CardLabel](db)}
}

func (r *CardLabelRepository) Find(ctx context.Context, cardID, labelID uint) (*model.CardLabel, error) {
	return r.Get(ctx, Where("card_id = ? AND label_id = ?", cardID, labelID))
}
