package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

type CommentRepository struct {
	Repository[model.Comment]
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{Repository: NewRepository[model.Comment](db)}
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint) (*model.Comment, error) {
	return r.Get(ctx, Where("id = ?", id))
}

// ListByCard returns the comments of a card, oldest first.
func (r *CommentRepository) ListByCard(ctx context.Context, cardID uint) ([]model.Comment, error) {
	return r.List(ctx, Where("card_id = ?", cardID), OrderBy("created_at"), OrderBy("id"))
}
