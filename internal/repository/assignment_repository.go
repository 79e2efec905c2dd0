package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

// AssignmentRepository stores UserCard edges.
type AssignmentRepository struct {
	Repository[model.UserCard]
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{Repository: NewRepository[model.UserCard](db)}
}

func (r *AssignmentRepository) Find(ctx context.Context, userID, cardID uint) (*model.UserCard, error) {
	return r.Get(ctx, Where("user_id = ? AND card_id = ?", userID, cardID))
}

// DeleteOnBoard drops every assignment of the user to cards of the board.
func (r *AssignmentRepository) DeleteOnBoard(ctx context.Context, userID, boardID uint) error {
	cards := r.conn(ctx).Model(&model.Card{}).
		Select("cards.id").
		Joins("JOIN lists ON lists.id = cards.list_id").
		Where("lists.board_id = ?", boardID)
	return r.DeleteWhere(ctx, Where("user_id = ? AND card_id IN (?)", userID, cards))
}

// DeleteNonMembers drops assignments of the card whose user is not a member of
// the board.
func (r *AssignmentRepository) DeleteNonMembers(ctx context.Context, cardID, boardID uint) error {
	members := r.conn(ctx).Model(&model.UserBoard{}).
		Select("user_id").
		Where("board_id = ?", boardID)
	return r.DeleteWhere(ctx, Where("card_id = ? AND user_id NOT IN (?)", cardID, members))
}
