package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

type CardRepository struct {
	Repository[model.Card]
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{Repository: NewRepository[model.Card](db)}
}

func (r *CardRepository) GetByID(ctx context.Context, id uint) (*model.Card, error) {
	return r.Get(ctx, Where("id = ?", id))
}

func (r *CardRepository) ListByList(ctx context.Context, listID uint) ([]model.Card, error) {
	return r.List(ctx, Where("list_id = ?", listID), OrderBy("position"), OrderBy("id"))
}

// ListByAssignee returns the cards a user is assigned to on boards they are
// still a member of.
func (r *CardRepository) ListByAssignee(ctx context.Context, userID uint) ([]model.Card, error) {
	return r.List(ctx,
		Distinct(),
		Join("JOIN user_cards ON user_cards.card_id = cards.id"),
		Join("JOIN lists ON lists.id = cards.list_id"),
		Join("JOIN user_boards ON user_boards.board_id = lists.board_id AND user_boards.user_id = user_cards.user_id"),
		Where("user_cards.user_id = ?", userID),
		OrderBy("cards.id"),
	)
}

// ListByLabel returns the cards tagged with a label.
func (r *CardRepository) ListByLabel(ctx context.Context, labelID uint) ([]model.Card, error) {
	return r.List(ctx,
		Distinct(),
		Join("JOIN card_labels ON card_labels.card_id = cards.id"),
		Where("card_labels.label_id = ?", labelID),
		OrderBy("cards.id"),
	)
}

// BoardID resolves the board owning a card through its list. It returns 0
// when the card or its list does not exist.
func (r *CardRepository) BoardID(ctx context.Context, cardID uint) (uint, error) {
	ids := make([]uint, 0, 1)
	err := r.conn(ctx).Model(&model.Card{}).
		Joins("JOIN lists ON lists.id = cards.list_id").
		Where("cards.id = ?", cardID).
		Limit(1).
		Pluck("lists.board_id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, err
	}
	return ids[0], nil
}

// NextPosition returns the position after the last card of the list.
func (r *CardRepository) NextPosition(ctx context.Context, listID uint) (int, error) {
	var next struct {
		Next int
	}
	err := r.conn(ctx).Model(&model.Card{}).
		Select("COALESCE(MAX(position), -1) + 1 AS next").
		Where("list_id = ?", listID).
		Scan(&next).Error
	return next.Next, err
}
