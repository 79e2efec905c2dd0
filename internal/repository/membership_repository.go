package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

// MembershipRepository stores UserBoard edges.
type MembershipRepository struct {
	Repository[model.UserBoard]
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{Repository: NewRepository[model.UserBoard](db)}
}

func (r *MembershipRepository) Find(ctx context.Context, userID, boardID uint) (*model.UserBoard, error) {
	return r.Get(ctx, Where("user_id = ? AND board_id = ?", userID, boardID))
}

func (r *MembershipRepository) ListByBoard(ctx context.Context, boardID uint) ([]model.UserBoard, error) {
	return r.List(ctx, Where("board_id = ?", boardID), OrderBy("user_id"))
}

// BoardIDsOf returns the boards the user is a member of.
func (r *MembershipRepository) BoardIDsOf(ctx context.Context, userID uint) ([]uint, error) {
	ids := make([]uint, 0)
	err := r.conn(ctx).Model(&model.UserBoard{}).
		Where("user_id = ?", userID).
		Order("board_id").
		Pluck("board_id", &ids).Error
	return ids, err
}

func (r *MembershipRepository) HasMembers(ctx context.Context, boardID uint) (bool, error) {
	return r.Exists(ctx, Where("board_id = ?", boardID))
}
