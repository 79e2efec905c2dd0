package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	Repository[model.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: NewRepository[model.User](db)}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	return r.Get(ctx, Where("id = ?", id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.Get(ctx, Where("email = ?", email))
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.Exists(ctx, Where("email = ?", email))
}

func (r *UserRepository) FindByRefreshToken(ctx context.Context, token string) (*model.User, error) {
	return r.Get(ctx, Where("refresh_token = ?", token))
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	return r.List(ctx, Where("id IN ?", ids), OrderBy("id"))
}

// ListByCard returns the users assigned to a card.
func (r *UserRepository) ListByCard(ctx context.Context, cardID uint) ([]model.User, error) {
	return r.List(ctx,
		Distinct(),
		Join("JOIN user_cards ON user_cards.user_id = users.id"),
		Where("user_cards.card_id = ?", cardID),
		OrderBy("users.id"),
	)
}
