package repository

import (
	"context"
	"fmt"
)

// Cascading deletes run children first so no row is left pointing at a
// removed parent, whether or not the database enforces foreign keys.
//
// Board -> List -> Card -> {Comment, CardLabel, UserCard}
// Board -> Label -> CardLabel

func (u *UnitOfWork) DeleteBoardTree(ctx context.Context, boardID uint) error {
	listIDs, err := u.Lists.PluckIDs(ctx, Where("board_id = ?", boardID))
	if err != nil {
		return fmt.Errorf("collect lists of board %d: %w", boardID, err)
	}
	if err := u.DeleteListTree(ctx, listIDs...); err != nil {
		return err
	}
	labelIDs, err := u.Labels.PluckIDs(ctx, Where("board_id = ?", boardID))
	if err != nil {
		return fmt.Errorf("collect labels of board %d: %w", boardID, err)
	}
	if err := u.DeleteLabelTree(ctx, labelIDs...); err != nil {
		return err
	}
	if err := u.Memberships.DeleteWhere(ctx, Where("board_id = ?", boardID)); err != nil {
		return fmt.Errorf("delete members of board %d: %w", boardID, err)
	}
	if err := u.Boards.DeleteWhere(ctx, Where("id = ?", boardID)); err != nil {
		return fmt.Errorf("delete board %d: %w", boardID, err)
	}
	return nil
}

func (u *UnitOfWork) DeleteListTree(ctx context.Context, listIDs ...uint) error {
	if len(listIDs) == 0 {
		return nil
	}
	cardIDs, err := u.Cards.PluckIDs(ctx, Where("list_id IN ?", listIDs))
	if err != nil {
		return fmt.Errorf("collect cards: %w", err)
	}
	if err := u.DeleteCardTree(ctx, cardIDs...); err != nil {
		return err
	}
	if err := u.Lists.DeleteWhere(ctx, Where("id IN ?", listIDs)); err != nil {
		return fmt.Errorf("delete lists: %w", err)
	}
	return nil
}

func (u *UnitOfWork) DeleteCardTree(ctx context.Context, cardIDs ...uint) error {
	if len(cardIDs) == 0 {
		return nil
	}
	if err := u.Comments.DeleteWhere(ctx, Where("card_id IN ?", cardIDs)); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	if err := u.CardLabels.DeleteWhere(ctx, Where("card_id IN ?", cardIDs)); err != nil {
		return fmt.Errorf("delete card labels: %w", err)
	}
	if err := u.Assignments.DeleteWhere(ctx, Where("card_id IN ?", cardIDs)); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}
	if err := u.Cards.DeleteWhere(ctx, Where("id IN ?", cardIDs)); err != nil {
		return fmt.Errorf("delete cards: %w", err)
	}
	return nil
}

func (u *UnitOfWork) DeleteLabelTree(ctx context.Context, labelIDs ...uint) error {
	if len(labelIDs) == 0 {
		return nil
	}
	if err := u.CardLabels.DeleteWhere(ctx, Where("label_id IN ?", labelIDs)); err != nil {
		return fmt.Errorf("delete card labels: %w", err)
	}
	if err := u.Labels.DeleteWhere(ctx, Where("id IN ?", labelIDs)); err != nil {
		return fmt.Errorf("delete labels: %w", err)
	}
	return nil
}

// DeleteBoardIfOrphaned removes the board tree once its last membership is
// gone. It reports whether the board was deleted.
func (u *UnitOfWork) DeleteBoardIfOrphaned(ctx context.Context, boardID uint) (bool, error) {
	members, err := u.Memberships.HasMembers(ctx, boardID)
	if err != nil {
		return false, fmt.Errorf("count members of board %d: %w", boardID, err)
	}
	if members {
		return false, nil
	}
	if err := u.DeleteBoardTree(ctx, boardID); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteUserTree removes a user with their memberships, assignments and
// authored comments. Boards left without members go with them.
func (u *UnitOfWork) DeleteUserTree(ctx context.Context, userID uint) error {
	boardIDs, err := u.Memberships.BoardIDsOf(ctx, userID)
	if err != nil {
		return fmt.Errorf("collect boards of user %d: %w", userID, err)
	}
	if err := u.Memberships.DeleteWhere(ctx, Where("user_id = ?", userID)); err != nil {
		return fmt.Errorf("delete memberships of user %d: %w", userID, err)
	}
	if err := u.Assignments.DeleteWhere(ctx, Where("user_id = ?", userID)); err != nil {
		return fmt.Errorf("delete assignments of user %d: %w", userID, err)
	}
	if err := u.Comments.DeleteWhere(ctx, Where("author_id = ?", userID)); err != nil {
		return fmt.Errorf("delete comments of user %d: %w", userID, err)
	}
	for _, boardID := range boardIDs {
		if _, err := u.DeleteBoardIfOrphaned(ctx, boardID); err != nil {
			return err
		}
	}
	if err := u.Users.DeleteWhere(ctx, Where("id = ?", userID)); err != nil {
		return fmt.Errorf("delete user %d: %w", userID, err)
	}
	return nil
}
