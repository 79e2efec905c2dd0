package service_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardService_Create_BoardAndMembershipTogether(t *testing.T) {
	// Arrange
	h := newHarness(t)
	ctx := context.Background()
	alice := h.register(t, "alice@example.com")

	// Act
	board, err := h.boards.Create(ctx, alice, service.CreateBoardInput{Title: "Sprint"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Sprint", board.Title)
	assert.Equal(t, model.DefaultBackground, board.Background)
	assert.False(t, board.IsArchived)
	assert.Equal(t, h.clock.now, board.CreatedAt)

	assert.Equal(t, int64(1), count[model.Board](t, h.db))
	var edge model.UserBoard
	require.NoError(t, h.db.First(&edge).Error)
	assert.Equal(t, alice, edge.UserID)
	assert.Equal(t, board.ID, edge.BoardID)
	assert.Equal(t, model.RoleMember, edge.Role)

	boards, err := h.boards.ListForUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, board.ID, boards[0].ID)
}

func TestBoardService_Create_InvalidBackgroundPersistsNothing(t *testing.T) {
	h := newHarness(t)
	alice := h.register(t, "alice@example.com")

	board, err := h.boards.Create(context.Background(), alice, service.CreateBoardInput{Title: "Sprint", Background: "Plaid"})

	assert.ErrorIs(t, err, service.ErrRejected)
	assert.Nil(t, board)
	assert.Zero(t, count[model.Board](t, h.db))
	assert.Zero(t, count[model.UserBoard](t, h.db))
}

func TestBoardService_Create_BlankTitle(t *testing.T) {
	h := newHarness(t)
	alice := h.register(t, "alice@example.com")

	_, err := h.boards.Create(context.Background(), alice, service.CreateBoardInput{Title: "   "})

	assert.ErrorIs(t, err, service.ErrRejected)
}

func TestBoardService_Get_NonMemberLooksLikeMissing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.register(t, "alice@example.com")
	bob := h.register(t, "bob@example.com")
	boardID := h.board(t, alice, "Private")

	_, denied := h.boards.Get(ctx, bob, boardID)
	_, missing := h.boards.Get(ctx, bob, boardID+100)

	assert.ErrorIs(t, denied, service.ErrNotFound)
	assert.ErrorIs(t, missing, service.ErrNotFound)
	assert.Equal(t, missing, denied)
}

func TestBoardService_ArchiveLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.register(t, "alice@example.com")
	boardID := h.board(t, alice, "Q1")
	archivedAt := h.clock.now.Add(time.Hour)
	h.clock.Advance(time.Hour)

	// Активная -> архивная
	board, err := h.boards.Update(ctx, alice, boardID, service.UpdateBoardInput{IsArchived: service.Some(true)})
	require.NoError(t, err)
	assert.True(t, board.IsArchived)
	require.NotNil(t, board.ArchivedAt)
	assert.True(t, archivedAt.Equal(*board.ArchivedAt))

	active, err := h.boards.ListForUser(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, active)

	archived, err := h.boards.ListArchivedForUser(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, archived, 1)

	got, err := h.boards.Get(ctx, alice, boardID)
	require.NoError(t, err)
	assert.True(t, got.IsArchived)

	// Повторная архивация не меняет отметку времени
	h.clock.Advance(time.Hour)
	board, err = h.boards.Update(ctx, alice, boardID, service.UpdateBoardInput{IsArchived: service.Some(true)})
	require.NoError(t, err)
	assert.True(t, archivedAt.Equal(*board.ArchivedAt))

	// Архивная -> активная, ArchivedAt сохраняется
	board, err = h.boards.Update(ctx, alice, boardID, service.UpdateBoardInput{IsArchived: service.Some(false)})
	require.NoError(t, err)
	assert.False(t, board.IsArchived)
	require.NotNil(t, board.ArchivedAt)
	assert.True(t, archivedAt.Equal(*board.ArchivedAt))

	stored := loadBoard(t, h.db, boardID)
	assert.False(t, stored.IsArchived)
	require.NotNil(t, stored.ArchivedAt)
	assert.True(t, archivedAt.Equal(*stored.ArchivedAt))
}

func TestBoardService_Update_NoFieldsOnlyTouchesUpdatedAt(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.register(t, "alice@example.com")
	created, err := h.boards.Create(ctx, alice, service.CreateBoardInput{Title: "Sprint", Description: "d", Background: "Green"})
	require.NoError(t, err)
	h.clock.Advance(time.Minute)

	updated, err := h.boards.Update(ctx, alice, created.ID, service.UpdateBoardInput{})

	require.NoError(t, err)
	stored := loadBoard(t, h.db, created.ID)
	assert.Equal(t, "Sprint", stored.Title)
	assert.Equal(t, "d", stored.Description)
	assert.Equal(t, "Green", stored.Background)
	assert.False(t, stored.IsArchived)
	assert.Nil(t, stored.ArchivedAt)
	assert.True(t, created.CreatedAt.Equal(stored.CreatedAt))
	assert.True(t, h.clock.now.Equal(stored.UpdatedAt))
	assert.True(t, h.clock.now.Equal(updated.UpdatedAt))
}

func TestBoardService_Update_UnknownBackgroundIgnored(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.register(t, "alice@example.com")
	boardID := h.board(t, alice, "Sprint")

	board, err := h.boards.Update(ctx, alice, boardID, service.UpdateBoardInput{
		Title:       service.Some("Sprint 2"),
		Description: service.Some(""),
		Background:  service.Some("Plaid"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Sprint 2", board.Title)
	assert.Equal(t, "", board.Description)
	assert.Equal(t, model.DefaultBackground, board.Background)
}

func TestBoardService_Delete_RemovesEverythingBeneath(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.register(t, "alice@example.com")
	boardID := h.board(t, alice, "Doomed")
	listID := h.list(t, alice, boardID, "Todo")
	cardID := h.card(t, alice, listID, "Task")
	_, err := h.comments.Create(ctx, alice, service.CreateCommentInput{CardID: cardID, Text: "note"})
	require.NoError(t, err)
	label, err := h.labels.Create(ctx, alice, service.CreateLabelInput{BoardID: boardID, Title: "bug", Color: "Red"})
	require.NoError(t, err)
	require.NoError(t, h.labels.AttachToCard(ctx, alice, cardID, label.ID))
	require.NoError(t, h.assignments.Assign(ctx, alice, cardID, alice))

	require.NoError(t, h.boards.Delete(ctx, alice, boardID))

	assert.Zero(t, count[model.Board](t, h.db))
	assert.Zero(t, count[model.UserBoard](t, h.db))
	assert.Zero(t, count[model.List](t, h.db))
	assert.Zero(t, count[model.Card](t, h.db))
	assert.Zero(t, count[model.Comment](t, h.db))
	assert.Zero(t, count[model.Label](t, h.db))
	assert.Zero(t, count[model.CardLabel](t, h.db))
	assert.Zero(t, count[model.UserCard](t, h.db))
	assert.Equal(t, int64(1), count[model.User](t, h.db))
}

func TestBoardService_Delete_ByNonMember(t *testing.T) {
	h := newHarness(t)
	alice := h.register(t, "alice@example.com")
	bob := h.register(t, "bob@example.com")
	boardID := h.board(t, alice, "Mine")

	err := h.boards.Delete(context.Background(), bob, boardID)

	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, int64(1), count[model.Board](t, h.db))
}
