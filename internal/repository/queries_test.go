package repository_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	// Одно соединение: каждая новая :memory: база была бы пустой
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.AutoMigrate(db))
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, values ...interface{}) {
	t.Helper()
	for _, v := range values {
		require.NoError(t, db.Create(v).Error)
	}
}

// fixture: two users, board 1 (both members) with one list and two cards,
// board 2 (user 1 only, archived).
type fixture struct {
	alice, bob  *model.User
	board       *model.Board
	archived    *model.Board
	list        *model.List
	card1       *model.Card
	card2       *model.Card
	label       *model.Label
	comment     *model.Comment
	otherList   *model.List
	archiveCard *model.Card
}

func seed(t *testing.T, db *gorm.DB) fixture {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := fixture{
		alice:    &model.User{Email: "alice@example.com", Username: "alice", PasswordHash: "x", Theme: "System", CreatedAt: now, UpdatedAt: now},
		bob:      &model.User{Email: "bob@example.com", Username: "bob", PasswordHash: "x", Theme: "Dark", CreatedAt: now, UpdatedAt: now},
		board:    &model.Board{Title: "Sprint", Background: "Blue", CreatedAt: now, UpdatedAt: now},
		archived: &model.Board{Title: "Old", Background: "Grey", IsArchived: true, ArchivedAt: &now, CreatedAt: now, UpdatedAt: now},
	}
	mustCreate(t, db, f.alice, f.bob, f.board, f.archived)
	mustCreate(t, db,
		&model.UserBoard{UserID: f.alice.ID, BoardID: f.board.ID, Role: model.RoleMember},
		&model.UserBoard{UserID: f.bob.ID, BoardID: f.board.ID, Role: model.RoleMember},
		&model.UserBoard{UserID: f.alice.ID, BoardID: f.archived.ID, Role: model.RoleAdmin},
	)

	f.list = &model.List{BoardID: f.board.ID, Title: "Todo", Position: 0, CreatedAt: now, UpdatedAt: now}
	f.otherList = &model.List{BoardID: f.archived.ID, Title: "Done", Position: 0, CreatedAt: now, UpdatedAt: now}
	mustCreate(t, db, f.list, f.otherList)

	f.card1 = &model.Card{ListID: f.list.ID, Title: "A", Priority: "None", Position: 0, CreatedAt: now, UpdatedAt: now}
	f.card2 = &model.Card{ListID: f.list.ID, Title: "B", Priority: "High", Position: 1, CreatedAt: now, UpdatedAt: now}
	f.archiveCard = &model.Card{ListID: f.otherList.ID, Title: "C", Priority: "Low", Position: 0, CreatedAt: now, UpdatedAt: now}
	mustCreate(t, db, f.card1, f.card2, f.archiveCard)

	f.label = &model.Label{BoardID: f.board.ID, Title: "bug", Color: "Red"}
	mustCreate(t, db, f.label)
	f.comment = &model.Comment{CardID: f.card1.ID, AuthorID: f.bob.ID, Text: "hi", CreatedAt: now, UpdatedAt: now}
	mustCreate(t, db, f.comment,
		&model.CardLabel{CardID: f.card1.ID, LabelID: f.label.ID},
		&model.CardLabel{CardID: f.card2.ID, LabelID: f.label.ID},
		&model.UserCard{UserID: f.bob.ID, CardID: f.card1.ID},
		&model.UserCard{UserID: f.bob.ID, CardID: f.card2.ID},
		&model.UserCard{UserID: f.alice.ID, CardID: f.archiveCard.ID},
	)
	return f
}

func count[T any](t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(new(T)).Count(&n).Error)
	return n
}

func TestBoardRepository_ListByUser_ExcludesArchived(t *testing.T) {
	db := setupSQLite(t)
	f := seed(t, db)
	repo := repository.NewBoardRepository(db)
	ctx := context.Background()

	active, err := repo.ListByUser(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, f.board.ID, active[0].ID)

	archived, err := repo.ListArchivedByUser(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, f.archived.ID, archived[0].ID)

	none, err := repo.ListArchivedByUser(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCardRepository_Queries(t *testing.T) {
	db := setupSQLite(t)
	f := seed(t, db)
	repo := repository.NewCardRepository(db)
	ctx := context.Background()

	boardID, err := repo.BoardID(ctx, f.card2.ID)
	require.NoError(t, err)
	assert.Equal(t, f.board.ID, boardID)

	missing, err := repo.BoardID(ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, missing)

	next, err := repo.NextPosition(ctx, f.list.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, next)

	empty, err := repo.NextPosition(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, 0, empty)

	tagged, err := repo.ListByLabel(ctx, f.label.ID)
	require.NoError(t, err)
	assert.Len(t, tagged, 2)

	ordered, err := repo.ListByList(ctx, f.list.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, "A", ordered[0].Title)
	assert.Equal(t, "B", ordered[1].Title)
}

func TestCardRepository_ListByAssignee_RequiresMembership(t *testing.T) {
	db := setupSQLite(t)
	f := seed(t, db)
	repo := repository.NewCardRepository(db)
	ctx := context.Background()

	cards, err := repo.ListByAssignee(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	// Боб больше не участник доски: карточки пропадают из выборки
	require.NoError(t, db.Where("user_id = ? AND board_id = ?", f.bob.ID, f.board.ID).Delete(&model.UserBoard{}).Error)
	cards, err = repo.ListByAssignee(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestLabelAndUserRepository_JoinQueries(t *testing.T) {
	db := setupSQLite(t)
	f := seed(t, db)
	ctx := context.Background()

	labels, err := repository.NewLabelRepository(db).ListByCard(ctx, f.card1.ID)
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "bug", labels[0].Title)

	users := repository.NewUserRepository(db)
	assignees, err := users.ListByCard(ctx, f.card1.ID)
	require.NoError(t, err)
	require.Len(t, assignees, 1)
	assert.Equal(t, f.bob.ID, assignees[0].ID)

	byIDs, err := users.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, byIDs)
	assert.Empty(t, byIDs)

	found, err := users.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, f.bob.ID, found.ID)
}

func TestAssignmentRepository_DeleteOnBoard(t *testing.T) {
	db := setupSQLite(t)
	f := seed(t, db)
	ctx := context.Background()

	require.NoError(t, repository.NewAssignmentRepository(db).DeleteOnBoard(ctx, f.alice.ID, f.board.ID))
	assert.Equal(t, int64(3), count[model.UserCard](t, db), "alice had nothing on board 1")

	require.NoError(t, repository.NewAssignmentRepository(db).DeleteOnBoard(ctx, f.bob.ID, f.board.ID))
	assert.Equal(t, int64(1), count[model.UserCard](t, db))
}

func TestUnitOfWork_DeleteBoardTree(t *testing.T) {
	db := setupSQLite(t)
	f := seed(t, db)
	ctx := context.Background()

	uow, err := repository.NewStore(db).Begin(ctx)
	require.NoError(t, err)
	defer uow.Dispose()
	require.NoError(t, uow.DeleteBoardTree(ctx, f.board.ID))
	require.NoError(t, uow.Commit())

	assert.Equal(t, int64(1), count[model.Board](t, db))
	assert.Equal(t, int64(1), count[model.List](t, db))
	assert.Equal(t, int64(1), count[model.Card](t, db))
	assert.Zero(t, count[model.Label](t, db))
	assert.Zero(t, count[model.CardLabel](t, db))
	assert.Zero(t, count[model.Comment](t, db))
	assert.Equal(t, int64(1), count[model.UserCard](t, db))
	assert.Equal(t, int64(1), count[model.UserBoard](t, db))
}

func TestUnitOfWork_DeleteUserTree(t *testing.T) {
	db := setupSQLite(t)
	f := seed(t, db)
	ctx := context.Background()

	uow, err := repository.NewStore(db).Begin(ctx)
	require.NoError(t, err)
	defer uow.Dispose()
	require.NoError(t, uow.DeleteUserTree(ctx, f.bob.ID))
	require.NoError(t, uow.Commit())

	assert.Equal(t, int64(1), count[model.User](t, db))
	assert.Equal(t, int64(2), count[model.UserBoard](t, db))
	assert.Equal(t, int64(1), count[model.UserCard](t, db))
	assert.Zero(t, count[model.Comment](t, db))
	assert.Equal(t, int64(3), count[model.Card](t, db), "cards belong to boards, not users")
}

func TestUnitOfWork_DeleteUserTree_RemovesOrphanedBoards(t *testing.T) {
	db := setupSQLite(t)
	f := seed(t, db)
	ctx := context.Background()

	uow, err := repository.NewStore(db).Begin(ctx)
	require.NoError(t, err)
	defer uow.Dispose()
	require.NoError(t, uow.DeleteUserTree(ctx, f.alice.ID))
	require.NoError(t, uow.Commit())

	// Архивная доска принадлежала только Алисе и удаляется целиком
	assert.Equal(t, int64(1), count[model.Board](t, db))
	assert.Equal(t, int64(1), count[model.List](t, db))
	assert.Equal(t, int64(2), count[model.Card](t, db))
	assert.Equal(t, int64(1), count[model.UserBoard](t, db))
	assert.Equal(t, int64(2), count[model.UserCard](t, db))
	assert.Equal(t, int64(2), count[model.CardLabel](t, db))
	assert.Equal(t, int64(1), count[model.Comment](t, db))
}

func TestUnitOfWork_DeleteBoardIfOrphaned(t *testing.T) {
	db := setupSQLite(t)
	f := seed(t, db)
	ctx := context.Background()

	uow, err := repository.NewStore(db).Begin(ctx)
	require.NoError(t, err)
	defer uow.Dispose()

	deleted, err := uow.DeleteBoardIfOrphaned(ctx, f.board.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, uow.Memberships.DeleteWhere(ctx, repository.Where("board_id = ?", f.archived.ID)))
	deleted, err = uow.DeleteBoardIfOrphaned(ctx, f.archived.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	require.NoError(t, uow.Commit())

	assert.Equal(t, int64(1), count[model.Board](t, db))
	assert.Equal(t, int64(2), count[model.Card](t, db))
}

func TestAssignmentRepository_DeleteNonMembers(t *testing.T) {
	db := setupSQLite(t)
	f := seed(t, db)
	ctx := context.Background()
	repo := repository.NewAssignmentRepository(db)

	require.NoError(t, repo.DeleteNonMembers(ctx, f.archiveCard.ID, f.archived.ID))
	assert.Equal(t, int64(3), count[model.UserCard](t, db), "alice is a member of the archived board")

	require.NoError(t, repo.DeleteNonMembers(ctx, f.card1.ID, f.archived.ID))
	assert.Equal(t, int64(2), count[model.UserCard](t, db))

	edge, err := repo.Find(ctx, f.bob.ID, f.card2.ID)
	require.NoError(t, err)
	assert.NotNil(t, edge, "other cards keep their assignees")
}

func TestUnitOfWork_UncommittedWritesAreDiscarded(t *testing.T) {
	db := setupSQLite(t)
	f := seed(t, db)
	ctx := context.Background()

	uow, err := repository.NewStore(db).Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.DeleteListTree(ctx, f.list.ID))
	uow.Dispose()

	assert.Equal(t, int64(2), count[model.List](t, db))
	assert.Equal(t, int64(3), count[model.Card](t, db))
}
