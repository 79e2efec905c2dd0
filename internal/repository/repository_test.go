package repository_test

import (
	"context"
	"errors"
	"testing"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	return gormDB, mock
}

func TestBoardRepository_GetByID_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "background", "is_archived"}).
			AddRow(3, "Sprint", "Blue", false))

	// Act
	board, err := repo.GetByID(context.Background(), 3)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, board)
	assert.Equal(t, uint(3), board.ID)
	assert.Equal(t, "Sprint", board.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardRepository(gormDB)

	// Пустой результат не является ошибкой
	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	board, err := repo.GetByID(context.Background(), 99)

	assert.NoError(t, err)
	assert.Nil(t, board)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetByID_Error(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "boards"`).WillReturnError(errors.New("connection refused"))

	board, err := repo.GetByID(context.Background(), 1)

	assert.Error(t, err)
	assert.Nil(t, board)
}

func TestRepository_List_NeverNil(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewListRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "lists" WHERE board_id = .* ORDER BY position,id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	lists, err := repo.ListByBoard(context.Background(), 4)

	require.NoError(t, err)
	assert.NotNil(t, lists)
	assert.Empty(t, lists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_EmailTaken(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = .*`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.EmailTaken(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_CommitPersistsWrites(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	store := repository.NewStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO "user_boards"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	uow, err := store.Begin(context.Background())
	require.NoError(t, err)
	defer uow.Dispose()

	board := &model.Board{Title: "Sprint", Background: model.DefaultBackground}
	require.NoError(t, uow.Boards.Create(context.Background(), board))
	require.NoError(t, uow.Memberships.Create(context.Background(), &model.UserBoard{UserID: 1, BoardID: board.ID, Role: model.RoleMember}))
	err = uow.Commit()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(1), board.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_DisposeRollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectRollback()

	uow, err := store.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, uow.Boards.Create(context.Background(), &model.Board{Title: "Draft", Background: "Blue"}))

	uow.Dispose()
	uow.Dispose()

	assert.ErrorIs(t, uow.Commit(), repository.ErrUnitOfWorkClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_CommitTwice(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectCommit()

	uow, err := store.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, uow.Commit())
	assert.ErrorIs(t, uow.Commit(), repository.ErrUnitOfWorkClosed)
	uow.Dispose()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_RepositoriesRejectUseAfterClose(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewStore(gormDB)
	ctx := context.Background()

	// После Commit ни один запрос не должен дойти до базы
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	committed, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, committed.Commit())

	_, err = committed.Boards.GetByID(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrUnitOfWorkClosed)
	_, err = committed.Cards.BoardID(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrUnitOfWorkClosed)
	assert.ErrorIs(t, committed.Lists.Create(ctx, &model.List{Title: "late"}), repository.ErrUnitOfWorkClosed)

	disposed, err := store.Begin(ctx)
	require.NoError(t, err)
	disposed.Dispose()

	assert.ErrorIs(t, disposed.Memberships.DeleteWhere(ctx, repository.Where("board_id = ?", 1)), repository.ErrUnitOfWorkClosed)
	_, err = disposed.Users.ListByIDs(ctx, []uint{1})
	assert.ErrorIs(t, err, repository.ErrUnitOfWorkClosed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_CommitFailure(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	uow, err := store.Begin(context.Background())
	require.NoError(t, err)

	err = uow.Commit()
	assert.ErrorContains(t, err, "commit unit of work")
}

func TestStore_BeginFailure(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewStore(gormDB)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	uow, err := store.Begin(context.Background())

	assert.Nil(t, uow)
	assert.ErrorContains(t, err, "begin unit of work")
}
