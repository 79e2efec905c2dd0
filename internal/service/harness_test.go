package service_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	db    *gorm.DB
	clock *fakeClock

	users       *service.UserService
	boards      *service.BoardService
	members     *service.MemberService
	lists       *service.ListService
	cards       *service.CardService
	comments    *service.CommentService
	labels      *service.LabelService
	assignments *service.AssignmentService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, repository.AutoMigrate(db))

	clock := &fakeClock{now: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)}
	opt := service.WithClock(clock.Now)
	store := repository.NewStore(db)

	return &harness{
		db:    db,
		clock: clock,
		users: service.NewUserService(store,
			auth.NewBcryptHasher(bcrypt.MinCost),
			auth.NewTokenManager("test-secret", 15*time.Minute),
			24*time.Hour, opt),
		boards:      service.NewBoardService(store, opt),
		members:     service.NewMemberService(store, opt),
		lists:       service.NewListService(store, opt),
		cards:       service.NewCardService(store, opt),
		comments:    service.NewCommentService(store, opt),
		labels:      service.NewLabelService(store, opt),
		assignments: service.NewAssignmentService(store, opt),
	}
}

func (h *harness) register(t *testing.T, email string) uint {
	t.Helper()
	res, err := h.users.Register(context.Background(), service.RegisterInput{
		Email:    email,
		Username: "user " + email,
		Password: "password123",
	})
	require.NoError(t, err)
	return res.User.ID
}

func (h *harness) board(t *testing.T, userID uint, title string) uint {
	t.Helper()
	b, err := h.boards.Create(context.Background(), userID, service.CreateBoardInput{Title: title})
	require.NoError(t, err)
	return b.ID
}

func (h *harness) list(t *testing.T, userID, boardID uint, title string) uint {
	t.Helper()
	l, err := h.lists.Create(context.Background(), userID, service.CreateListInput{BoardID: boardID, Title: title})
	require.NoError(t, err)
	return l.ID
}

func (h *harness) card(t *testing.T, userID, listID uint, title string) uint {
	t.Helper()
	c, err := h.cards.Create(context.Background(), userID, service.CreateCardInput{ListID: listID, Title: title})
	require.NoError(t, err)
	return c.ID
}

func (h *harness) share(t *testing.T, ownerID, boardID uint, email string) {
	t.Helper()
	_, err := h.members.AddMember(context.Background(), ownerID, boardID, service.AddMemberInput{Email: email})
	require.NoError(t, err)
}

func count[T any](t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(new(T)).Count(&n).Error)
	return n
}

func loadBoard(t *testing.T, db *gorm.DB, id uint) model.Board {
	t.Helper()
	var b model.Board
	require.NoError(t, db.First(&b, id).Error)
	return b
}
