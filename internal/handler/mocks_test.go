package handler_test

import (
	"context"

	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// Мок сервиса досок
type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) Create(ctx context.Context, userID uint, in service.CreateBoardInput) (*service.BoardDTO, error) {
	args := m.Called(ctx, userID, in)
	board, _ := args.Get(0).(*service.BoardDTO)
	return board, args.Error(1)
}

func (m *MockBoardService) Get(ctx context.Context, userID, boardID uint) (*service.BoardDTO, error) {
	args := m.Called(ctx, userID, boardID)
	board, _ := args.Get(0).(*service.BoardDTO)
	return board, args.Error(1)
}

func (m *MockBoardService) ListForUser(ctx context.Context, userID uint) ([]service.BoardDTO, error) {
	args := m.Called(ctx, userID)
	boards, _ := args.Get(0).([]service.BoardDTO)
	return boards, args.Error(1)
}

func (m *MockBoardService) ListArchivedForUser(ctx context.Context, userID uint) ([]service.BoardDTO, error) {
	args := m.Called(ctx, userID)
	boards, _ := args.Get(0).([]service.BoardDTO)
	return boards, args.Error(1)
}

func (m *MockBoardService) Update(ctx context.Context, userID, boardID uint, in service.UpdateBoardInput) (*service.BoardDTO, error) {
	args := m.Called(ctx, userID, boardID, in)
	board, _ := args.Get(0).(*service.BoardDTO)
	return board, args.Error(1)
}

func (m *MockBoardService) Delete(ctx context.Context, userID, boardID uint) error {
	return m.Called(ctx, userID, boardID).Error(0)
}

// Мок сервиса пользователей
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, in service.LoginInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *MockUserService) Refresh(ctx context.Context, in service.RefreshInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserService) Profile(ctx context.Context, userID uint) (*service.UserDTO, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*service.UserDTO)
	return user, args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID uint, in service.UpdateProfileInput) (*service.UserDTO, error) {
	args := m.Called(ctx, userID, in)
	user, _ := args.Get(0).(*service.UserDTO)
	return user, args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

// Мок сервиса карточек
type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) Create(ctx context.Context, userID uint, in service.CreateCardInput) (*service.CardDTO, error) {
	args := m.Called(ctx, userID, in)
	card, _ := args.Get(0).(*service.CardDTO)
	return card, args.Error(1)
}

func (m *MockCardService) Get(ctx context.Context, userID, cardID uint) (*service.CardDTO, error) {
	args := m.Called(ctx, userID, cardID)
	card, _ := args.Get(0).(*service.CardDTO)
	return card, args.Error(1)
}

func (m *MockCardService) ListForList(ctx context.Context, userID, listID uint) ([]service.CardDTO, error) {
	args := m.Called(ctx, userID, listID)
	cards, _ := args.Get(0).([]service.CardDTO)
	return cards, args.Error(1)
}

func (m *MockCardService) ListAssignedToUser(ctx context.Context, userID uint) ([]service.CardDTO, error) {
	args := m.Called(ctx, userID)
	cards, _ := args.Get(0).([]service.CardDTO)
	return cards, args.Error(1)
}

func (m *MockCardService) Update(ctx context.Context, userID, cardID uint, in service.UpdateCardInput) (*service.CardDTO, error) {
	args := m.Called(ctx, userID, cardID, in)
	card, _ := args.Get(0).(*service.CardDTO)
	return card, args.Error(1)
}

func (m *MockCardService) Delete(ctx context.Context, userID, cardID uint) error {
	return m.Called(ctx, userID, cardID).Error(0)
}

// authenticatedRouter stands in for the JWT middleware and stores userID.
func authenticatedRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler.RegisterValidators()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	return r
}
