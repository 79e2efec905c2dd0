package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// PasswordHasher hashes and checks passwords. The algorithm is opaque here.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer signs short-lived access tokens for a user.
type TokenIssuer interface {
	Issue(userID uint) (string, time.Time, error)
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileInput changes the caller's profile. A new password is only
// accepted together with the current one.
type UpdateProfileInput struct {
	Username        Optional[string] `json:"username"`
	Theme           Optional[string] `json:"theme"`
	Password        Optional[string] `json:"password"`
	CurrentPassword string           `json:"current_password"`
}

type UserDTO struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, Username: u.Username, Theme: u.Theme, CreatedAt: u.CreatedAt}
}

func toUserDTOs(users []model.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i := range users {
		out[i] = toUserDTO(&users[i])
	}
	return out
}

type AuthResult struct {
	Token                 string    `json:"token"`
	ExpiresAt             time.Time `json:"expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  UserDTO   `json:"user"`
}

const minPasswordLength = 6

type UserService struct {
	base
	hasher     PasswordHasher
	tokens     TokenIssuer
	refreshTTL time.Duration
}

func NewUserService(store *repository.Store, hasher PasswordHasher, tokens TokenIssuer, refreshTTL time.Duration, opts ...Option) *UserService {
	return &UserService{
		base:       newBase(store, opts),
		hasher:     hasher,
		tokens:     tokens,
		refreshTTL: refreshTTL,
	}
}

// Register creates an account and signs the new user in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(clean(in.Email))
	username := clean(in.Username)
	if email == "" || username == "" || len(in.Password) < minPasswordLength {
		return nil, rejected("incomplete registration", log.Fields{"email": email})
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	taken, err := uow.Users.EmailTaken(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		log.WithField("email", email).Warn("email already registered")
		return nil, ErrConflict
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.timestamp()
	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Theme:        model.DefaultTheme,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	result, err := s.signIn(ctx, uow, user)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	log.WithField("user", user.ID).Info("user registered")
	return result, nil
}

// Login checks the credentials and issues a fresh token pair. An unknown email
// and a wrong password fail the same way.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	user, err := uow.Users.FindByEmail(ctx, strings.ToLower(clean(in.Email)))
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, in.Password) {
		log.Warn("login failed")
		return nil, ErrInvalidCredentials
	}
	result, err := s.signIn(ctx, uow, user)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// Refresh exchanges a valid refresh token for a new pair. The old refresh
// token stops working.
func (s *UserService) Refresh(ctx context.Context, in RefreshInput) (*AuthResult, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	user, err := uow.Users.FindByRefreshToken(ctx, in.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("find user by refresh token: %w", err)
	}
	if user == nil || !user.RefreshValid(in.RefreshToken, s.timestamp()) {
		log.Warn("refresh token rejected")
		return nil, ErrInvalidCredentials
	}
	result, err := s.signIn(ctx, uow, user)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// Logout clears the caller's refresh token.
func (s *UserService) Logout(ctx context.Context, userID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	user, err := s.load(ctx, uow, userID)
	if err != nil {
		return err
	}
	user.RefreshToken = nil
	user.RefreshTokenExpiresAt = nil
	user.UpdatedAt = s.timestamp()
	if err := uow.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("clear refresh token of user %d: %w", userID, err)
	}
	return uow.Commit()
}

func (s *UserService) Profile(ctx context.Context, userID uint) (*UserDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	user, err := s.load(ctx, uow, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// UpdateProfile applies the supplied fields. An unknown theme is ignored; a
// password change with a wrong current password fails the whole update.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*UserDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	user, err := s.load(ctx, uow, userID)
	if err != nil {
		return nil, err
	}
	if password, ok := in.Password.Get(); ok {
		if !s.hasher.Compare(user.PasswordHash, in.CurrentPassword) {
			log.WithField("user", userID).Warn("password change with wrong current password")
			return nil, ErrInvalidCredentials
		}
		if len(password) < minPasswordLength {
			return nil, rejected("new password too short", log.Fields{"user": userID})
		}
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if username, ok := in.Username.Get(); ok && clean(username) != "" {
		user.Username = clean(username)
	}
	if theme, ok := in.Theme.Get(); ok {
		if model.IsUserTheme(theme) {
			user.Theme = theme
		} else {
			log.WithFields(log.Fields{"user": userID, "theme": theme}).Warn("ignoring unknown theme")
		}
	}
	user.UpdatedAt = s.timestamp()

	if err := uow.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", userID, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// Delete removes the account with its memberships, assignments and comments.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	if _, err := s.load(ctx, uow, userID); err != nil {
		return err
	}
	if err := uow.DeleteUserTree(ctx, userID); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}
	log.WithField("user", userID).Info("user deleted")
	return nil
}

func (s *UserService) signIn(ctx context.Context, uow *repository.UnitOfWork, user *model.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token for user %d: %w", user.ID, err)
	}
	now := s.timestamp()
	refresh := uuid.NewString()
	refreshExpiresAt := now.Add(s.refreshTTL)
	user.RefreshToken = &refresh
	user.RefreshTokenExpiresAt = &refreshExpiresAt
	user.UpdatedAt = now
	if err := uow.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("store refresh token of user %d: %w", user.ID, err)
	}
	return &AuthResult{
		Token:                 token,
		ExpiresAt:             expiresAt,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExpiresAt,
		User:                  toUserDTO(user),
	}, nil
}

func (s *UserService) load(ctx context.Context, uow *repository.UnitOfWork, userID uint) (*model.User, error) {
	user, err := uow.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, notFound("user", userID)
	}
	return user, nil
}
