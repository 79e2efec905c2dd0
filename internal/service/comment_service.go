package service

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

type CreateCommentInput struct {
	CardID uint   `json:"card_id" binding:"required"`
	Text   string `json:"text" binding:"required,max=2000"`
}

type UpdateCommentInput struct {
	Text Optional[string] `json:"text"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	CardID    uint      `json:"card_id"`
	AuthorID  uint      `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCommentDTO(c *model.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		CardID:    c.CardID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CommentService manages card comments. Any board member may read and add
// comments; only the author may edit or delete one.
type CommentService struct {
	base
}

func NewCommentService(store *repository.Store, opts ...Option) *CommentService {
	return &CommentService{base: newBase(store, opts)}
}

func (s *CommentService) Create(ctx context.Context, userID uint, in CreateCommentInput) (*CommentDTO, error) {
	text := clean(in.Text)
	if text == "" {
		return nil, rejected("comment text is empty", log.Fields{"user": userID, "card": in.CardID})
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	if _, err := loadCard(ctx, uow, userID, in.CardID); err != nil {
		return nil, err
	}
	now := s.timestamp()
	comment := &model.Comment{
		CardID:    in.CardID,
		AuthorID:  userID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.Comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	dto := toCommentDTO(comment)
	return &dto, nil
}

func (s *CommentService) Get(ctx context.Context, userID, commentID uint) (*CommentDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	comment, err := s.load(ctx, uow, userID, commentID)
	if err != nil {
		return nil, err
	}
	dto := toCommentDTO(comment)
	return &dto, nil
}

// ListForCard returns the comments of a card, oldest first.
func (s *CommentService) ListForCard(ctx context.Context, userID, cardID uint) ([]CommentDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	if _, err := loadCard(ctx, uow, userID, cardID); err != nil {
		return nil, err
	}
	comments, err := uow.Comments.ListByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("list comments of card %d: %w", cardID, err)
	}
	out := make([]CommentDTO, len(comments))
	for i := range comments {
		out[i] = toCommentDTO(&comments[i])
	}
	return out, nil
}

func (s *CommentService) Update(ctx context.Context, userID, commentID uint, in UpdateCommentInput) (*CommentDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	comment, err := s.loadOwn(ctx, uow, userID, commentID)
	if err != nil {
		return nil, err
	}
	if text, ok := in.Text.Get(); ok && clean(text) != "" {
		comment.Text = clean(text)
	}
	comment.UpdatedAt = s.timestamp()

	if err := uow.Comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment %d: %w", commentID, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	dto := toCommentDTO(comment)
	return &dto, nil
}

func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	comment, err := s.loadOwn(ctx, uow, userID, commentID)
	if err != nil {
		return err
	}
	if err := uow.Comments.Delete(ctx, comment); err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	return uow.Commit()
}

func (s *CommentService) load(ctx context.Context, uow *repository.UnitOfWork, userID, commentID uint) (*model.Comment, error) {
	comment, err := uow.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("get comment %d: %w", commentID, err)
	}
	if comment == nil {
		return nil, notFound("comment", commentID)
	}
	if _, err := loadCard(ctx, uow, userID, comment.CardID); err != nil {
		return nil, err
	}
	return comment, nil
}

// loadOwn is load restricted to the comment's author. Other members see the
// comment as missing.
func (s *CommentService) loadOwn(ctx context.Context, uow *repository.UnitOfWork, userID, commentID uint) (*model.Comment, error) {
	comment, err := s.load(ctx, uow, userID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		log.WithFields(log.Fields{"user": userID, "comment": commentID}).Warn("comment belongs to another author")
		return nil, ErrNotFound
	}
	return comment, nil
}
