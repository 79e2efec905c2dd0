package service

import (
	"context"
	"fmt"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

type CreateLabelInput struct {
	BoardID uint   `json:"board_id" binding:"required"`
	Title   string `json:"title" binding:"max=50"`
	Color   string `json:"color" binding:"required,label_color"`
}

type UpdateLabelInput struct {
	Title Optional[string] `json:"title"`
	Color Optional[string] `json:"color"`
}

type LabelDTO struct {
	ID      uint   `json:"id"`
	BoardID uint   `json:"board_id"`
	Title   string `json:"title"`
	Color   string `json:"color"`
}

func toLabelDTO(l *model.Label) LabelDTO {
	return LabelDTO{ID: l.ID, BoardID: l.BoardID, Title: l.Title, Color: l.Color}
}

func toLabelDTOs(labels []model.Label) []LabelDTO {
	out := make([]LabelDTO, len(labels))
	for i := range labels {
		out[i] = toLabelDTO(&labels[i])
	}
	return out
}

// LabelService manages board labels and the tagging of cards with them.
type LabelService struct {
	base
}

func NewLabelService(store *repository.Store, opts ...Option) *LabelService {
	return &LabelService{base: newBase(store, opts)}
}

func (s *LabelService) Create(ctx context.Context, userID uint, in CreateLabelInput) (*LabelDTO, error) {
	if !model.IsLabelColor(in.Color) {
		return nil, rejected("unknown label color", log.Fields{"user": userID, "color": in.Color})
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	board, err := uow.Boards.GetByID(ctx, in.BoardID)
	if err != nil {
		return nil, fmt.Errorf("get board %d: %w", in.BoardID, err)
	}
	if board == nil {
		return nil, notFound("board", in.BoardID)
	}
	if err := authorize(ctx, uow, userID, board.ID); err != nil {
		return nil, err
	}

	label := &model.Label{BoardID: board.ID, Title: clean(in.Title), Color: in.Color}
	if err := uow.Labels.Create(ctx, label); err != nil {
		return nil, fmt.Errorf("create label: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	dto := toLabelDTO(label)
	return &dto, nil
}

func (s *LabelService) Get(ctx context.Context, userID, labelID uint) (*LabelDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	label, err := loadLabel(ctx, uow, userID, labelID)
	if err != nil {
		return nil, err
	}
	dto := toLabelDTO(label)
	return &dto, nil
}

func (s *LabelService) ListForBoard(ctx context.Context, userID, boardID uint) ([]LabelDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	if err := authorize(ctx, uow, userID, boardID); err != nil {
		return nil, err
	}
	labels, err := uow.Labels.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list labels of board %d: %w", boardID, err)
	}
	return toLabelDTOs(labels), nil
}

// Update applies the supplied fields. An unknown color is ignored.
func (s *LabelService) Update(ctx context.Context, userID, labelID uint, in UpdateLabelInput) (*LabelDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	label, err := loadLabel(ctx, uow, userID, labelID)
	if err != nil {
		return nil, err
	}
	if title, ok := in.Title.Get(); ok {
		label.Title = clean(title)
	}
	if color, ok := in.Color.Get(); ok {
		if model.IsLabelColor(color) {
			label.Color = color
		} else {
			log.WithFields(log.Fields{"label": labelID, "color": color}).Warn("ignoring unknown label color")
		}
	}

	if err := uow.Labels.Update(ctx, label); err != nil {
		return nil, fmt.Errorf("update label %d: %w", labelID, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	dto := toLabelDTO(label)
	return &dto, nil
}

// Delete removes the label and detaches it from every card.
func (s *LabelService) Delete(ctx context.Context, userID, labelID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	if _, err := loadLabel(ctx, uow, userID, labelID); err != nil {
		return err
	}
	if err := uow.DeleteLabelTree(ctx, labelID); err != nil {
		return err
	}
	return uow.Commit()
}

// AttachToCard tags a card with a label of the same board. Tagging twice is
// not an error.
func (s *LabelService) AttachToCard(ctx context.Context, userID, cardID, labelID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	_, boardID, err := loadCardWithBoard(ctx, uow, userID, cardID)
	if err != nil {
		return err
	}
	label, err := loadLabel(ctx, uow, userID, labelID)
	if err != nil {
		return err
	}
	if label.BoardID != boardID {
		return rejected("label belongs to another board", log.Fields{"card": cardID, "label": labelID})
	}

	existing, err := uow.CardLabels.Find(ctx, cardID, labelID)
	if err != nil {
		return fmt.Errorf("find card label: %w", err)
	}
	if existing != nil {
		return nil
	}
	if err := uow.CardLabels.Create(ctx, &model.CardLabel{CardID: cardID, LabelID: labelID}); err != nil {
		return fmt.Errorf("attach label %d to card %d: %w", labelID, cardID, err)
	}
	return uow.Commit()
}

func (s *LabelService) DetachFromCard(ctx context.Context, userID, cardID, labelID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	if _, err := loadCard(ctx, uow, userID, cardID); err != nil {
		return err
	}
	edge, err := uow.CardLabels.Find(ctx, cardID, labelID)
	if err != nil {
		return fmt.Errorf("find card label: %w", err)
	}
	if edge == nil {
		return notFound("card label", labelID)
	}
	if err := uow.CardLabels.Delete(ctx, edge); err != nil {
		return fmt.Errorf("detach label %d from card %d: %w", labelID, cardID, err)
	}
	return uow.Commit()
}

// ListForCard returns the labels attached to a card.
func (s *LabelService) ListForCard(ctx context.Context, userID, cardID uint) ([]LabelDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	if _, err := loadCard(ctx, uow, userID, cardID); err != nil {
		return nil, err
	}
	labels, err := uow.Labels.ListByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("list labels of card %d: %w", cardID, err)
	}
	return toLabelDTOs(labels), nil
}

// ListCards returns the cards tagged with a label.
func (s *LabelService) ListCards(ctx context.Context, userID, labelID uint) ([]CardDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	if _, err := loadLabel(ctx, uow, userID, labelID); err != nil {
		return nil, err
	}
	cards, err := uow.Cards.ListByLabel(ctx, labelID)
	if err != nil {
		return nil, fmt.Errorf("list cards with label %d: %w", labelID, err)
	}
	return toCardDTOs(cards), nil
}

func loadLabel(ctx context.Context, uow *repository.UnitOfWork, userID, labelID uint) (*model.Label, error) {
	label, err := uow.Labels.GetByID(ctx, labelID)
	if err != nil {
		return nil, fmt.Errorf("get label %d: %w", labelID, err)
	}
	if label == nil {
		return nil, notFound("label", labelID)
	}
	if err := authorize(ctx, uow, userID, label.BoardID); err != nil {
		return nil, err
	}
	return label, nil
}
