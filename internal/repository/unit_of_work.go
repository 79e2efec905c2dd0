package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store hands out units of work over a shared connection pool.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Begin opens a unit of work. Callers must Dispose it on every path, usually
// with defer right after Begin.
func (s *Store) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin unit of work: %w", tx.Error)
	}
	return newUnitOfWork(tx), nil
}

// UnitOfWork groups the writes of one logical operation into one transaction.
// It is bound to a single request and must not be shared between goroutines.
// After Commit or Dispose its repositories fail with ErrUnitOfWorkClosed.
type UnitOfWork struct {
	tx    *gorm.DB
	state *txState

	Users       *UserRepository
	Boards      *BoardRepository
	Memberships *MembershipRepository
	Lists       *ListRepository
	Cards       *CardRepository
	Labels      *LabelRepository
	CardLabels  *CardLabelRepository
	Assignments *AssignmentRepository
	Comments    *CommentRepository
}

func newUnitOfWork(tx *gorm.DB) *UnitOfWork {
	u := &UnitOfWork{
		tx:          tx,
		state:       &txState{},
		Users:       NewUserRepository(tx),
		Boards:      NewBoardRepository(tx),
		Memberships: NewMembershipRepository(tx),
		Lists:       NewListRepository(tx),
		Cards:       NewCardRepository(tx),
		Labels:      NewLabelRepository(tx),
		CardLabels:  NewCardLabelRepository(tx),
		Assignments: NewAssignmentRepository(tx),
		Comments:    NewCommentRepository(tx),
	}
	u.Users.state = u.state
	u.Boards.state = u.state
	u.Memberships.state = u.state
	u.Lists.state = u.state
	u.Cards.state = u.state
	u.Labels.state = u.state
	u.CardLabels.state = u.state
	u.Assignments.state = u.state
	u.Comments.state = u.state
	return u
}

// Commit persists every staged write or none of them.
func (u *UnitOfWork) Commit() error {
	if u.state.closed {
		return ErrUnitOfWorkClosed
	}
	u.state.closed = true
	if err := u.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit unit of work: %w", err)
	}
	return nil
}

// Dispose rolls back anything not committed and releases the transaction.
// It is a no-op after Commit and may be called more than once.
func (u *UnitOfWork) Dispose() {
	if u.state.closed {
		return
	}
	u.state.closed = true
	u.tx.Rollback()
}
