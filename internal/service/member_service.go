package service

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

type AddMemberInput struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,member_role"`
}

type UpdateMemberInput struct {
	Role string `json:"role" binding:"required,member_role"`
}

type MemberDTO struct {
	UserID   uint   `json:"user_id"`
	BoardID  uint   `json:"board_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// MemberService manages UserBoard edges. Any member may invite, list or
// remove members; roles are recorded but grant nothing extra.
type MemberService struct {
	base
}

func NewMemberService(store *repository.Store, opts ...Option) *MemberService {
	return &MemberService{base: newBase(store, opts)}
}

// AddMember gives the user registered under the email access to the board.
func (s *MemberService) AddMember(ctx context.Context, userID, boardID uint, in AddMemberInput) (*MemberDTO, error) {
	role := in.Role
	if role == "" {
		role = model.RoleMember
	}
	if !model.IsMemberRole(role) {
		return nil, rejected("unknown member role", log.Fields{"board": boardID, "role": role})
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	if err := s.loadBoard(ctx, uow, userID, boardID); err != nil {
		return nil, err
	}
	email := strings.ToLower(clean(in.Email))
	invitee, err := uow.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if invitee == nil {
		log.WithField("board", boardID).Warn("invited user not found")
		return nil, ErrNotFound
	}
	existing, err := uow.Memberships.Find(ctx, invitee.ID, boardID)
	if err != nil {
		return nil, fmt.Errorf("find membership: %w", err)
	}
	if existing != nil {
		log.WithFields(log.Fields{"board": boardID, "member": invitee.ID}).Warn("user is already a member")
		return nil, ErrConflict
	}

	edge := &model.UserBoard{UserID: invitee.ID, BoardID: boardID, Role: role}
	if err := uow.Memberships.Create(ctx, edge); err != nil {
		return nil, fmt.Errorf("create membership: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"user": userID, "board": boardID, "member": invitee.ID}).Info("member added")
	return &MemberDTO{UserID: invitee.ID, BoardID: boardID, Email: invitee.Email, Username: invitee.Username, Role: role}, nil
}

func (s *MemberService) ListMembers(ctx context.Context, userID, boardID uint) ([]MemberDTO, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	if err := s.loadBoard(ctx, uow, userID, boardID); err != nil {
		return nil, err
	}
	edges, err := uow.Memberships.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list members of board %d: %w", boardID, err)
	}
	ids := make([]uint, len(edges))
	for i, e := range edges {
		ids[i] = e.UserID
	}
	users, err := uow.Users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load members of board %d: %w", boardID, err)
	}
	byID := make(map[uint]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]MemberDTO, 0, len(edges))
	for _, e := range edges {
		u, ok := byID[e.UserID]
		if !ok {
			continue
		}
		out = append(out, MemberDTO{UserID: u.ID, BoardID: boardID, Email: u.Email, Username: u.Username, Role: e.Role})
	}
	return out, nil
}

func (s *MemberService) UpdateRole(ctx context.Context, userID, boardID, memberID uint, in UpdateMemberInput) (*MemberDTO, error) {
	if !model.IsMemberRole(in.Role) {
		return nil, rejected("unknown member role", log.Fields{"board": boardID, "role": in.Role})
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Dispose()

	if err := s.loadBoard(ctx, uow, userID, boardID); err != nil {
		return nil, err
	}
	edge, err := uow.Memberships.Find(ctx, memberID, boardID)
	if err != nil {
		return nil, fmt.Errorf("find membership: %w", err)
	}
	if edge == nil {
		return nil, notFound("member", memberID)
	}
	member, err := uow.Users.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", memberID, err)
	}
	if member == nil {
		return nil, notFound("user", memberID)
	}

	edge.Role = in.Role
	if err := uow.Memberships.Update(ctx, edge); err != nil {
		return nil, fmt.Errorf("update membership: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &MemberDTO{UserID: member.ID, BoardID: boardID, Email: member.Email, Username: member.Username, Role: edge.Role}, nil
}

// RemoveMember drops the membership together with the member's assignments
// on cards of the board. Removing the last member deletes the board.
func (s *MemberService) RemoveMember(ctx context.Context, userID, boardID, memberID uint) error {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Dispose()

	if err := s.loadBoard(ctx, uow, userID, boardID); err != nil {
		return err
	}
	edge, err := uow.Memberships.Find(ctx, memberID, boardID)
	if err != nil {
		return fmt.Errorf("find membership: %w", err)
	}
	if edge == nil {
		return notFound("member", memberID)
	}
	if err := uow.Assignments.DeleteOnBoard(ctx, memberID, boardID); err != nil {
		return fmt.Errorf("drop assignments of user %d on board %d: %w", memberID, boardID, err)
	}
	if err := uow.Memberships.Delete(ctx, edge); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	orphaned, err := uow.DeleteBoardIfOrphaned(ctx, boardID)
	if err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}
	fields := log.Fields{"user": userID, "board": boardID, "member": memberID}
	log.WithFields(fields).Info("member removed")
	if orphaned {
		log.WithFields(fields).Info("board deleted with its last member")
	}
	return nil
}

// Leave removes the caller from the board.
func (s *MemberService) Leave(ctx context.Context, userID, boardID uint) error {
	return s.RemoveMember(ctx, userID, boardID, userID)
}

// Role returns the caller's role on the board.
func (s *MemberService) Role(ctx context.Context, userID, boardID uint) (string, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer uow.Dispose()

	role, err := access.NewGate(uow.Memberships).Role(ctx, userID, boardID)
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", notFound("board", boardID)
	}
	return role, nil
}

func (s *MemberService) loadBoard(ctx context.Context, uow *repository.UnitOfWork, userID, boardID uint) error {
	board, err := uow.Boards.GetByID(ctx, boardID)
	if err != nil {
		return fmt.Errorf("get board %d: %w", boardID, err)
	}
	if board == nil {
		return notFound("board", boardID)
	}
	return authorize(ctx, uow, userID, boardID)
}
