// Package access answers whether a user may act on a board.
//
// A user may read or change a board, and everything owned by it, only when a
// membership edge (UserBoard) exists between them. The stored role is returned
// for display but is not consulted.
package access

import (
	"context"
	"fmt"

	"taskboard/internal/model"
)

// MembershipFinder looks up a membership edge by its composite key and
// returns nil when the edge does not exist.
type MembershipFinder interface {
	Find(ctx context.Context, userID, boardID uint) (*model.UserBoard, error)
}

type Gate struct {
	memberships MembershipFinder
}

func NewGate(memberships MembershipFinder) *Gate {
	return &Gate{memberships: memberships}
}

// HasAccess reports whether userID is a member of boardID.
func (g *Gate) HasAccess(ctx context.Context, userID, boardID uint) (bool, error) {
	if userID == 0 || boardID == 0 {
		return false, nil
	}
	edge, err := g.memberships.Find(ctx, userID, boardID)
	if err != nil {
		return false, fmt.Errorf("look up membership of user %d on board %d: %w", userID, boardID, err)
	}
	return edge != nil, nil
}

// Role returns the stored role of the membership, or "" without access.
func (g *Gate) Role(ctx context.Context, userID, boardID uint) (string, error) {
	edge, err := g.memberships.Find(ctx, userID, boardID)
	if err != nil {
		return "", fmt.Errorf("look up membership of user %d on board %d: %w", userID, boardID, err)
	}
	if edge == nil {
		return "", nil
	}
	return edge.Role, nil
}
