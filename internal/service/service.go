// Package service holds the domain rules of the task board. Every operation
// takes the authenticated caller's id, resolves the board owning the target,
// checks membership and runs its reads and writes in one unit of work.
package service

import (
	"context"
	"strings"
	"time"

	"taskboard/internal/access"
	"taskboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

// Option customizes a service.
type Option func(*base)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		b.now = now
	}
}

type base struct {
	store *repository.Store
	now   func() time.Time
}

func newBase(store *repository.Store, opts []Option) base {
	b := base{store: store, now: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b base) timestamp() time.Time {
	return b.now().UTC()
}

// authorize turns a missing membership into ErrNotFound. It is the only place
// where a denial is decided, so callers cannot distinguish it from a missing
// resource.
func authorize(ctx context.Context, uow *repository.UnitOfWork, userID, boardID uint) error {
	ok, err := access.NewGate(uow.Memberships).HasAccess(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if !ok {
		log.WithFields(log.Fields{"user": userID, "board": boardID}).Warn("access denied")
		return ErrNotFound
	}
	return nil
}

func notFound(entity string, id uint) error {
	log.WithField(entity, id).Warnf("%s not found", entity)
	return ErrNotFound
}

func rejected(reason string, fields log.Fields) error {
	log.WithFields(fields).Warn(reason)
	return ErrRejected
}

func clean(s string) string {
	return strings.TrimSpace(s)
}
