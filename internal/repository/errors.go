package repository

import "errors"

var (
	// ErrUnitOfWorkClosed is returned when a unit of work is used after it was
	// committed or disposed.
	ErrUnitOfWorkClosed = errors.New("unit of work already closed")
)
