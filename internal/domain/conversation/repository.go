package conversation

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a session id has no stored state.
var ErrNotFound = errors.New("session not found")

// Repository persists session state.
type Repository interface {
	// Get loads a session by id, returning ErrNotFound when absent.
	Get(ctx context.Context, id string) (*State, error)
	// Save upserts the full session record.
	Save(ctx context.Context, state *State) error
	// List returns all sessions, most recently active first.
	List(ctx context.Context) ([]*State, error)
}
