// Package session keeps the draft of each planning session between requests.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/gdg-garage/trip-planner/internal/planner"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("planning session not found")

// Session is one planning session: the draft being edited and, once saved, the
// id of the trip it writes to.
type Session struct {
	ID        string            `json:"id"`
	OwnerID   uint              `json:"owner_id"`
	TripID    string            `json:"trip_id,omitempty"`
	Draft     planner.TripDraft `json:"draft"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func New(ownerID uint, draft planner.TripDraft) Session {
	return Session{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Draft:     draft,
		UpdatedAt: time.Now().UTC(),
	}
}

// Store persists sessions. Get returns ErrNotFound for unknown ids and for
// sessions owned by someone else.
type Store interface {
	Get(ctx context.Context, ownerID uint, id string) (Session, error)
	Put(ctx context.Context, s Session) error
	Delete(ctx context.Context, ownerID uint, id string) error
}
