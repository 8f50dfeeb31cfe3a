package reconciler

import (
	"context"

	"github.com/gdg-garage/trip-planner/internal/models"
)

type SortField string

const (
	SortUpdatedAt   SortField = "updated_at"
	SortCreatedAt   SortField = "created_at"
	SortTotalCost   SortField = "total_cost"
	SortDestination SortField = "destination"
)

// ListFilter narrows a trip listing. Zero values mean "any".
type ListFilter struct {
	Status      models.TripStatus
	Destination string
	// Search matches destination case-insensitively as a substring.
	Search string
	Sort   SortField
	Limit  int
}

// Repository is the trip store. Implementations return ErrNotFound for rows that
// do not exist or are owned by someone else, and must write the revision in the
// same transaction as the trip.
type Repository interface {
	Create(ctx context.Context, trip *models.Trip, action models.RevisionAction) error
	Update(ctx context.Context, ownerID uint, id string, action models.RevisionAction, apply func(*models.Trip)) (*models.Trip, error)
	Get(ctx context.Context, ownerID uint, id string) (*models.Trip, error)
	Delete(ctx context.Context, ownerID uint, id string) error
	List(ctx context.Context, ownerID uint, filter ListFilter) ([]models.Trip, error)
	Revisions(ctx context.Context, ownerID uint, id string) ([]models.TripRevision, error)
}
