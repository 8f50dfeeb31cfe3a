// Package reconciler maps trip drafts onto persisted trips and back. It decides
// between insert and update and between draft and confirmed status.
package reconciler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gdg-garage/trip-planner/internal/logger"
	"github.com/gdg-garage/trip-planner/internal/models"
	"github.com/gdg-garage/trip-planner/internal/planner"
	"github.com/google/uuid"
)

// ConfirmNotifier is told about trips that just became confirmed.
type ConfirmNotifier interface {
	NotifyTripConfirmed(ctx context.Context, trip models.Trip) error
}

type WriteObserver interface {
	ObserveWrite(action, outcome string, d time.Duration)
}

type Reconciler struct {
	repo     Repository
	notifier ConfirmNotifier
	observer WriteObserver
	log      *logger.Logger
	now      func() time.Time
}

type Option func(*Reconciler)

func WithNotifier(n ConfirmNotifier) Option {
	return func(r *Reconciler) { r.notifier = n }
}

func WithObserver(o WriteObserver) Option {
	return func(r *Reconciler) { r.observer = o }
}

func WithLogger(l *logger.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

func New(repo Repository, opts ...Option) *Reconciler {
	r := &Reconciler{
		repo: repo,
		log:  logger.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WriteOption adjusts a single Save or Confirm call.
type WriteOption func(*writeOptions)

type writeOptions struct {
	name string
}

// Named sets the trip's display name. An empty name keeps the stored one.
func Named(name string) WriteOption {
	return func(o *writeOptions) { o.name = strings.TrimSpace(name) }
}

type Result struct {
	ID        string
	Created   bool
	Status    models.TripStatus
	UpdatedAt time.Time
}

type LoadedTrip struct {
	Trip  models.Trip
	Draft planner.TripDraft
}

// Save persists the draft. With no existingID a new draft-status trip is
// inserted; otherwise the owner's trip with that id is updated and keeps its
// status.
func (r *Reconciler) Save(ctx context.Context, ownerID uint, draft planner.TripDraft, existingID string, opts ...WriteOption) (Result, error) {
	return r.write(ctx, ownerID, draft, existingID, models.RevisionSave, opts)
}

// Confirm persists the draft like Save and marks the trip confirmed. Confirmed
// trips never go back to draft.
func (r *Reconciler) Confirm(ctx context.Context, ownerID uint, draft planner.TripDraft, existingID string, opts ...WriteOption) (Result, error) {
	return r.write(ctx, ownerID, draft, existingID, models.RevisionConfirm, opts)
}

func (r *Reconciler) write(ctx context.Context, ownerID uint, draft planner.TripDraft, existingID string, action models.RevisionAction, opts []WriteOption) (Result, error) {
	op := string(action)
	if existingID != "" && !validID(existingID) {
		return Result{}, ErrNotFound
	}
	var wo writeOptions
	for _, opt := range opts {
		opt(&wo)
	}
	apply := func(t *models.Trip) {
		applyDraft(t, draft)
		if wo.name != "" {
			t.Name = wo.name
		}
	}

	start := time.Now()
	confirming := action == models.RevisionConfirm
	becameConfirmed := false
	markConfirmed := func(t *models.Trip) {
		if !confirming || t.Status == models.TripStatusConfirmed {
			return
		}
		now := r.now()
		t.Status = models.TripStatusConfirmed
		t.ConfirmedAt = &now
		becameConfirmed = true
	}

	var (
		trip *models.Trip
		err  error
	)
	if existingID == "" {
		trip = &models.Trip{OwnerID: ownerID, Status: models.TripStatusDraft}
		apply(trip)
		markConfirmed(trip)
		err = r.repo.Create(ctx, trip, action)
	} else {
		trip, err = r.repo.Update(ctx, ownerID, existingID, action, func(t *models.Trip) {
			apply(t)
			markConfirmed(t)
		})
	}
	r.observe(op, err, time.Since(start))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.Error(ctx, "trip "+op+" failed", err)
		}
		return Result{}, persistenceErr(op, err)
	}

	if becameConfirmed {
		r.notify(ctx, *trip)
	}

	return Result{
		ID:        trip.ID,
		Created:   existingID == "",
		Status:    trip.Status,
		UpdatedAt: trip.UpdatedAt,
	}, nil
}

// Load fetches the owner's trip and maps it back into a draft.
func (r *Reconciler) Load(ctx context.Context, ownerID uint, id string) (LoadedTrip, error) {
	if !validID(id) {
		return LoadedTrip{}, ErrNotFound
	}
	trip, err := r.repo.Get(ctx, ownerID, id)
	if err != nil {
		return LoadedTrip{}, persistenceErr("load", err)
	}
	return LoadedTrip{Trip: *trip, Draft: draftFromTrip(trip)}, nil
}

func (r *Reconciler) Delete(ctx context.Context, ownerID uint, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return persistenceErr("delete", r.repo.Delete(ctx, ownerID, id))
}

func (r *Reconciler) List(ctx context.Context, ownerID uint, filter ListFilter) ([]models.Trip, error) {
	trips, err := r.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, persistenceErr("list", err)
	}
	return trips, nil
}

// History returns the trip's revisions, newest first.
func (r *Reconciler) History(ctx context.Context, ownerID uint, id string) ([]models.TripRevision, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	revs, err := r.repo.Revisions(ctx, ownerID, id)
	if err != nil {
		return nil, persistenceErr("history", err)
	}
	return revs, nil
}

func (r *Reconciler) notify(ctx context.Context, trip models.Trip) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.NotifyTripConfirmed(ctx, trip); err != nil {
		r.log.Warn(r.log.WithTripID(ctx, trip.ID), "confirmation notification failed", err)
	}
}

func (r *Reconciler) observe(action string, err error, d time.Duration) {
	if r.observer == nil {
		return
	}
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	r.observer.ObserveWrite(action, outcome, d)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
