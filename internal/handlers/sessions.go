package handlers

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/trip-planner/internal/auth"
	"github.com/gdg-garage/trip-planner/internal/catalog"
	"github.com/gdg-garage/trip-planner/internal/logger"
	"github.com/gdg-garage/trip-planner/internal/metrics"
	"github.com/gdg-garage/trip-planner/internal/models"
	"github.com/gdg-garage/trip-planner/internal/planner"
	"github.com/gdg-garage/trip-planner/internal/reconciler"
	"github.com/gdg-garage/trip-planner/internal/session"
	"github.com/shopspring/decimal"
)

// SessionHandler drives a planning session: it loads the draft, applies one
// category update, recomputes the total and stores the draft again.
type SessionHandler struct {
	catalog     *catalog.Catalog
	sessions    session.Store
	trips       *reconciler.Reconciler
	authHandler *auth.AuthHandler
	metrics     *metrics.TripMetrics
	log         *logger.Logger
}

func NewSessionHandler(
	c *catalog.Catalog,
	sessions session.Store,
	trips *reconciler.Reconciler,
	authHandler *auth.AuthHandler,
	m *metrics.TripMetrics,
	log *logger.Logger,
) *SessionHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionHandler{
		catalog:     c,
		sessions:    sessions,
		trips:       trips,
		authHandler: authHandler,
		metrics:     m,
		log:         log,
	}
}

type SessionOutput struct {
	Body SessionView
}

type CreateSessionInput struct {
	auth.AuthInput
	Body struct {
		Destination string `json:"destination,omitempty" doc:"Destination slug for a new trip"`
		TripID      string `json:"trip_id,omitempty" doc:"Saved trip to edit"`
	}
}

// HandleCreate starts a planning session, either fresh for a destination or
// from a saved trip. Sessions started from a trip write back to it.
func (h *SessionHandler) HandleCreate(ctx context.Context, input *CreateSessionInput) (*SessionOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var sess session.Session
	switch {
	case input.Body.TripID != "":
		loaded, err := h.trips.Load(ctx, userID, input.Body.TripID)
		if err != nil {
			return nil, apiError(ctx, h.log, err)
		}
		sess = session.New(userID, loaded.Draft)
		sess.TripID = loaded.Trip.ID
	case input.Body.Destination != "":
		if _, err := h.catalog.Destination(input.Body.Destination); err != nil {
			return nil, apiError(ctx, h.log, err)
		}
		store := planner.NewStore(planner.WithLocalTravelCost(h.catalog.LocalTravelCost(input.Body.Destination)))
		store.SetDestination(input.Body.Destination)
		sess = session.New(userID, store.Draft())
	default:
		return nil, huma.Error400BadRequest("Either destination or trip_id is required")
	}

	if err := h.sessions.Put(ctx, sess); err != nil {
		return nil, apiError(ctx, h.log, err)
	}
	h.metrics.SessionStarted()

	return &SessionOutput{Body: sessionView(sess)}, nil
}

type SessionPath struct {
	auth.AuthInput
	ID string `path:"id" doc:"Planning session id"`
}

func (h *SessionHandler) HandleGet(ctx context.Context, input *SessionPath) (*SessionOutput, error) {
	_, sess, err := h.load(ctx, input)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: sessionView(sess)}, nil
}

// HandleDelete abandons the session. The saved trip, if any, is kept.
func (h *SessionHandler) HandleDelete(ctx context.Context, input *SessionPath) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}
	if err := h.sessions.Delete(ctx, userID, input.ID); err != nil {
		return nil, apiError(ctx, h.log, err)
	}
	return nil, nil
}

type UpdateTransportInput struct {
	SessionPath
	Body struct {
		Mode     planner.Mode `json:"mode,omitempty" enum:"bus,train,flight,car" doc:"Switching mode clears the selected option"`
		OptionID string       `json:"option_id,omitempty" doc:"Transport option id for the current mode"`
		Seats    int          `json:"seats,omitempty" doc:"Seat count; values below 1 are ignored"`
	}
}

func (h *SessionHandler) HandleUpdateTransport(ctx context.Context, input *UpdateTransportInput) (*SessionOutput, error) {
	return h.update(ctx, &input.SessionPath, func(s *planner.Store, dest string) error {
		if mode := input.Body.Mode; mode != "" && mode != s.Draft().Transport.Mode {
			modes, err := h.catalog.Modes(dest)
			if err != nil {
				return err
			}
			if !slices.Contains(modes, mode) {
				return huma.Error422UnprocessableEntity(fmt.Sprintf("Mode %q is not offered for %s", mode, dest))
			}
			s.ChangeTransportMode(mode)
		}
		s.SetSeats(input.Body.Seats)
		if input.Body.OptionID != "" {
			opt, err := h.catalog.TransportOption(dest, s.Draft().Transport.Mode, input.Body.OptionID)
			if err != nil {
				return err
			}
			s.SelectTransport(opt)
		}
		return nil
	})
}

type UpdateAccommodationInput struct {
	SessionPath
	Body struct {
		HotelID string `json:"hotel_id,omitempty"`
		Nights  int    `json:"nights,omitempty" doc:"Night count; values below 1 are ignored"`
	}
}

func (h *SessionHandler) HandleUpdateAccommodation(ctx context.Context, input *UpdateAccommodationInput) (*SessionOutput, error) {
	return h.update(ctx, &input.SessionPath, func(s *planner.Store, dest string) error {
		s.SetNights(input.Body.Nights)
		if input.Body.HotelID != "" {
			hotel, err := h.catalog.Hotel(dest, input.Body.HotelID)
			if err != nil {
				return err
			}
			s.SelectHotel(hotel)
		}
		return nil
	})
}

type TogglePlaceInput struct {
	SessionPath
	Body struct {
		PlaceID string `json:"place_id" minLength:"1"`
	}
}

// HandleTogglePlace adds or removes a place. Adding beyond capacity leaves the
// draft unchanged and reports changed=false.
func (h *SessionHandler) HandleTogglePlace(ctx context.Context, input *TogglePlaceInput) (*SessionOutput, error) {
	changed := false
	out, err := h.update(ctx, &input.SessionPath, func(s *planner.Store, dest string) error {
		place, err := h.catalog.Attraction(dest, input.Body.PlaceID)
		if err != nil {
			return err
		}
		changed = s.TogglePlace(place)
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.Body.Changed = &changed
	return out, nil
}

type UpdateAttractionsInput struct {
	SessionPath
	Body struct {
		Days int `json:"days" doc:"Sightseeing days; values below 1 are ignored"`
	}
}

func (h *SessionHandler) HandleUpdateAttractions(ctx context.Context, input *UpdateAttractionsInput) (*SessionOutput, error) {
	return h.update(ctx, &input.SessionPath, func(s *planner.Store, _ string) error {
		s.SetAttractionDays(input.Body.Days)
		return nil
	})
}

type UpdateFoodInput struct {
	SessionPath
	Body struct {
		PlanID string `json:"plan_id" minLength:"1"`
	}
}

func (h *SessionHandler) HandleUpdateFood(ctx context.Context, input *UpdateFoodInput) (*SessionOutput, error) {
	return h.update(ctx, &input.SessionPath, func(s *planner.Store, dest string) error {
		plan, err := h.catalog.FoodPlan(dest, input.Body.PlanID)
		if err != nil {
			return err
		}
		s.SelectFoodPlan(plan)
		return nil
	})
}

type UpdateShoppingInput struct {
	SessionPath
	Body struct {
		TierID string   `json:"tier_id,omitempty" doc:"Shopping tier id"`
		Amount *float64 `json:"amount,omitempty" doc:"Custom budget; negative amounts are ignored"`
	}
}

func (h *SessionHandler) HandleUpdateShopping(ctx context.Context, input *UpdateShoppingInput) (*SessionOutput, error) {
	return h.update(ctx, &input.SessionPath, func(s *planner.Store, dest string) error {
		switch {
		case input.Body.TierID != "":
			tier, err := h.catalog.ShoppingTier(dest, input.Body.TierID)
			if err != nil {
				return err
			}
			s.SetShoppingBudget(decimal.NewFromFloat(tier.Amount))
		case input.Body.Amount != nil:
			s.SetShoppingBudget(decimal.NewFromFloat(*input.Body.Amount))
		default:
			return huma.Error400BadRequest("Either tier_id or amount is required")
		}
		return nil
	})
}

type SummaryOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func (h *SessionHandler) HandleSummary(ctx context.Context, input *SessionPath) (*SummaryOutput, error) {
	_, sess, err := h.load(ctx, input)
	if err != nil {
		return nil, err
	}
	return &SummaryOutput{
		ContentType:        "text/plain; charset=utf-8",
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", planner.SummaryFilename(sess.Draft.Destination)),
		Body:               []byte(planner.Summary(sess.Draft)),
	}, nil
}

type WriteTripInput struct {
	SessionPath
	Body *struct {
		Name string `json:"name,omitempty" maxLength:"120" doc:"Display name for the trip; omitted keeps the current one"`
	} `required:"false"`
}

// WriteTripOutput reports a stored trip. session_updated is false when the trip
// was written but the session could not be stored; keep trip_id and edit the
// trip to continue.
type WriteTripOutput struct {
	Body struct {
		TripID         string            `json:"trip_id"`
		Created        bool              `json:"created"`
		Status         models.TripStatus `json:"status"`
		UpdatedAt      time.Time         `json:"updated_at"`
		SessionUpdated bool              `json:"session_updated"`
		Session        SessionView       `json:"session"`
	}
}

// HandleSave stores the draft as a trip. The first save inserts and the
// session keeps the new id so later saves update the same trip.
func (h *SessionHandler) HandleSave(ctx context.Context, input *WriteTripInput) (*WriteTripOutput, error) {
	return h.write(ctx, input, h.trips.Save)
}

// HandleConfirm stores the draft and marks the trip confirmed.
func (h *SessionHandler) HandleConfirm(ctx context.Context, input *WriteTripInput) (*WriteTripOutput, error) {
	return h.write(ctx, input, h.trips.Confirm)
}

type tripWriter func(ctx context.Context, ownerID uint, draft planner.TripDraft, existingID string, opts ...reconciler.WriteOption) (reconciler.Result, error)

func (h *SessionHandler) write(ctx context.Context, input *WriteTripInput, persist tripWriter) (*WriteTripOutput, error) {
	userID, sess, err := h.load(ctx, &input.SessionPath)
	if err != nil {
		return nil, err
	}

	var opts []reconciler.WriteOption
	if input.Body != nil {
		opts = append(opts, reconciler.Named(input.Body.Name))
	}

	// The session is only touched once the trip write succeeded.
	res, err := persist(ctx, userID, sess.Draft, sess.TripID, opts...)
	if err != nil {
		return nil, apiError(ctx, h.log, err)
	}

	out := &WriteTripOutput{}
	out.Body.TripID = res.ID
	out.Body.Created = res.Created
	out.Body.Status = res.Status
	out.Body.UpdatedAt = res.UpdatedAt

	updated := sess
	updated.TripID = res.ID
	updated.UpdatedAt = time.Now().UTC()
	if err := h.sessions.Put(ctx, updated); err != nil {
		// The trip exists; failing here would lose its id and a retry would insert again.
		h.log.Warn(h.log.WithTripID(ctx, res.ID), "trip written but session not updated", err)
		out.Body.Session = sessionView(sess)
		return out, nil
	}

	out.Body.SessionUpdated = true
	out.Body.Session = sessionView(updated)
	return out, nil
}

func (h *SessionHandler) load(ctx context.Context, input *SessionPath) (uint, session.Session, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return 0, session.Session{}, err
	}
	sess, err := h.sessions.Get(ctx, userID, input.ID)
	if err != nil {
		return 0, session.Session{}, apiError(ctx, h.log, err)
	}
	return userID, sess, nil
}

// update applies fn to the session draft and recomputes the total before the
// session is stored. When fn fails nothing is stored.
func (h *SessionHandler) update(ctx context.Context, input *SessionPath, fn func(s *planner.Store, destination string) error) (*SessionOutput, error) {
	_, sess, err := h.load(ctx, input)
	if err != nil {
		return nil, err
	}

	dest := sess.Draft.Destination
	store := planner.NewStoreFrom(sess.Draft, planner.WithLocalTravelCost(h.catalog.LocalTravelCost(dest)))
	if err := fn(store, dest); err != nil {
		return nil, apiError(ctx, h.log, err)
	}
	store.RecomputeTotal()

	sess.Draft = store.Draft()
	sess.UpdatedAt = time.Now().UTC()
	if err := h.sessions.Put(ctx, sess); err != nil {
		return nil, apiError(ctx, h.log, err)
	}
	return &SessionOutput{Body: sessionView(sess)}, nil
}
