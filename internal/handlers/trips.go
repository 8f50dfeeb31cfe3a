package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/trip-planner/internal/auth"
	"github.com/gdg-garage/trip-planner/internal/logger"
	"github.com/gdg-garage/trip-planner/internal/models"
	"github.com/gdg-garage/trip-planner/internal/reconciler"
)

type TripHandler struct {
	trips       *reconciler.Reconciler
	authHandler *auth.AuthHandler
	log         *logger.Logger
}

func NewTripHandler(trips *reconciler.Reconciler, authHandler *auth.AuthHandler, log *logger.Logger) *TripHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &TripHandler{trips: trips, authHandler: authHandler, log: log}
}

type ListTripsInput struct {
	auth.AuthInput
	Status      string `query:"status" enum:"draft,confirmed,booked" doc:"Only trips with this status; booked is an alias of confirmed"`
	Destination string `query:"destination" doc:"Exact destination slug"`
	Q           string `query:"q" doc:"Case-insensitive destination search"`
	Sort        string `query:"sort" enum:"updated_at,created_at,total_cost,destination" default:"updated_at"`
	Limit       int    `query:"limit" minimum:"0" maximum:"200" default:"50"`
}

type ListTripsOutput struct {
	Body []TripSummaryView
}

func (h *TripHandler) HandleList(ctx context.Context, input *ListTripsInput) (*ListTripsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	filter := reconciler.ListFilter{
		Destination: input.Destination,
		Search:      input.Q,
		Sort:        reconciler.SortField(input.Sort),
		Limit:       input.Limit,
	}
	if input.Status != "" {
		status, err := models.ParseTripStatus(input.Status)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		filter.Status = status
	}

	trips, err := h.trips.List(ctx, userID, filter)
	if err != nil {
		return nil, apiError(ctx, h.log, err)
	}

	out := &ListTripsOutput{Body: make([]TripSummaryView, 0, len(trips))}
	for _, t := range trips {
		out.Body = append(out.Body, tripSummaryView(t))
	}
	return out, nil
}

type TripPath struct {
	auth.AuthInput
	ID string `path:"id" doc:"Trip id"`
}

type GetTripOutput struct {
	Body TripView
}

func (h *TripHandler) HandleGet(ctx context.Context, input *TripPath) (*GetTripOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}
	loaded, err := h.trips.Load(ctx, userID, input.ID)
	if err != nil {
		return nil, apiError(ctx, h.log, err)
	}
	return &GetTripOutput{Body: TripView{
		TripSummaryView: tripSummaryView(loaded.Trip),
		Draft:           draftView(loaded.Draft),
	}}, nil
}

func (h *TripHandler) HandleDelete(ctx context.Context, input *TripPath) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}
	if err := h.trips.Delete(ctx, userID, input.ID); err != nil {
		return nil, apiError(ctx, h.log, err)
	}
	return nil, nil
}

type HistoryRequest struct {
	TripPath
	Diff bool `query:"diff" default:"true" doc:"Only return fields that changed since the previous revision"`
}

// RevisionFields holds the tracked values of a revision. With diff enabled a
// nil field means "unchanged since the previous revision".
type RevisionFields struct {
	Status            *models.TripStatus `json:"status,omitempty"`
	Destination       *string            `json:"destination,omitempty"`
	TransportCost     *float64           `json:"transport_cost,omitempty"`
	AccommodationCost *float64           `json:"accommodation_cost,omitempty"`
	AttractionsCost   *float64           `json:"attractions_cost,omitempty"`
	FoodCost          *float64           `json:"food_cost,omitempty"`
	ShoppingCost      *float64           `json:"shopping_cost,omitempty"`
	TotalCost         *float64           `json:"total_cost,omitempty"`
}

type RevisionView struct {
	ID             uint                  `json:"id"`
	Action         models.RevisionAction `json:"action"`
	CreatedAt      time.Time             `json:"created_at"`
	RevisionFields RevisionFields        `json:"fields"`
}

type HistoryResponse struct {
	Body struct {
		History []RevisionView `json:"history"`
	}
}

func (h *TripHandler) HandleHistory(ctx context.Context, input *HistoryRequest) (*HistoryResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}
	revs, err := h.trips.History(ctx, userID, input.ID)
	if err != nil {
		return nil, apiError(ctx, h.log, err)
	}

	res := &HistoryResponse{}
	res.Body.History = make([]RevisionView, 0, len(revs))
	for i, rev := range revs {
		// Revisions are newest first, so the previous one is at i+1.
		var prev *models.TripRevision
		if input.Diff && i+1 < len(revs) {
			prev = &revs[i+1]
		}
		res.Body.History = append(res.Body.History, RevisionView{
			ID:             rev.ID,
			Action:         rev.Action,
			CreatedAt:      rev.CreatedAt,
			RevisionFields: revisionFields(rev, prev),
		})
	}
	return res, nil
}

func revisionFields(cur models.TripRevision, prev *models.TripRevision) RevisionFields {
	var f RevisionFields
	if prev == nil || cur.Status != prev.Status {
		f.Status = &cur.Status
	}
	if prev == nil || cur.Destination != prev.Destination {
		f.Destination = &cur.Destination
	}

	costs := []struct {
		dst **float64
		get func(models.TripCosts) float64
	}{
		{&f.TransportCost, func(c models.TripCosts) float64 { return money(c.TransportCost) }},
		{&f.AccommodationCost, func(c models.TripCosts) float64 { return money(c.AccommodationCost) }},
		{&f.AttractionsCost, func(c models.TripCosts) float64 { return money(c.AttractionsCost) }},
		{&f.FoodCost, func(c models.TripCosts) float64 { return money(c.FoodCost) }},
		{&f.ShoppingCost, func(c models.TripCosts) float64 { return money(c.ShoppingCost) }},
		{&f.TotalCost, func(c models.TripCosts) float64 { return money(c.TotalCost) }},
	}
	for _, c := range costs {
		v := c.get(cur.TripCosts)
		if prev == nil || v != c.get(prev.TripCosts) {
			*c.dst = &v
		}
	}
	return f
}
