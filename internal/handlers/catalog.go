package handlers

import (
	"context"

	"github.com/gdg-garage/trip-planner/internal/catalog"
	"github.com/gdg-garage/trip-planner/internal/logger"
	"github.com/gdg-garage/trip-planner/internal/planner"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
	log     *logger.Logger
}

func NewCatalogHandler(c *catalog.Catalog, log *logger.Logger) *CatalogHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogHandler{catalog: c, log: log}
}

type DestinationSummary struct {
	Slug              string  `json:"slug"`
	Name              string  `json:"name"`
	Seasonal          bool    `json:"seasonal"`
	LocalTravelPerDay float64 `json:"local_travel_per_day"`
}

type ListDestinationsOutput struct {
	Body []DestinationSummary
}

func (h *CatalogHandler) HandleListDestinations(ctx context.Context, _ *struct{}) (*ListDestinationsOutput, error) {
	out := &ListDestinationsOutput{Body: make([]DestinationSummary, 0, len(h.catalog.Destinations))}
	for _, d := range h.catalog.Destinations {
		out.Body = append(out.Body, DestinationSummary{
			Slug:              d.Slug,
			Name:              d.Name,
			Seasonal:          d.Seasonal,
			LocalTravelPerDay: money(h.catalog.LocalTravelCost(d.Slug)),
		})
	}
	return out, nil
}

type GetDestinationInput struct {
	Slug string `path:"slug" doc:"Destination slug, e.g. bengaluru"`
}

type DestinationDetail struct {
	DestinationSummary
	PlacesPerDay  int                        `json:"places_per_day"`
	Modes         []planner.Mode             `json:"modes"`
	Transport     map[string][]catalog.Entry `json:"transport"`
	Hotels        []catalog.Entry            `json:"hotels"`
	Attractions   []catalog.Entry            `json:"attractions"`
	FoodPlans     []catalog.Entry            `json:"food_plans"`
	ShoppingTiers []catalog.ShoppingTier     `json:"shopping_tiers"`
}

type GetDestinationOutput struct {
	Body DestinationDetail
}

func (h *CatalogHandler) HandleGetDestination(ctx context.Context, input *GetDestinationInput) (*GetDestinationOutput, error) {
	d, err := h.catalog.Destination(input.Slug)
	if err != nil {
		return nil, apiError(ctx, h.log, err)
	}
	flow, err := h.catalog.Flow(input.Slug)
	if err != nil {
		return nil, apiError(ctx, h.log, err)
	}
	modes, err := h.catalog.Modes(input.Slug)
	if err != nil {
		return nil, apiError(ctx, h.log, err)
	}

	return &GetDestinationOutput{Body: DestinationDetail{
		DestinationSummary: DestinationSummary{
			Slug:              d.Slug,
			Name:              d.Name,
			Seasonal:          d.Seasonal,
			LocalTravelPerDay: flow.LocalTravelPerDay,
		},
		PlacesPerDay:  planner.PlacesPerDay,
		Modes:         modes,
		Transport:     flow.Transport,
		Hotels:        d.Hotels,
		Attractions:   d.Attractions,
		FoodPlans:     flow.FoodPlans,
		ShoppingTiers: flow.ShoppingTiers,
	}}, nil
}
