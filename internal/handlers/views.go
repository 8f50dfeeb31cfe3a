package handlers

import (
	"time"

	"github.com/gdg-garage/trip-planner/internal/models"
	"github.com/gdg-garage/trip-planner/internal/planner"
	"github.com/gdg-garage/trip-planner/internal/session"
	"github.com/shopspring/decimal"
)

// Money leaves the API as plain numbers; decimals stay internal.
func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

type ItemView struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Price   float64        `json:"price"`
	Details map[string]any `json:"details,omitempty"`
}

func itemView(it planner.Item) ItemView {
	return ItemView{ID: it.ID, Name: it.Name, Price: money(it.Price), Details: it.Details}
}

func itemViewPtr(it *planner.Item) *ItemView {
	if it == nil {
		return nil
	}
	v := itemView(*it)
	return &v
}

type TransportView struct {
	Mode   planner.Mode `json:"mode"`
	Option *ItemView    `json:"selected_option"`
	Seats  int          `json:"seat_count"`
	Cost   float64      `json:"cost"`
}

type AccommodationView struct {
	Hotel  *ItemView `json:"selected_hotel"`
	Nights int       `json:"night_count"`
	Cost   float64   `json:"cost"`
}

type AttractionsView struct {
	Places   []ItemView `json:"selected_places"`
	Days     int        `json:"day_count"`
	Capacity int        `json:"capacity"`
	Cost     float64    `json:"cost"`
}

type FoodView struct {
	Plan string  `json:"plan_name"`
	Cost float64 `json:"cost"`
}

type ShoppingView struct {
	Budget float64 `json:"budget"`
}

type DraftView struct {
	Destination   string            `json:"destination"`
	Transport     TransportView     `json:"transport"`
	Accommodation AccommodationView `json:"accommodation"`
	Attractions   AttractionsView   `json:"attractions"`
	Food          FoodView          `json:"food"`
	Shopping      ShoppingView      `json:"shopping"`
	TotalCost     float64           `json:"total_cost"`
}

func draftView(d planner.TripDraft) DraftView {
	places := make([]ItemView, 0, len(d.Attractions.Places))
	for _, p := range d.Attractions.Places {
		places = append(places, itemView(p))
	}
	return DraftView{
		Destination: d.Destination,
		Transport: TransportView{
			Mode:   d.Transport.Mode,
			Option: itemViewPtr(d.Transport.Option),
			Seats:  d.Transport.Seats,
			Cost:   money(d.Transport.Cost),
		},
		Accommodation: AccommodationView{
			Hotel:  itemViewPtr(d.Accommodation.Hotel),
			Nights: d.Accommodation.Nights,
			Cost:   money(d.Accommodation.Cost),
		},
		Attractions: AttractionsView{
			Places:   places,
			Days:     d.Attractions.Days,
			Capacity: d.Attractions.Capacity(),
			Cost:     money(d.Attractions.Cost),
		},
		Food:      FoodView{Plan: d.Food.Plan, Cost: money(d.Food.Cost)},
		Shopping:  ShoppingView{Budget: money(d.Shopping.Budget)},
		TotalCost: money(d.TotalCost),
	}
}

type SessionView struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id,omitempty"`
	Draft     DraftView `json:"draft"`
	UpdatedAt time.Time `json:"updated_at"`
	// Changed is only reported by operations that may be no-ops.
	Changed *bool `json:"changed,omitempty"`
}

func sessionView(s session.Session) SessionView {
	return SessionView{
		ID:        s.ID,
		TripID:    s.TripID,
		Draft:     draftView(s.Draft),
		UpdatedAt: s.UpdatedAt,
	}
}

type CostsView struct {
	TransportCost     float64 `json:"transport_cost"`
	AccommodationCost float64 `json:"accommodation_cost"`
	AttractionsCost   float64 `json:"attractions_cost"`
	FoodCost          float64 `json:"food_cost"`
	ShoppingCost      float64 `json:"shopping_cost"`
	TotalCost         float64 `json:"total_cost"`
}

func costsView(c models.TripCosts) CostsView {
	return CostsView{
		TransportCost:     money(c.TransportCost),
		AccommodationCost: money(c.AccommodationCost),
		AttractionsCost:   money(c.AttractionsCost),
		FoodCost:          money(c.FoodCost),
		ShoppingCost:      money(c.ShoppingCost),
		TotalCost:         money(c.TotalCost),
	}
}

type TripSummaryView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name,omitempty"`
	Destination string            `json:"destination"`
	Status      models.TripStatus `json:"status"`
	CostsView
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func tripSummaryView(t models.Trip) TripSummaryView {
	return TripSummaryView{
		ID:          t.ID,
		Name:        t.Name,
		Destination: t.Destination,
		Status:      t.Status,
		CostsView:   costsView(t.TripCosts),
		ConfirmedAt: t.ConfirmedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type TripView struct {
	TripSummaryView
	Draft DraftView `json:"draft"`
}
