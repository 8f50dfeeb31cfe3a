// Package planner holds the in-memory trip draft and the rules that keep its
// category costs and running total consistent.
package planner

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// PlacesPerDay is how many attractions fit into one sightseeing day.
const PlacesPerDay = 3

// DefaultLocalTravelPerDay is the local travel charge for a sightseeing day when
// the destination does not override it.
var DefaultLocalTravelPerDay = decimal.NewFromInt(800)

// Mode is how the group travels to the destination.
type Mode string

const (
	ModeBus    Mode = "bus"
	ModeTrain  Mode = "train"
	ModeFlight Mode = "flight"
	ModeCar    Mode = "car"
)

// Item is a catalog entry picked into a draft. For hotels Price is the price per
// night. Details carries the richer catalog fields through untouched.
type Item struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Details map[string]any  `json:"details,omitempty"`
}

func (i Item) clone() Item {
	i.Details = maps.Clone(i.Details)
	return i
}

// Transport is the chosen travel option and seat count; Cost is price × seats.
type Transport struct {
	Mode   Mode            `json:"mode"`
	Option *Item           `json:"selected_option"`
	Seats  int             `json:"seat_count"`
	Cost   decimal.Decimal `json:"cost"`
}

// Accommodation is the chosen hotel and night count; Cost is price × nights.
type Accommodation struct {
	Hotel  *Item           `json:"selected_hotel"`
	Nights int             `json:"night_count"`
	Cost   decimal.Decimal `json:"cost"`
}

// Attractions is the ordered place selection and sightseeing day count.
type Attractions struct {
	Places []Item          `json:"selected_places"`
	Days   int             `json:"day_count"`
	Cost   decimal.Decimal `json:"cost"`
}

// Capacity is the number of places the current day count allows.
func (a Attractions) Capacity() int {
	return a.Days * PlacesPerDay
}

func (a Attractions) has(id string) bool {
	return slices.ContainsFunc(a.Places, func(p Item) bool { return p.ID == id })
}

// Food is the chosen meal plan by name.
type Food struct {
	Plan string          `json:"plan_name"`
	Cost decimal.Decimal `json:"cost"`
}

// Shopping is the planned shopping budget.
type Shopping struct {
	Budget decimal.Decimal `json:"budget"`
}

// TripDraft is one trip being configured. TotalCost is only written by
// Store.RecomputeTotal and may be stale in between.
type TripDraft struct {
	Destination   string          `json:"destination"`
	Transport     Transport       `json:"transport"`
	Accommodation Accommodation   `json:"accommodation"`
	Attractions   Attractions     `json:"attractions"`
	Food          Food            `json:"food"`
	Shopping      Shopping        `json:"shopping"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// NewTransport starts by bus with one seat and no option.
func NewTransport() Transport {
	return Transport{Mode: ModeBus, Seats: 1}
}

// NewAccommodation starts with one night and no hotel.
func NewAccommodation() Accommodation {
	return Accommodation{Nights: 1}
}

// NewAttractions starts with one day and no places.
func NewAttractions() Attractions {
	return Attractions{Places: []Item{}, Days: 1}
}

// NewDraft returns the draft every planning session starts from.
func NewDraft() TripDraft {
	return TripDraft{
		Transport:     NewTransport(),
		Accommodation: NewAccommodation(),
		Attractions:   NewAttractions(),
	}
}

// Sum adds the five category costs. It does not look at TotalCost.
func (d TripDraft) Sum() decimal.Decimal {
	return d.Transport.Cost.
		Add(d.Accommodation.Cost).
		Add(d.Attractions.Cost).
		Add(d.Food.Cost).
		Add(d.Shopping.Budget)
}

// Clone returns a deep copy sharing no slices, maps or pointers with d.
func (d TripDraft) Clone() TripDraft {
	out := d
	if d.Transport.Option != nil {
		opt := d.Transport.Option.clone()
		out.Transport.Option = &opt
	}
	if d.Accommodation.Hotel != nil {
		hotel := d.Accommodation.Hotel.clone()
		out.Accommodation.Hotel = &hotel
	}
	out.Attractions.Places = make([]Item, 0, len(d.Attractions.Places))
	for _, p := range d.Attractions.Places {
		out.Attractions.Places = append(out.Attractions.Places, p.clone())
	}
	return out
}

// normalize repairs a draft coming from outside the store so the count and
// capacity invariants hold again.
func (d *TripDraft) normalize() {
	if d.Transport.Mode == "" {
		d.Transport.Mode = ModeBus
	}
	if d.Transport.Seats < 1 {
		d.Transport.Seats = 1
	}
	if d.Accommodation.Nights < 1 {
		d.Accommodation.Nights = 1
	}
	if d.Attractions.Days < 1 {
		d.Attractions.Days = 1
	}
	d.Attractions.Places = dedupePlaces(d.Attractions.Places)
	if limit := d.Attractions.Capacity(); len(d.Attractions.Places) > limit {
		d.Attractions.Places = d.Attractions.Places[:limit]
	}
}

func dedupePlaces(places []Item) []Item {
	out := make([]Item, 0, len(places))
	seen := make(map[string]struct{}, len(places))
	for _, p := range places {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
