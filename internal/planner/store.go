package planner

import (
	"github.com/shopspring/decimal"
)

// Store is the single writer of one TripDraft. It is not safe for concurrent
// use; callers serialise access per planning session.
type Store struct {
	draft             TripDraft
	localTravelPerDay decimal.Decimal
}

type StoreOption func(*Store)

// WithLocalTravelCost sets the per-day local travel charge used when pricing
// attractions.
func WithLocalTravelCost(perDay decimal.Decimal) StoreOption {
	return func(s *Store) {
		if !perDay.IsNegative() {
			s.localTravelPerDay = perDay
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	return NewStoreFrom(NewDraft(), opts...)
}

// NewStoreFrom wraps an existing draft, for example one restored from a
// planning session. The draft is copied and normalised.
func NewStoreFrom(d TripDraft, opts ...StoreOption) *Store {
	s := &Store{localTravelPerDay: DefaultLocalTravelPerDay}
	for _, opt := range opts {
		opt(s)
	}
	s.Load(d)
	return s
}

// Draft returns a deep copy of the current draft.
func (s *Store) Draft() TripDraft {
	return s.draft.Clone()
}

func (s *Store) LocalTravelPerDay() decimal.Decimal {
	return s.localTravelPerDay
}

// SetDestination replaces the destination. Empty ids are ignored.
func (s *Store) SetDestination(id string) {
	if id == "" {
		return
	}
	s.draft.Destination = id
}

func (s *Store) SetTransport(p TransportPatch) {
	t := &s.draft.Transport
	p.Mode.apply(&t.Mode)
	if p.Option.Set {
		t.Option = cloneItemPtr(p.Option.Value)
	}
	applyCount(p.Seats, &t.Seats)
	p.Cost.apply(&t.Cost)
}

func (s *Store) SetAccommodation(p AccommodationPatch) {
	a := &s.draft.Accommodation
	if p.Hotel.Set {
		a.Hotel = cloneItemPtr(p.Hotel.Value)
	}
	applyCount(p.Nights, &a.Nights)
	p.Cost.apply(&a.Cost)
}

// SetAttractions merges the patch and then re-applies the capacity rule:
// duplicate ids are dropped and the list is cut to days*PlacesPerDay.
func (s *Store) SetAttractions(p AttractionsPatch) {
	a := &s.draft.Attractions
	if p.Places.Set {
		places := make([]Item, 0, len(p.Places.Value))
		for _, it := range p.Places.Value {
			places = append(places, it.clone())
		}
		a.Places = dedupePlaces(places)
	}
	applyCount(p.Days, &a.Days)
	p.Cost.apply(&a.Cost)
	if limit := a.Capacity(); len(a.Places) > limit {
		a.Places = a.Places[:limit]
	}
}

func (s *Store) SetFood(p FoodPatch) {
	p.Plan.apply(&s.draft.Food.Plan)
	p.Cost.apply(&s.draft.Food.Cost)
}

func (s *Store) SetShopping(p ShoppingPatch) {
	p.Budget.apply(&s.draft.Shopping.Budget)
}

// RecomputeTotal sets TotalCost to the sum of the category costs. Calling it
// twice in a row has no further effect.
func (s *Store) RecomputeTotal() decimal.Decimal {
	s.draft.TotalCost = s.draft.Sum()
	return s.draft.TotalCost
}

// Reset discards everything, destination included.
func (s *Store) Reset() {
	s.draft = NewDraft()
}

// Load replaces the whole draft, typically with one mapped back from a
// persisted trip. TotalCost is taken as given; counts below one are raised to one.
func (s *Store) Load(d TripDraft) {
	s.draft = d.Clone()
	s.draft.normalize()
}

func cloneItemPtr(it *Item) *Item {
	if it == nil {
		return nil
	}
	c := it.clone()
	return &c
}
