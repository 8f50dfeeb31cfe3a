package planner

import (
	"slices"

	"github.com/shopspring/decimal"
)

// The operations below are what the planning steps do: each one derives the
// category cost from the selection and merges it through the Set* methods.
// None of them recompute the total.

// ChangeTransportMode switches mode. Options are per mode, so the current
// option and its cost are cleared; the seat count is kept.
func (s *Store) ChangeTransportMode(mode Mode) {
	if mode == "" {
		return
	}
	s.SetTransport(TransportPatch{
		Mode:   Set(mode),
		Option: Set[*Item](nil),
		Cost:   Set(decimal.Zero),
	})
}

func (s *Store) SelectTransport(option Item) {
	seats := s.draft.Transport.Seats
	s.SetTransport(TransportPatch{
		Option: Set(&option),
		Cost:   Set(option.Price.Mul(decimal.NewFromInt(int64(seats)))),
	})
}

// SetSeats ignores counts below one.
func (s *Store) SetSeats(n int) {
	if n < 1 {
		return
	}
	p := TransportPatch{Seats: Set(n)}
	if opt := s.draft.Transport.Option; opt != nil {
		p.Cost = Set(opt.Price.Mul(decimal.NewFromInt(int64(n))))
	}
	s.SetTransport(p)
}

func (s *Store) SelectHotel(hotel Item) {
	nights := s.draft.Accommodation.Nights
	s.SetAccommodation(AccommodationPatch{
		Hotel: Set(&hotel),
		Cost:  Set(hotel.Price.Mul(decimal.NewFromInt(int64(nights)))),
	})
}

// SetNights ignores counts below one.
func (s *Store) SetNights(n int) {
	if n < 1 {
		return
	}
	p := AccommodationPatch{Nights: Set(n)}
	if hotel := s.draft.Accommodation.Hotel; hotel != nil {
		p.Cost = Set(hotel.Price.Mul(decimal.NewFromInt(int64(n))))
	}
	s.SetAccommodation(p)
}

// TogglePlace removes the place when it is already selected and appends it
// otherwise. Appending at capacity does nothing. It reports whether the
// selection changed.
func (s *Store) TogglePlace(place Item) bool {
	a := s.draft.Attractions
	var places []Item
	switch {
	case a.has(place.ID):
		places = slices.DeleteFunc(slices.Clone(a.Places), func(p Item) bool { return p.ID == place.ID })
	case len(a.Places) >= a.Capacity():
		return false
	default:
		places = append(slices.Clone(a.Places), place)
	}
	s.SetAttractions(AttractionsPatch{
		Places: Set(places),
		Cost:   Set(s.attractionsCost(a.Days, len(places))),
	})
	return true
}

// SetAttractionDays changes the day count. Shrinking keeps the first places that
// still fit; growing never brings dropped places back.
func (s *Store) SetAttractionDays(n int) {
	if n < 1 {
		return
	}
	s.SetAttractions(AttractionsPatch{
		Days: Set(n),
		Cost: Set(s.attractionsCost(n, len(s.draft.Attractions.Places))),
	})
}

// attractionsCost charges local travel per day once at least one place is
// selected.
func (s *Store) attractionsCost(days, places int) decimal.Decimal {
	if places == 0 {
		return decimal.Zero
	}
	return s.localTravelPerDay.Mul(decimal.NewFromInt(int64(days)))
}

func (s *Store) SelectFoodPlan(plan Item) {
	s.SetFood(FoodPatch{
		Plan: Set(plan.Name),
		Cost: Set(plan.Price),
	})
}

// SetShoppingBudget ignores negative amounts.
func (s *Store) SetShoppingBudget(amount decimal.Decimal) {
	if amount.IsNegative() {
		return
	}
	s.SetShopping(ShoppingPatch{Budget: Set(amount)})
}
