package reconciler

import (
	"github.com/gdg-garage/trip-planner/internal/models"
	"github.com/gdg-garage/trip-planner/internal/planner"
)

// applyDraft copies the draft's categories onto a trip row: the flat cost
// columns and the verbatim detail blobs. The stored total is the sum of the
// cost columns, not the draft's possibly stale TotalCost. Status and ownership
// are left alone.
func applyDraft(t *models.Trip, d planner.TripDraft) {
	d = d.Clone()

	t.Destination = d.Destination
	t.TripCosts = models.TripCosts{
		TransportCost:     d.Transport.Cost,
		AccommodationCost: d.Accommodation.Cost,
		AttractionsCost:   d.Attractions.Cost,
		FoodCost:          d.Food.Cost,
		ShoppingCost:      d.Shopping.Budget,
		TotalCost:         d.Sum(),
	}
	t.TransportDetails = &d.Transport
	t.AccommodationDetails = &d.Accommodation
	t.AttractionsDetails = &d.Attractions
	t.FoodDetails = &d.Food
	t.ShoppingDetails = &d.Shopping
}

// draftFromTrip maps a stored trip back into a draft. Missing blocks become the
// fresh category value so the draft is always usable.
func draftFromTrip(t *models.Trip) planner.TripDraft {
	d := planner.NewDraft()
	d.Destination = t.Destination
	d.TotalCost = t.TotalCost

	if t.TransportDetails != nil {
		d.Transport = *t.TransportDetails
	}
	if t.AccommodationDetails != nil {
		d.Accommodation = *t.AccommodationDetails
	}
	if t.AttractionsDetails != nil {
		d.Attractions = *t.AttractionsDetails
	}
	if t.FoodDetails != nil {
		d.Food = *t.FoodDetails
	}
	if t.ShoppingDetails != nil {
		d.Shopping = *t.ShoppingDetails
	}

	// Round-trip through a store to repair counts and capacity.
	return planner.NewStoreFrom(d).Draft()
}
