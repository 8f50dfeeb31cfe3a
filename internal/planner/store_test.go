package planner

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(id string) Item {
	return Item{ID: id, Name: "Place " + id}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func placeIDs(d TripDraft) []string {
	ids := make([]string, 0, len(d.Attractions.Places))
	for _, p := range d.Attractions.Places {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestNewStoreDefaults(t *testing.T) {
	d := NewStore().Draft()

	assert.Equal(t, "", d.Destination)
	assert.Equal(t, ModeBus, d.Transport.Mode)
	assert.Nil(t, d.Transport.Option)
	assert.Equal(t, 1, d.Transport.Seats)
	assert.Equal(t, 1, d.Accommodation.Nights)
	assert.Equal(t, 1, d.Attractions.Days)
	assert.NotNil(t, d.Attractions.Places)
	assert.Empty(t, d.Attractions.Places)
	assert.Equal(t, "", d.Food.Plan)
	assert.True(t, d.TotalCost.IsZero())
}

func TestBengaluruScenario(t *testing.T) {
	s := NewStore()
	s.SetDestination("bengaluru")

	s.SetTransport(TransportPatch{Mode: Set(ModeBus), Option: Set(&Item{ID: "bus-volvo", Price: dec(1200)}), Seats: Set(2), Cost: Set(dec(2400))})
	s.SetAccommodation(AccommodationPatch{Hotel: Set(&Item{ID: "lemon-tree", Price: dec(3500)}), Nights: Set(3), Cost: Set(dec(10500))})
	s.SetAttractions(AttractionsPatch{Places: Set([]Item{place("a"), place("b")}), Days: Set(3), Cost: Set(dec(2400))})
	s.SetFood(FoodPatch{Plan: Set("Standard"), Cost: Set(dec(1000))})
	s.SetShopping(ShoppingPatch{Budget: Set(dec(2000))})

	assert.True(t, s.Draft().TotalCost.IsZero(), "total must not change before recompute")

	total := s.RecomputeTotal()
	assert.True(t, total.Equal(dec(18300)), "got %s", total)
	assert.True(t, s.Draft().TotalCost.Equal(dec(18300)))
}

func TestBengaluruScenarioThroughRules(t *testing.T) {
	s := NewStore()
	s.SetDestination("bengaluru")

	s.SetSeats(2)
	s.SelectTransport(Item{ID: "bus-volvo", Name: "Volvo AC Sleeper", Price: dec(1200)})
	s.SetNights(3)
	s.SelectHotel(Item{ID: "lemon-tree", Name: "Lemon Tree Premier", Price: dec(3500)})
	s.SetAttractionDays(3)
	require.True(t, s.TogglePlace(place("a")))
	require.True(t, s.TogglePlace(place("b")))
	s.SelectFoodPlan(Item{ID: "standard", Name: "Standard", Price: dec(1000)})
	s.SetShoppingBudget(dec(2000))

	d := s.Draft()
	assert.True(t, d.Transport.Cost.Equal(dec(2400)))
	assert.True(t, d.Accommodation.Cost.Equal(dec(10500)))
	assert.True(t, d.Attractions.Cost.Equal(dec(2400)))
	assert.True(t, d.Food.Cost.Equal(dec(1000)))
	assert.Equal(t, "Standard", d.Food.Plan)

	assert.True(t, s.RecomputeTotal().Equal(dec(18300)))
}

func TestRecomputeTotalIsIdempotent(t *testing.T) {
	s := NewStore()
	s.SetFood(FoodPatch{Cost: Set(dec(500))})
	s.SetShopping(ShoppingPatch{Budget: Set(dec(3000))})

	first := s.RecomputeTotal()
	second := s.RecomputeTotal()
	assert.True(t, first.Equal(second))
	assert.True(t, second.Equal(dec(3500)))
}

func TestSetTransportMergesOnlyGivenFields(t *testing.T) {
	s := NewStore()
	s.SetTransport(TransportPatch{Mode: Set(ModeTrain), Seats: Set(4), Cost: Set(dec(100))})

	s.SetTransport(TransportPatch{Cost: Set(dec(900))})

	tr := s.Draft().Transport
	assert.Equal(t, ModeTrain, tr.Mode)
	assert.Equal(t, 4, tr.Seats)
	assert.True(t, tr.Cost.Equal(dec(900)))
}

func TestSetTransportClearsOption(t *testing.T) {
	s := NewStore()
	s.SetTransport(TransportPatch{Option: Set(&Item{ID: "x"})})
	require.NotNil(t, s.Draft().Transport.Option)

	s.SetTransport(TransportPatch{Option: Set[*Item](nil)})
	assert.Nil(t, s.Draft().Transport.Option)
}

func TestCountsBelowOneAreIgnored(t *testing.T) {
	s := NewStore()
	s.SetSeats(3)
	s.SetNights(2)
	s.SetAttractionDays(2)

	s.SetSeats(0)
	s.SetNights(-1)
	s.SetAttractionDays(0)
	s.SetTransport(TransportPatch{Seats: Set(0)})
	s.SetAccommodation(AccommodationPatch{Nights: Set(0)})
	s.SetAttractions(AttractionsPatch{Days: Set(-2)})

	d := s.Draft()
	assert.Equal(t, 3, d.Transport.Seats)
	assert.Equal(t, 2, d.Accommodation.Nights)
	assert.Equal(t, 2, d.Attractions.Days)
}

func TestChangeTransportModeClearsOption(t *testing.T) {
	s := NewStore()
	s.SetSeats(2)
	s.SelectTransport(Item{ID: "bus-volvo", Price: dec(1200)})

	s.ChangeTransportMode(ModeFlight)

	tr := s.Draft().Transport
	assert.Equal(t, ModeFlight, tr.Mode)
	assert.Nil(t, tr.Option)
	assert.True(t, tr.Cost.IsZero())
	assert.Equal(t, 2, tr.Seats)
}

func TestSetSeatsRepricesSelectedOption(t *testing.T) {
	s := NewStore()
	s.SelectTransport(Item{ID: "rajdhani", Price: dec(2500)})
	assert.True(t, s.Draft().Transport.Cost.Equal(dec(2500)))

	s.SetSeats(3)
	assert.True(t, s.Draft().Transport.Cost.Equal(dec(7500)))
}

func TestSetNightsRepricesSelectedHotel(t *testing.T) {
	s := NewStore()
	s.SetNights(2)
	assert.True(t, s.Draft().Accommodation.Cost.IsZero(), "no hotel, no cost")

	s.SelectHotel(Item{ID: "treebo", Price: dec(2200)})
	assert.True(t, s.Draft().Accommodation.Cost.Equal(dec(4400)))

	s.SetNights(5)
	assert.True(t, s.Draft().Accommodation.Cost.Equal(dec(11000)))
}

func TestTogglePlaceCapacity(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		require.True(t, s.TogglePlace(place(id)))
	}

	assert.False(t, s.TogglePlace(place("d")), "fourth place on a one-day trip")
	assert.Equal(t, []string{"a", "b", "c"}, placeIDs(s.Draft()))

	require.True(t, s.TogglePlace(place("b")))
	assert.Equal(t, []string{"a", "c"}, placeIDs(s.Draft()))

	require.True(t, s.TogglePlace(place("d")))
	assert.Equal(t, []string{"a", "c", "d"}, placeIDs(s.Draft()))
}

func TestTogglePlaceTwiceRestoresSelection(t *testing.T) {
	s := NewStore()
	s.SetAttractionDays(2)
	s.TogglePlace(place("a"))
	before := placeIDs(s.Draft())

	s.TogglePlace(place("z"))
	s.TogglePlace(place("z"))

	assert.Equal(t, before, placeIDs(s.Draft()))
	assert.True(t, s.Draft().Attractions.Cost.Equal(dec(1600)))

	t.Run("FromFreshDraft", func(t *testing.T) {
		s := NewStore()
		require.True(t, s.TogglePlace(place("a")))
		assert.True(t, s.Draft().Attractions.Cost.Equal(dec(800)))

		require.True(t, s.TogglePlace(place("a")))
		assert.Empty(t, placeIDs(s.Draft()))
		assert.True(t, s.Draft().Attractions.Cost.IsZero(), "cost %s", s.Draft().Attractions.Cost)
	})
}

func TestAttractionDaysWithoutPlacesCostNothing(t *testing.T) {
	s := NewStore()
	s.SetAttractionDays(3)
	assert.True(t, s.Draft().Attractions.Cost.IsZero())

	require.True(t, s.TogglePlace(place("a")))
	assert.True(t, s.Draft().Attractions.Cost.Equal(dec(2400)))
}

func TestTogglePlaceSetsLocalTravelCost(t *testing.T) {
	s := NewStore(WithLocalTravelCost(dec(1000)))
	s.SetAttractionDays(2)
	s.TogglePlace(place("backwaters"))

	assert.True(t, s.Draft().Attractions.Cost.Equal(dec(2000)))
}

func TestShrinkingDaysTruncatesPrefix(t *testing.T) {
	s := NewStore()
	s.SetAttractionDays(2)
	for _, id := range []string{"a", "b", "c", "d"} {
		require.True(t, s.TogglePlace(place(id)))
	}

	s.SetAttractionDays(1)
	assert.Equal(t, []string{"a", "b", "c"}, placeIDs(s.Draft()))

	s.SetAttractionDays(3)
	assert.Equal(t, []string{"a", "b", "c"}, placeIDs(s.Draft()), "growing never re-adds")
	assert.True(t, s.Draft().Attractions.Cost.Equal(dec(2400)))
}

func TestSetAttractionsEnforcesCapacity(t *testing.T) {
	s := NewStore()
	s.SetAttractions(AttractionsPatch{Places: Set([]Item{place("a"), place("a"), place("b"), place("c"), place("d")})})

	assert.Equal(t, []string{"a", "b", "c"}, placeIDs(s.Draft()))
}

func TestCapacityInvariantHoldsUnderRandomOps(t *testing.T) {
	s := NewStore()
	for i := 0; i < 60; i++ {
		switch i % 7 {
		case 0:
			s.SetAttractionDays(1 + i%4)
		default:
			s.TogglePlace(place(fmt.Sprintf("p%d", i%11)))
		}
		a := s.Draft().Attractions
		require.LessOrEqual(t, len(a.Places), a.Days*PlacesPerDay)
	}
}

func TestSetShoppingBudgetIgnoresNegative(t *testing.T) {
	s := NewStore()
	s.SetShoppingBudget(dec(1000))
	s.SetShoppingBudget(dec(-5))
	assert.True(t, s.Draft().Shopping.Budget.Equal(dec(1000)))
}

func TestSetDestinationIgnoresEmpty(t *testing.T) {
	s := NewStore()
	s.SetDestination("chennai")
	s.SetDestination("")
	assert.Equal(t, "chennai", s.Draft().Destination)
}

func TestResetRestoresFreshDraft(t *testing.T) {
	s := NewStore()
	s.SetDestination("mumbai")
	s.SelectHotel(Item{ID: "h", Price: dec(5000)})
	s.RecomputeTotal()

	s.Reset()
	assert.Equal(t, NewStore().Draft(), s.Draft())
}

func TestLoadNormalizesCountsAndKeepsTotal(t *testing.T) {
	in := TripDraft{
		Destination: "hyderabad",
		Attractions: Attractions{Places: []Item{place("a"), place("b"), place("c"), place("d")}},
		TotalCost:   dec(42),
	}

	s := NewStoreFrom(in)
	d := s.Draft()
	assert.Equal(t, ModeBus, d.Transport.Mode)
	assert.Equal(t, 1, d.Transport.Seats)
	assert.Equal(t, 1, d.Accommodation.Nights)
	assert.Equal(t, 1, d.Attractions.Days)
	assert.Equal(t, []string{"a", "b", "c"}, placeIDs(d))
	assert.True(t, d.TotalCost.Equal(dec(42)))
}

func TestDraftIsACopy(t *testing.T) {
	s := NewStore()
	s.SelectHotel(Item{ID: "h", Name: "Original", Price: dec(1)})
	s.TogglePlace(place("a"))

	d := s.Draft()
	d.Accommodation.Hotel.Name = "Changed"
	d.Attractions.Places[0].ID = "zzz"

	again := s.Draft()
	assert.Equal(t, "Original", again.Accommodation.Hotel.Name)
	assert.Equal(t, "a", again.Attractions.Places[0].ID)
}
