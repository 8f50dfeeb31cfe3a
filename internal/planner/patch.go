package planner

import "github.com/shopspring/decimal"

// Opt marks a patch field as present. The zero value leaves the target alone,
// so a patch only touches the fields it names.
type Opt[T any] struct {
	Value T
	Set   bool
}

func Set[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true}
}

func (o Opt[T]) apply(dst *T) {
	if o.Set {
		*dst = o.Value
	}
}

// applyCount writes a count only when it keeps the ">= 1" invariant.
func applyCount(o Opt[int], dst *int) {
	if o.Set && o.Value >= 1 {
		*dst = o.Value
	}
}

// Clearing the selected option is Option: Set[*Item](nil).
type TransportPatch struct {
	Mode   Opt[Mode]
	Option Opt[*Item]
	Seats  Opt[int]
	Cost   Opt[decimal.Decimal]
}

type AccommodationPatch struct {
	Hotel  Opt[*Item]
	Nights Opt[int]
	Cost   Opt[decimal.Decimal]
}

type AttractionsPatch struct {
	Places Opt[[]Item]
	Days   Opt[int]
	Cost   Opt[decimal.Decimal]
}

type FoodPatch struct {
	Plan Opt[string]
	Cost Opt[decimal.Decimal]
}

type ShoppingPatch struct {
	Budget Opt[decimal.Decimal]
}
