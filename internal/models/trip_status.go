package models

import "fmt"

// TripStatus tracks whether a trip is still being planned or has been booked.
type TripStatus string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusConfirmed TripStatus = "confirmed"
)

var validTripStatuses = []TripStatus{
	TripStatusDraft,
	TripStatusConfirmed,
}

// String implements fmt.Stringer.
func (s TripStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TripStatus.
func (s TripStatus) IsValid() bool {
	for _, candidate := range validTripStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTripStatus converts raw input into a TripStatus. "booked" is accepted as
// an alias of confirmed.
func ParseTripStatus(value string) (TripStatus, error) {
	if value == "booked" {
		return TripStatusConfirmed, nil
	}
	for _, candidate := range validTripStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid trip status %q", value)
}
