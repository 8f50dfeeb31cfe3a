package models

import (
	"time"

	"github.com/gdg-garage/trip-planner/internal/planner"
	"github.com/shopspring/decimal"
)

// TripCosts are the flat per-category costs mirrored out of the detail blobs.
type TripCosts struct {
	TransportCost     decimal.Decimal `json:"transport_cost" gorm:"type:numeric(12,2);not null"`
	AccommodationCost decimal.Decimal `json:"accommodation_cost" gorm:"type:numeric(12,2);not null"`
	AttractionsCost   decimal.Decimal `json:"attractions_cost" gorm:"type:numeric(12,2);not null"`
	FoodCost          decimal.Decimal `json:"food_cost" gorm:"type:numeric(12,2);not null"`
	ShoppingCost      decimal.Decimal `json:"shopping_cost" gorm:"type:numeric(12,2);not null"`
	TotalCost         decimal.Decimal `json:"total_cost" gorm:"type:numeric(12,2);not null"`
}

type Trip struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	OwnerID     uint       `json:"owner_id" gorm:"index;not null"`
	Name        string     `json:"name" gorm:"size:120"`
	Destination string     `json:"destination" gorm:"index"`
	Status      TripStatus `json:"status" gorm:"size:16;index;not null"`
	TripCosts   `gorm:"embedded"`

	TransportDetails     *planner.Transport     `json:"transport_details" gorm:"type:text;serializer:json"`
	AccommodationDetails *planner.Accommodation `json:"accommodation_details" gorm:"type:text;serializer:json"`
	AttractionsDetails   *planner.Attractions   `json:"attractions_details" gorm:"type:text;serializer:json"`
	FoodDetails          *planner.Food          `json:"food_details" gorm:"type:text;serializer:json"`
	ShoppingDetails      *planner.Shopping      `json:"shopping_details" gorm:"type:text;serializer:json"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
