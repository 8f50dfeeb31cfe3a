package models

import (
	"gorm.io/gorm"
)

type RevisionAction string

const (
	RevisionSave    RevisionAction = "save"
	RevisionConfirm RevisionAction = "confirm"
)

// TripRevision is the snapshot written alongside every save or confirm.
type TripRevision struct {
	gorm.Model
	TripID      string         `json:"trip_id" gorm:"size:36;index"`
	OwnerID     uint           `json:"owner_id" gorm:"index"`
	Action      RevisionAction `json:"action" gorm:"size:16"`
	Status      TripStatus     `json:"status" gorm:"size:16"`
	Destination string         `json:"destination"`
	TripCosts   `gorm:"embedded"`
}

func NewTripRevision(t *Trip, action RevisionAction) TripRevision {
	return TripRevision{
		TripID:      t.ID,
		OwnerID:     t.OwnerID,
		Action:      action,
		Status:      t.Status,
		Destination: t.Destination,
		TripCosts:   t.TripCosts,
	}
}
