package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey lets scripts act as a user without the browser cookie.
type APIKey struct {
	gorm.Model
	UserID     uint       `json:"user_id" gorm:"index;not null"`
	User       User       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Key        string     `json:"-" gorm:"uniqueIndex;size:64"`
	Name       string     `json:"name" gorm:"size:64"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

// Expired reports whether the key is past its expiry at now. Keys without an
// expiry never expire.
func (k APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && now.After(*k.ExpiresAt)
}

// Masked keeps the last four characters so users can tell keys apart.
func (k APIKey) Masked() string {
	if len(k.Key) <= 4 {
		return k.Key
	}
	return "..." + k.Key[len(k.Key)-4:]
}
