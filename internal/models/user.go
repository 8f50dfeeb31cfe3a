package models

import (
	"gorm.io/gorm"
)

// User is a Discord account that has signed in. Trips and API keys reference
// it by ID.
type User struct {
	gorm.Model
	DiscordID string `json:"discord_id" gorm:"uniqueIndex"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

// AllModels is the schema AutoMigrate keeps in sync.
func AllModels() []any {
	return []any{&User{}, &APIKey{}, &Trip{}, &TripRevision{}}
}
