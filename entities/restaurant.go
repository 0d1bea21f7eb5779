package entities

import (
	"github.com/google/uuid"
)

type Restaurant struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"uniqueIndex" json:"name"`
	ImageURL string    `json:"image_url,omitempty"`

	Users   []*User   `gorm:"many2many:restaurant_users" json:"users,omitempty"`
	Recipes []*Recipe `gorm:"many2many:restaurant_recipes" json:"recipes,omitempty"`
	Timestamp
}
