package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"uniqueIndex" json:"username"`
	Password string    `json:"-"`
	Email    string    `json:"email,omitempty"`
	Role     string    `json:"role"` // "admin" or "user"

	Restaurants []*Restaurant `gorm:"many2many:restaurant_users" json:"restaurants,omitempty"`
	Timestamp
}
