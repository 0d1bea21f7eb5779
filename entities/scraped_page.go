package entities

import (
	"time"

	"github.com/google/uuid"
)

// ScrapedPage records the provenance of an imported recipe. The unique URL
// index is the dedup guard for concurrent imports of the same page.
type ScrapedPage struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	URL         string     `gorm:"uniqueIndex" json:"url"`
	HTMLContent string     `gorm:"type:text" json:"html_content,omitempty"`
	RecipeID    *uuid.UUID `json:"recipe_id,omitempty"`
	CreatedAt   time.Time  `gorm:"type:timestamp" json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}
