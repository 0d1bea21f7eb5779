package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url,omitempty"`

	// Timing fields are free-form strings as scraped ("25 mins"), not durations.
	PrepTime       string `json:"prep_time,omitempty"`
	CookTime       string `json:"cook_time,omitempty"`
	AdditionalTime string `json:"additional_time,omitempty"`
	TotalTime      string `json:"total_time,omitempty"`

	Servings *int `json:"servings,omitempty"`

	Steps             []*RecipeStep       `gorm:"foreignKey:RecipeID" json:"steps,omitempty"`
	RecipeIngredients []*RecipeIngredient `gorm:"foreignKey:RecipeID" json:"recipe_ingredients,omitempty"`
	Restaurants       []*Restaurant       `gorm:"many2many:restaurant_recipes" json:"restaurants,omitempty"`
	Timestamp
}

type RecipeStep struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID    uuid.UUID `json:"recipe_id"`
	StepNumber  int       `json:"step_number"`
	Description string    `json:"description" gorm:"type:text"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}

type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID     uuid.UUID  `gorm:"uniqueIndex:idx_recipe_ingredient_restaurant" json:"recipe_id"`
	IngredientID uuid.UUID  `gorm:"uniqueIndex:idx_recipe_ingredient_restaurant" json:"ingredient_id"`
	RestaurantID *uuid.UUID `gorm:"uniqueIndex:idx_recipe_ingredient_restaurant" json:"restaurant_id,omitempty"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID" json:"-"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
}
