package migration

import (
	"fmt"
	"log"

	"recipe-crm/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// One AutoMigrate call so gorm orders the tables and the m2m join
	// tables (restaurant_users, restaurant_recipes) by dependency.
	err := db.AutoMigrate(
		&entities.User{},
		&entities.Restaurant{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeStep{},
		&entities.RecipeIngredient{},
		&entities.ScrapedPage{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
