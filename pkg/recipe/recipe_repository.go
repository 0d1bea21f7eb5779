package recipe

import (
	"context"
	"errors"
	"strings"

	"recipe-crm/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipesByRestaurants(ctx context.Context, restaurantIDs []string) ([]*entities.Recipe, error)
		IsRecipeInRestaurants(ctx context.Context, recipeID string, restaurantIDs []string) (bool, error)
		GetRecipesByName(ctx context.Context, name string) ([]*entities.Recipe, error)
		GetIngredientNames(ctx context.Context, recipeID string) ([]string, error)
		GetOrCreateIngredient(ctx context.Context, name string) (*entities.Ingredient, error)
		GetOrCreateRecipeIngredient(ctx context.Context, recipeID, ingredientID uuid.UUID, restaurantID *uuid.UUID) error
		DeleteRecipeIngredients(ctx context.Context, recipeID string) error
		CreateStep(ctx context.Context, step *entities.RecipeStep) error
		DeleteSteps(ctx context.Context, recipeID string) error
		AssociateRestaurant(ctx context.Context, recipeID, restaurantID string) error
		GetUserRestaurantIDs(ctx context.Context, userID string) ([]string, error)
		GetIngredients(ctx context.Context) ([]*entities.Ingredient, error)
		GetIngredientsByUser(ctx context.Context, userID string) ([]*entities.Ingredient, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_steps.step_number asc")
		}).
		Preload("RecipeIngredients.Ingredient").
		Preload("Restaurants").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipesByRestaurants(ctx context.Context, restaurantIDs []string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Distinct("recipes.*").
		Joins("JOIN restaurant_recipes ON restaurant_recipes.recipe_id = recipes.id").
		Where("restaurant_recipes.restaurant_id IN ?", restaurantIDs).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) IsRecipeInRestaurants(ctx context.Context, recipeID string, restaurantIDs []string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("restaurant_recipes").
		Where("recipe_id = ? AND restaurant_id IN ?", recipeID, restaurantIDs).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetRecipesByName matches case-insensitively on the trimmed name.
func (r *recipeRepository) GetRecipesByName(ctx context.Context, name string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetIngredientNames(ctx context.Context, recipeID string) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Distinct().
		Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
		Where("recipe_ingredients.recipe_id = ?", recipeID).
		Pluck("ingredients.name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *recipeRepository) GetOrCreateIngredient(ctx context.Context, name string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	err := r.db.WithContext(ctx).
		Where(entities.Ingredient{Name: name}).
		Attrs(entities.Ingredient{ID: uuid.New()}).
		FirstOrCreate(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *recipeRepository) GetOrCreateRecipeIngredient(ctx context.Context, recipeID, ingredientID uuid.UUID, restaurantID *uuid.UUID) error {
	query := r.db.WithContext(ctx).
		Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID)
	if restaurantID == nil {
		query = query.Where("restaurant_id IS NULL")
	} else {
		query = query.Where("restaurant_id = ?", *restaurantID)
	}

	var existing entities.RecipeIngredient
	if err := query.First(&existing).Error; err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	ri := entities.RecipeIngredient{
		ID:           uuid.New(),
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		RestaurantID: restaurantID,
	}
	return r.db.WithContext(ctx).Create(&ri).Error
}

func (r *recipeRepository) DeleteRecipeIngredients(ctx context.Context, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&entities.RecipeIngredient{}).Error
}

func (r *recipeRepository) CreateStep(ctx context.Context, step *entities.RecipeStep) error {
	return r.db.WithContext(ctx).Create(step).Error
}

func (r *recipeRepository) DeleteSteps(ctx context.Context, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&entities.RecipeStep{}).Error
}

// AssociateRestaurant is idempotent, re-adding an existing pairing is a no-op.
func (r *recipeRepository) AssociateRestaurant(ctx context.Context, recipeID, restaurantID string) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("restaurant_recipes").
		Where("recipe_id = ? AND restaurant_id = ?", recipeID, restaurantID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO restaurant_recipes (restaurant_id, recipe_id) VALUES (?, ?)",
		restaurantID, recipeID,
	).Error
}

func (r *recipeRepository) GetUserRestaurantIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Table("restaurant_users").
		Where("user_id = ?", userID).
		Pluck("restaurant_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *recipeRepository) GetIngredients(ctx context.Context) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).
		Order("name asc").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *recipeRepository) GetIngredientsByUser(ctx context.Context, userID string) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).
		Distinct("ingredients.*").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
		Joins("JOIN restaurant_recipes ON restaurant_recipes.recipe_id = recipe_ingredients.recipe_id").
		Joins("JOIN restaurant_users ON restaurant_users.restaurant_id = restaurant_recipes.restaurant_id").
		Where("restaurant_users.user_id = ?", userID).
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
