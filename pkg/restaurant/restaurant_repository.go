package restaurant

import (
	"context"

	"recipe-crm/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RestaurantRepository interface {
		GetRestaurantByID(ctx context.Context, id string) (*entities.Restaurant, error)
		GetOrCreateRestaurant(ctx context.Context, name string) (*entities.Restaurant, error)
		GetRestaurantsByUser(ctx context.Context, userID string) ([]*entities.Restaurant, error)
		IsMember(ctx context.Context, restaurantID, userID string) (bool, error)
		AddUser(ctx context.Context, restaurantID, userID string) error
		UpdateRestaurant(ctx context.Context, restaurant *entities.Restaurant) error
		GetRestaurantRecipes(ctx context.Context, restaurantID string) ([]*entities.Recipe, error)
		HasRecipe(ctx context.Context, restaurantID, recipeID string) (bool, error)
		AddRecipe(ctx context.Context, restaurantID, recipeID string) error
	}

	restaurantRepository struct {
		db *gorm.DB
	}
)

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) GetRestaurantByID(ctx context.Context, id string) (*entities.Restaurant, error) {
	var restaurant entities.Restaurant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetOrCreateRestaurant(ctx context.Context, name string) (*entities.Restaurant, error) {
	var restaurant entities.Restaurant
	err := r.db.WithContext(ctx).
		Where(entities.Restaurant{Name: name}).
		Attrs(entities.Restaurant{ID: uuid.New()}).
		FirstOrCreate(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetRestaurantsByUser(ctx context.Context, userID string) ([]*entities.Restaurant, error) {
	var restaurants []*entities.Restaurant
	if err := r.db.WithContext(ctx).
		Joins("JOIN restaurant_users ON restaurant_users.restaurant_id = restaurants.id").
		Where("restaurant_users.user_id = ?", userID).
		Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) IsMember(ctx context.Context, restaurantID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("restaurant_users").
		Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *restaurantRepository) AddUser(ctx context.Context, restaurantID, userID string) error {
	member, err := r.IsMember(ctx, restaurantID, userID)
	if err != nil {
		return err
	}
	if member {
		return nil
	}
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO restaurant_users (restaurant_id, user_id) VALUES (?, ?)",
		restaurantID, userID,
	).Error
}

func (r *restaurantRepository) UpdateRestaurant(ctx context.Context, restaurant *entities.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

func (r *restaurantRepository) GetRestaurantRecipes(ctx context.Context, restaurantID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Joins("JOIN restaurant_recipes ON restaurant_recipes.recipe_id = recipes.id").
		Where("restaurant_recipes.restaurant_id = ?", restaurantID).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *restaurantRepository) HasRecipe(ctx context.Context, restaurantID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("restaurant_recipes").
		Where("restaurant_id = ? AND recipe_id = ?", restaurantID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *restaurantRepository) AddRecipe(ctx context.Context, restaurantID, recipeID string) error {
	has, err := r.HasRecipe(ctx, restaurantID, recipeID)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO restaurant_recipes (restaurant_id, recipe_id) VALUES (?, ?)",
		restaurantID, recipeID,
	).Error
}
