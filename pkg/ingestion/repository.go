package ingestion

import (
	"context"
	"errors"
	"strings"

	"recipe-crm/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// IngestionRepository covers the persistence surface of an import run.
	// WithTx returns a copy bound to the given transaction so the whole
	// catalog write of one import commits or rolls back together.
	IngestionRepository interface {
		WithTx(tx *gorm.DB) IngestionRepository
		Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

		ScrapedPageExists(ctx context.Context, url string) (bool, error)
		CreateScrapedPage(ctx context.Context, page *entities.ScrapedPage) error
		UpdateScrapedPage(ctx context.Context, page *entities.ScrapedPage) error
		GetScrapedPages(ctx context.Context) ([]*entities.ScrapedPage, error)

		GetRestaurantByID(ctx context.Context, id string) (*entities.Restaurant, error)
		GetRecipesByName(ctx context.Context, name string) ([]*entities.Recipe, error)
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		AssociateRestaurant(ctx context.Context, recipeID, restaurantID uuid.UUID) error
		GetOrCreateIngredient(ctx context.Context, name string) (*entities.Ingredient, error)
		GetOrCreateRecipeIngredient(ctx context.Context, recipeID, ingredientID uuid.UUID, restaurantID *uuid.UUID) error
		CreateStep(ctx context.Context, step *entities.RecipeStep) error
	}

	ingestionRepository struct {
		db *gorm.DB
	}
)

func NewIngestionRepository(db *gorm.DB) IngestionRepository {
	return &ingestionRepository{db: db}
}

func (r *ingestionRepository) WithTx(tx *gorm.DB) IngestionRepository {
	return &ingestionRepository{db: tx}
}

func (r *ingestionRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *ingestionRepository) ScrapedPageExists(ctx context.Context, url string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ScrapedPage{}).
		Where("url = ?", url).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ingestionRepository) CreateScrapedPage(ctx context.Context, page *entities.ScrapedPage) error {
	return r.db.WithContext(ctx).Create(page).Error
}

func (r *ingestionRepository) UpdateScrapedPage(ctx context.Context, page *entities.ScrapedPage) error {
	return r.db.WithContext(ctx).Save(page).Error
}

func (r *ingestionRepository) GetScrapedPages(ctx context.Context) ([]*entities.ScrapedPage, error) {
	var pages []*entities.ScrapedPage
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *ingestionRepository) GetRestaurantByID(ctx context.Context, id string) (*entities.Restaurant, error) {
	var restaurant entities.Restaurant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *ingestionRepository) GetRecipesByName(ctx context.Context, name string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	err := r.db.WithContext(ctx).
		Preload("RecipeIngredients.Ingredient").
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *ingestionRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *ingestionRepository) AssociateRestaurant(ctx context.Context, recipeID, restaurantID uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).
		Table("restaurant_recipes").
		Where("restaurant_id = ? AND recipe_id = ?", restaurantID, recipeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec("INSERT INTO restaurant_recipes (restaurant_id, recipe_id) VALUES (?, ?)", restaurantID, recipeID).Error
}

func (r *ingestionRepository) GetOrCreateIngredient(ctx context.Context, name string) (*entities.Ingredient, error) {
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

func (r *ingestionRepository) GetOrCreateRecipeIngredient(ctx context.Context, recipeID, ingredientID uuid.UUID, restaurantID *uuid.UUID) error {
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

func (r *ingestionRepository) CreateStep(ctx context.Context, step *entities.RecipeStep) error {
	return r.db.WithContext(ctx).Create(step).Error
}

// IsUniqueViolation reports whether err came from a unique constraint.
// Postgres and sqlite phrase it differently, and gorm only translates it
// when the dialector opts in, so the text check stays as a fallback.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
