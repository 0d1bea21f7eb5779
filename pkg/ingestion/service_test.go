package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"recipe-crm/domain"
	"recipe-crm/entities"
	"recipe-crm/pkg/jobs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubFetcher struct {
	body []byte
	err  error
}

func (f stubFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	return f.body, f.err
}

type stubExtractor struct {
	recipe domain.ExtractedRecipe
}

func (e stubExtractor) Extract(_ []byte) domain.ExtractedRecipe {
	return e.recipe
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Restaurant{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeStep{},
		&entities.RecipeIngredient{},
		&entities.ScrapedPage{},
	))
	return db
}

func newTestRestaurant(t *testing.T, db *gorm.DB, name string) *entities.Restaurant {
	t.Helper()
	restaurant := &entities.Restaurant{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(restaurant).Error)
	return restaurant
}

func pancakeExtraction() domain.ExtractedRecipe {
	return domain.ExtractedRecipe{
		Title:    "Fluffy Pancakes",
		ImageURL: "https://img.example.com/pancakes.jpg",
		Details: map[string]string{
			"prep_time":  "10 mins",
			"cook_time":  "15 mins",
			"total_time": "25 mins",
			"servings":   "4",
		},
		Ingredients: []string{"flour", "milk", "eggs"},
		Steps: []domain.ExtractedStep{
			{StepNumber: 1, Instruction: "Whisk the batter."},
			{StepNumber: 2, Instruction: "Fry until golden."},
		},
	}
}

func newTestService(db *gorm.DB, extracted domain.ExtractedRecipe) IngestionService {
	return NewIngestionService(
		NewIngestionRepository(db),
		stubFetcher{body: []byte("<html></html>")},
		stubExtractor{recipe: extracted},
	)
}

func TestImportCreatesRecipe(t *testing.T) {
	db := newTestDB(t)
	restaurant := newTestRestaurant(t, db, "Diner")
	service := newTestService(db, pancakeExtraction())

	result, err := service.Import(context.Background(), "https://example.com/pancakes", restaurant.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Recipe successfully imported.", result.Message)
	require.NotEmpty(t, result.RecipeID)

	var recipe entities.Recipe
	require.NoError(t, db.
		Preload("Steps").
		Preload("RecipeIngredients.Ingredient").
		Preload("Restaurants").
		Where("id = ?", result.RecipeID).
		First(&recipe).Error)

	assert.Equal(t, "Fluffy Pancakes", recipe.Name)
	assert.Equal(t, "Imported recipe", recipe.Description)
	assert.Equal(t, "10 mins", recipe.PrepTime)
	assert.Equal(t, "15 mins", recipe.CookTime)
	assert.Equal(t, "25 mins", recipe.TotalTime)
	require.NotNil(t, recipe.Servings)
	assert.Equal(t, 4, *recipe.Servings)

	require.Len(t, recipe.Steps, 2)
	require.Len(t, recipe.RecipeIngredients, 3)
	for _, ri := range recipe.RecipeIngredients {
		require.NotNil(t, ri.RestaurantID)
		assert.Equal(t, restaurant.ID, *ri.RestaurantID)
	}
	require.Len(t, recipe.Restaurants, 1)
	assert.Equal(t, restaurant.ID, recipe.Restaurants[0].ID)

	var page entities.ScrapedPage
	require.NoError(t, db.Where("url = ?", "https://example.com/pancakes").First(&page).Error)
	require.NotNil(t, page.RecipeID)
	assert.Equal(t, recipe.ID, *page.RecipeID)
}

func TestImportDuplicateURL(t *testing.T) {
	db := newTestDB(t)
	restaurant := newTestRestaurant(t, db, "Diner")
	service := newTestService(db, pancakeExtraction())

	url := "https://example.com/pancakes"
	_, err := service.Import(context.Background(), url, restaurant.ID.String())
	require.NoError(t, err)

	result, err := service.Import(context.Background(), url, restaurant.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "This URL has already been imported.", result.Message)
	assert.Empty(t, result.RecipeID)

	var pages, recipes int64
	require.NoError(t, db.Model(&entities.ScrapedPage{}).Count(&pages).Error)
	require.NoError(t, db.Model(&entities.Recipe{}).Count(&recipes).Error)
	assert.EqualValues(t, 1, pages)
	assert.EqualValues(t, 1, recipes)
}

func TestImportReusesEqualRecipe(t *testing.T) {
	db := newTestDB(t)
	first := newTestRestaurant(t, db, "Diner")
	second := newTestRestaurant(t, db, "Bistro")
	service := newTestService(db, pancakeExtraction())

	created, err := service.Import(context.Background(), "https://example.com/a", first.ID.String())
	require.NoError(t, err)

	reused, err := service.Import(context.Background(), "https://mirror.example.com/b", second.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Existing recipe reused.", reused.Message)
	assert.Equal(t, created.RecipeID, reused.RecipeID)

	var recipes int64
	require.NoError(t, db.Model(&entities.Recipe{}).Count(&recipes).Error)
	assert.EqualValues(t, 1, recipes)

	// The second tenant gets the shared recipe with its own provenance rows.
	var links int64
	require.NoError(t, db.Table("restaurant_recipes").Where("recipe_id = ?", created.RecipeID).Count(&links).Error)
	assert.EqualValues(t, 2, links)

	var provenance int64
	require.NoError(t, db.Model(&entities.RecipeIngredient{}).
		Where("restaurant_id = ?", second.ID).
		Count(&provenance).Error)
	assert.EqualValues(t, 3, provenance)
}

func TestImportConflictRollsBackScrapedPage(t *testing.T) {
	db := newTestDB(t)
	restaurant := newTestRestaurant(t, db, "Diner")

	_, err := newTestService(db, pancakeExtraction()).
		Import(context.Background(), "https://example.com/a", restaurant.ID.String())
	require.NoError(t, err)

	variant := pancakeExtraction()
	variant.Ingredients = []string{"flour", "oat milk"}
	_, err = newTestService(db, variant).
		Import(context.Background(), "https://example.com/b", restaurant.ID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeConflict)

	// The conflicting page must not stay marked as imported, so a retry with
	// a fixed name is possible.
	var pages int64
	require.NoError(t, db.Model(&entities.ScrapedPage{}).Where("url = ?", "https://example.com/b").Count(&pages).Error)
	assert.EqualValues(t, 0, pages)
}

func TestImportFetchFailure(t *testing.T) {
	db := newTestDB(t)
	restaurant := newTestRestaurant(t, db, "Diner")
	service := NewIngestionService(
		NewIngestionRepository(db),
		stubFetcher{err: errors.New("connection refused")},
		stubExtractor{},
	)

	_, err := service.Import(context.Background(), "https://example.com/down", restaurant.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error during scraping:")
	assert.Contains(t, err.Error(), "connection refused")

	var pages int64
	require.NoError(t, db.Model(&entities.ScrapedPage{}).Count(&pages).Error)
	assert.EqualValues(t, 0, pages)
}

func TestImportUnknownRestaurant(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db, pancakeExtraction())

	_, err := service.Import(context.Background(), "https://example.com/pancakes", uuid.New().String())
	require.Error(t, err)
	assert.Equal(t, "Restaurant not found.", err.Error())
}

func TestImportThroughDispatcher(t *testing.T) {
	db := newTestDB(t)
	restaurant := newTestRestaurant(t, db, "Diner")
	service := newTestService(db, pancakeExtraction())

	dispatcher := jobs.NewDispatcher(jobs.NewMemoryTracker(), 2)
	defer dispatcher.Shutdown()

	jobID, err := dispatcher.Submit(context.Background(), func(ctx context.Context) (interface{}, error) {
		return service.Import(ctx, "https://example.com/pancakes", restaurant.ID.String())
	})
	require.NoError(t, err)

	var status jobs.Status
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		status = dispatcher.Status(context.Background(), jobID)
		if status.State == jobs.StateSuccess || status.State == jobs.StateFailure {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	require.Equal(t, jobs.StateSuccess, status.State)
	result, ok := status.Detail.(domain.ImportResult)
	require.True(t, ok)
	assert.Equal(t, "Recipe successfully imported.", result.Message)
	assert.NotEmpty(t, result.RecipeID)
}

func TestIsUniqueViolation(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngestionRepository(db)

	page := &entities.ScrapedPage{ID: uuid.New(), URL: "https://example.com/x"}
	require.NoError(t, repo.CreateScrapedPage(context.Background(), page))

	dup := &entities.ScrapedPage{ID: uuid.New(), URL: "https://example.com/x"}
	err := repo.CreateScrapedPage(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(errors.New("connection reset")))
}

func TestGetScrapedPages(t *testing.T) {
	db := newTestDB(t)
	restaurant := newTestRestaurant(t, db, "Diner")
	service := newTestService(db, pancakeExtraction())

	result, err := service.Import(context.Background(), "https://example.com/pancakes", restaurant.ID.String())
	require.NoError(t, err)

	pages, err := service.GetScrapedPages(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "https://example.com/pancakes", pages[0].URL)
	assert.Equal(t, result.RecipeID, pages[0].RecipeID)
}
