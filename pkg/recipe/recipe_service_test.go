package recipe

import (
	"context"
	"fmt"
	"testing"

	"recipe-crm/domain"
	"recipe-crm/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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
	))
	return db
}

type fixture struct {
	db         *gorm.DB
	service    RecipeService
	user       *entities.User
	restaurant *entities.Restaurant
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	user := &entities.User{ID: uuid.New(), Username: "chef", Role: domain.RoleAdmin}
	require.NoError(t, db.Create(user).Error)

	restaurant := &entities.Restaurant{ID: uuid.New(), Name: "Diner"}
	require.NoError(t, db.Create(restaurant).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO restaurant_users (restaurant_id, user_id) VALUES (?, ?)",
		restaurant.ID, user.ID,
	).Error)

	return &fixture{
		db:         db,
		service:    NewRecipeService(NewRecipeRepository(db)),
		user:       user,
		restaurant: restaurant,
	}
}

func (f *fixture) createRecipe(t *testing.T) domain.RecipeDetailResponse {
	t.Helper()
	detail, err := f.service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Shakshuka",
		Description: "Eggs in tomato sauce",
		PrepTime:    "10 mins",
		Ingredients: []string{"eggs", "tomatoes"},
		Steps: []domain.RecipeStepPayload{
			{StepNumber: 1, Description: "Simmer the sauce."},
			{StepNumber: 2, Description: "Poach the eggs."},
		},
		RestaurantIDs: []string{f.restaurant.ID.String()},
	})
	require.NoError(t, err)
	return detail
}

func TestCreateRecipe(t *testing.T) {
	f := newFixture(t)

	detail := f.createRecipe(t)
	assert.Equal(t, "Shakshuka", detail.Name)
	assert.Equal(t, []string{f.restaurant.ID.String()}, detail.RestaurantIDs)

	require.Len(t, detail.Ingredients, 2)
	for _, ingredient := range detail.Ingredients {
		assert.Equal(t, f.restaurant.ID.String(), ingredient.RestaurantID)
	}

	require.Len(t, detail.Steps, 2)
	assert.Equal(t, 1, detail.Steps[0].StepNumber)
	assert.Equal(t, "Simmer the sauce.", detail.Steps[0].Description)
}

func TestGetMyRecipes(t *testing.T) {
	f := newFixture(t)
	f.createRecipe(t)

	briefs, err := f.service.GetMyRecipes(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	require.Len(t, briefs, 1)
	assert.Equal(t, "Shakshuka", briefs[0].Name)
}

func TestGetMyRecipesNoRestaurant(t *testing.T) {
	f := newFixture(t)

	outsider := &entities.User{ID: uuid.New(), Username: "visitor", Role: domain.RoleUser}
	require.NoError(t, f.db.Create(outsider).Error)

	_, err := f.service.GetMyRecipes(context.Background(), outsider.ID.String())
	assert.ErrorIs(t, err, domain.ErrNoRestaurant)
}

func TestGetRecipeDetailScopedToTenant(t *testing.T) {
	f := newFixture(t)
	detail := f.createRecipe(t)

	got, err := f.service.GetRecipeDetail(context.Background(), detail.ID, f.user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, detail.ID, got.ID)

	// A user from another restaurant must not see the recipe at all.
	other := &entities.User{ID: uuid.New(), Username: "rival", Role: domain.RoleAdmin}
	require.NoError(t, f.db.Create(other).Error)
	rival := &entities.Restaurant{ID: uuid.New(), Name: "Rival"}
	require.NoError(t, f.db.Create(rival).Error)
	require.NoError(t, f.db.Exec(
		"INSERT INTO restaurant_users (restaurant_id, user_id) VALUES (?, ?)",
		rival.ID, other.ID,
	).Error)

	_, err = f.service.GetRecipeDetail(context.Background(), detail.ID, other.ID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestUpdateRecipePatchesFields(t *testing.T) {
	f := newFixture(t)
	detail := f.createRecipe(t)

	name := "Shakshuka Deluxe"
	servings := 6
	updated, err := f.service.UpdateRecipe(context.Background(), detail.ID, domain.UpdateRecipeRequest{
		Name:     &name,
		Servings: &servings,
	}, f.user.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Shakshuka Deluxe", updated.Name)
	require.NotNil(t, updated.Servings)
	assert.Equal(t, 6, *updated.Servings)
	// Untouched fields keep their values.
	assert.Equal(t, "Eggs in tomato sauce", updated.Description)
	assert.Len(t, updated.Ingredients, 2)
	assert.Len(t, updated.Steps, 2)
}

func TestUpdateRecipeReplacesIngredientsAndSteps(t *testing.T) {
	f := newFixture(t)
	detail := f.createRecipe(t)

	updated, err := f.service.UpdateRecipe(context.Background(), detail.ID, domain.UpdateRecipeRequest{
		Ingredients: []string{"eggs", "peppers", "feta"},
		Steps: []domain.RecipeStepPayload{
			{StepNumber: 1, Description: "Char the peppers."},
		},
	}, f.user.ID.String())
	require.NoError(t, err)

	names := make([]string, 0, len(updated.Ingredients))
	for _, ingredient := range updated.Ingredients {
		names = append(names, ingredient.IngredientName)
	}
	assert.ElementsMatch(t, []string{"eggs", "peppers", "feta"}, names)

	require.Len(t, updated.Steps, 1)
	assert.Equal(t, "Char the peppers.", updated.Steps[0].Description)
}

func TestGetMyIngredients(t *testing.T) {
	f := newFixture(t)
	f.createRecipe(t)

	// Another tenant's ingredient must not leak into the tenant view.
	other := &entities.Ingredient{ID: uuid.New(), Name: "saffron"}
	require.NoError(t, f.db.Create(other).Error)

	mine, err := f.service.GetMyIngredients(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	names := make([]string, 0, len(mine))
	for _, ingredient := range mine {
		names = append(names, ingredient.Name)
	}
	assert.ElementsMatch(t, []string{"eggs", "tomatoes"}, names)

	all, err := f.service.GetIngredients(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
