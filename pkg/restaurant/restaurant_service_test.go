package restaurant

import (
	"context"
	"fmt"
	"testing"

	"recipe-crm/domain"
	"recipe-crm/entities"
	"recipe-crm/pkg/recipe"

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

func newService(db *gorm.DB) RestaurantService {
	return NewRestaurantService(NewRestaurantRepository(db), recipe.NewRecipeRepository(db), nil)
}

func newUser(t *testing.T, db *gorm.DB, username string) string {
	t.Helper()
	user := &entities.User{ID: uuid.New(), Username: username, Role: domain.RoleAdmin}
	require.NoError(t, db.Create(user).Error)
	return user.ID.String()
}

func TestCreateRestaurantAdminOnly(t *testing.T) {
	db := newTestDB(t)
	service := newService(db)

	_, err := service.CreateRestaurant(context.Background(), domain.CreateRestaurantRequest{Name: "Diner"}, newUser(t, db, "cook"), domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrOnlyAdminAllowed)

	res, err := service.CreateRestaurant(context.Background(), domain.CreateRestaurantRequest{Name: "Diner"}, newUser(t, db, "owner"), domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Diner", res.Name)
}

func TestCreateRestaurantReusesExistingName(t *testing.T) {
	db := newTestDB(t)
	service := newService(db)

	first, err := service.CreateRestaurant(context.Background(), domain.CreateRestaurantRequest{Name: "Diner"}, newUser(t, db, "first"), domain.RoleAdmin)
	require.NoError(t, err)

	second, err := service.CreateRestaurant(context.Background(), domain.CreateRestaurantRequest{Name: "Diner"}, newUser(t, db, "second"), domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&entities.Restaurant{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetMyRestaurantsEmpty(t *testing.T) {
	db := newTestDB(t)
	service := newService(db)

	_, err := service.GetMyRestaurants(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNoRestaurant)
}

func TestAddRecipeToRestaurant(t *testing.T) {
	db := newTestDB(t)
	service := newService(db)

	userID := newUser(t, db, "owner")
	created, err := service.CreateRestaurant(context.Background(), domain.CreateRestaurantRequest{Name: "Bistro"}, userID, domain.RoleAdmin)
	require.NoError(t, err)

	// Recipe owned by another tenant, with provenance rows to copy.
	origin := &entities.Restaurant{ID: uuid.New(), Name: "Origin"}
	require.NoError(t, db.Create(origin).Error)
	ingredient := &entities.Ingredient{ID: uuid.New(), Name: "flour"}
	require.NoError(t, db.Create(ingredient).Error)
	target := &entities.Recipe{ID: uuid.New(), Name: "Bread"}
	require.NoError(t, db.Create(target).Error)
	require.NoError(t, db.Create(&entities.RecipeIngredient{
		ID:           uuid.New(),
		RecipeID:     target.ID,
		IngredientID: ingredient.ID,
		RestaurantID: &origin.ID,
	}).Error)

	req := domain.AddRecipeToRestaurantRequest{RecipeID: target.ID.String()}
	require.NoError(t, service.AddRecipeToRestaurant(context.Background(), created.ID, req, userID))

	restaurantID := uuid.MustParse(created.ID)
	var provenance int64
	require.NoError(t, db.Model(&entities.RecipeIngredient{}).
		Where("recipe_id = ? AND restaurant_id = ?", target.ID, restaurantID).
		Count(&provenance).Error)
	assert.EqualValues(t, 1, provenance)

	// Adding twice is rejected.
	err = service.AddRecipeToRestaurant(context.Background(), created.ID, req, userID)
	assert.ErrorIs(t, err, domain.ErrRecipeAlreadyAdded)
}

func TestGetRestaurantRecipesRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	service := newService(db)

	owner := newUser(t, db, "owner")
	created, err := service.CreateRestaurant(context.Background(), domain.CreateRestaurantRequest{Name: "Bistro"}, owner, domain.RoleAdmin)
	require.NoError(t, err)

	target := &entities.Recipe{ID: uuid.New(), Name: "Bread"}
	require.NoError(t, db.Create(target).Error)
	require.NoError(t, service.AddRecipeToRestaurant(context.Background(), created.ID, domain.AddRecipeToRestaurantRequest{RecipeID: target.ID.String()}, owner))

	briefs, err := service.GetRestaurantRecipes(context.Background(), created.ID, owner)
	require.NoError(t, err)
	require.Len(t, briefs, 1)

	_, err = service.GetRestaurantRecipes(context.Background(), created.ID, newUser(t, db, "stranger"))
	assert.ErrorIs(t, err, domain.ErrNotRestaurantMember)

	_, err = service.GetRestaurantRecipes(context.Background(), uuid.New().String(), owner)
	assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
}

func TestAddRecipeRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	service := newService(db)

	owner := newUser(t, db, "owner")
	created, err := service.CreateRestaurant(context.Background(), domain.CreateRestaurantRequest{Name: "Bistro"}, owner, domain.RoleAdmin)
	require.NoError(t, err)

	target := &entities.Recipe{ID: uuid.New(), Name: "Bread"}
	require.NoError(t, db.Create(target).Error)

	req := domain.AddRecipeToRestaurantRequest{RecipeID: target.ID.String()}
	err = service.AddRecipeToRestaurant(context.Background(), created.ID, req, newUser(t, db, "outsider"))
	assert.ErrorIs(t, err, domain.ErrNotRestaurantMember)
}
