package ingestion

import (
	"testing"

	"recipe-crm/domain"
	"recipe-crm/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogRecipe(name string, ingredients ...string) *entities.Recipe {
	recipe := &entities.Recipe{ID: uuid.New(), Name: name}
	for _, ingredient := range ingredients {
		recipe.RecipeIngredients = append(recipe.RecipeIngredients, &entities.RecipeIngredient{
			ID:         uuid.New(),
			RecipeID:   recipe.ID,
			Ingredient: &entities.Ingredient{ID: uuid.New(), Name: ingredient},
		})
	}
	return recipe
}

func TestReconcileNoCandidates(t *testing.T) {
	extracted := domain.ExtractedRecipe{Title: "Pancakes", Ingredients: []string{"flour"}}

	recipe, err := Reconcile(extracted, nil)
	require.NoError(t, err)
	assert.Nil(t, recipe)
}

func TestReconcileReusesEqualRecipe(t *testing.T) {
	existing := catalogRecipe("Pancakes", "flour", "milk", "eggs")
	extracted := domain.ExtractedRecipe{
		Title:       "Pancakes",
		Ingredients: []string{"eggs", "flour", "milk"},
	}

	recipe, err := Reconcile(extracted, []*entities.Recipe{existing})
	require.NoError(t, err)
	require.NotNil(t, recipe)
	assert.Equal(t, existing.ID, recipe.ID)
}

func TestReconcileConflictOnDifferentIngredients(t *testing.T) {
	existing := catalogRecipe("Pancakes", "flour", "milk")
	extracted := domain.ExtractedRecipe{
		Title:       "Pancakes",
		Ingredients: []string{"flour", "water"},
	}

	recipe, err := Reconcile(extracted, []*entities.Recipe{existing})
	assert.ErrorIs(t, err, domain.ErrRecipeConflict)
	assert.Nil(t, recipe)
}

func TestReconcileTitleComparisonIsExact(t *testing.T) {
	// Candidates come from a case-insensitive name lookup, but reuse still
	// requires the exact title so "pancakes" never absorbs "Pancakes".
	existing := catalogRecipe("pancakes", "flour")
	extracted := domain.ExtractedRecipe{
		Title:       "Pancakes",
		Ingredients: []string{"flour"},
	}

	recipe, err := Reconcile(extracted, []*entities.Recipe{existing})
	assert.ErrorIs(t, err, domain.ErrRecipeConflict)
	assert.Nil(t, recipe)
}

func TestReconcileTrimsWhitespace(t *testing.T) {
	existing := catalogRecipe("Pancakes", "flour")
	extracted := domain.ExtractedRecipe{
		Title:       "  Pancakes  ",
		Ingredients: []string{" flour "},
	}

	recipe, err := Reconcile(extracted, []*entities.Recipe{existing})
	require.NoError(t, err)
	require.NotNil(t, recipe)
	assert.Equal(t, existing.ID, recipe.ID)
}
