package ingestion

import (
	"strings"

	"recipe-crm/domain"
	"recipe-crm/entities"
)

// Reconcile decides whether an extracted recipe can reuse one of the
// catalog candidates that share its name. Two recipes are the same when
// their trimmed titles match exactly and they use exactly the same set of
// ingredient names. A name collision with different contents is a conflict
// so a tenant never silently overwrites someone else's recipe.
//
// Returns (nil, nil) when there are no candidates: the caller creates a
// fresh recipe.
func Reconcile(extracted domain.ExtractedRecipe, candidates []*entities.Recipe) (*entities.Recipe, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	title := strings.TrimSpace(extracted.Title)
	want := ingredientSet(extracted.Ingredients)

	for _, candidate := range candidates {
		if strings.TrimSpace(candidate.Name) != title {
			continue
		}
		if sameSet(want, recipeIngredientSet(candidate)) {
			return candidate, nil
		}
	}
	return nil, domain.ErrRecipeConflict
}

func ingredientSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[strings.TrimSpace(name)] = struct{}{}
	}
	return set
}

func recipeIngredientSet(recipe *entities.Recipe) map[string]struct{} {
	set := make(map[string]struct{}, len(recipe.RecipeIngredients))
	for _, ri := range recipe.RecipeIngredients {
		if ri.Ingredient != nil {
			set[strings.TrimSpace(ri.Ingredient.Name)] = struct{}{}
		}
	}
	return set
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for key := range a {
		if _, ok := b[key]; !ok {
			return false
		}
	}
	return true
}
