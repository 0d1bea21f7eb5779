package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessGetIngredients  = "success get ingredients"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedGetIngredients  = "failed to get ingredients"

	ErrRecipeNotFound = errors.New("recipe not found or does not belong to your restaurants")
)

type (
	RecipeBrief struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		ImageURL string `json:"image_url,omitempty"`
	}

	RecipeStepPayload struct {
		StepNumber  int    `json:"step_number" validate:"required,min=1"`
		Description string `json:"description" validate:"required"`
	}

	CreateRecipeRequest struct {
		Name           string              `json:"name" validate:"required,max=255"`
		Description    string              `json:"description"`
		PrepTime       string              `json:"prep_time"`
		CookTime       string              `json:"cook_time"`
		AdditionalTime string              `json:"additional_time"`
		TotalTime      string              `json:"total_time"`
		Servings       *int                `json:"servings" validate:"omitempty,min=1"`
		ImageURL       string              `json:"image_url"`
		Ingredients    []string            `json:"ingredients" validate:"required,min=1,dive,required"`
		Steps          []RecipeStepPayload `json:"steps" validate:"omitempty,dive"`
		RestaurantIDs  []string            `json:"restaurant_ids" validate:"required,min=1,dive,uuid"`
	}

	UpdateRecipeRequest struct {
		Name           *string             `json:"name"`
		Description    *string             `json:"description"`
		PrepTime       *string             `json:"prep_time"`
		CookTime       *string             `json:"cook_time"`
		AdditionalTime *string             `json:"additional_time"`
		TotalTime      *string             `json:"total_time"`
		Servings       *int                `json:"servings"`
		ImageURL       *string             `json:"image_url"`
		Ingredients    []string            `json:"ingredients"`
		Steps          []RecipeStepPayload `json:"steps"`
	}

	RecipeIngredientResponse struct {
		ID             string `json:"id"`
		IngredientName string `json:"ingredient_name"`
		RestaurantID   string `json:"restaurant_id,omitempty"`
	}

	RecipeStepResponse struct {
		StepNumber  int    `json:"step_number"`
		Description string `json:"description"`
	}

	RecipeDetailResponse struct {
		ID             string                     `json:"id"`
		Name           string                     `json:"name"`
		Description    string                     `json:"description"`
		ImageURL       string                     `json:"image_url,omitempty"`
		PrepTime       string                     `json:"prep_time,omitempty"`
		CookTime       string                     `json:"cook_time,omitempty"`
		AdditionalTime string                     `json:"additional_time,omitempty"`
		TotalTime      string                     `json:"total_time,omitempty"`
		Servings       *int                       `json:"servings,omitempty"`
		CreatedAt      time.Time                  `json:"created_at"`
		Ingredients    []RecipeIngredientResponse `json:"ingredients"`
		Steps          []RecipeStepResponse       `json:"steps"`
		RestaurantIDs  []string                   `json:"restaurant_ids"`
	}

	IngredientResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)
