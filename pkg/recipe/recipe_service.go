package recipe

import (
	"context"
	"errors"

	"recipe-crm/domain"
	"recipe-crm/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (domain.RecipeDetailResponse, error)
		GetMyRecipes(ctx context.Context, userID string) ([]domain.RecipeBrief, error)
		GetRecipeDetail(ctx context.Context, recipeID, userID string) (domain.RecipeDetailResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetailResponse, error)
		GetIngredients(ctx context.Context) ([]domain.IngredientResponse, error)
		GetMyIngredients(ctx context.Context, userID string) ([]domain.IngredientResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository) RecipeService {
	return &recipeService{recipeRepository: recipeRepository}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (domain.RecipeDetailResponse, error) {
	recipe := &entities.Recipe{
		ID:             uuid.New(),
		Name:           req.Name,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		PrepTime:       req.PrepTime,
		CookTime:       req.CookTime,
		AdditionalTime: req.AdditionalTime,
		TotalTime:      req.TotalTime,
		Servings:       req.Servings,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	var firstRestaurant *uuid.UUID
	for i, restaurantID := range req.RestaurantIDs {
		if err := s.recipeRepository.AssociateRestaurant(ctx, recipe.ID.String(), restaurantID); err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		if i == 0 {
			parsed, err := uuid.Parse(restaurantID)
			if err != nil {
				return domain.RecipeDetailResponse{}, domain.ErrParseUUID
			}
			firstRestaurant = &parsed
		}
	}

	for _, name := range req.Ingredients {
		ingredient, err := s.recipeRepository.GetOrCreateIngredient(ctx, name)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		if err := s.recipeRepository.GetOrCreateRecipeIngredient(ctx, recipe.ID, ingredient.ID, firstRestaurant); err != nil {
			return domain.RecipeDetailResponse{}, err
		}
	}

	for _, step := range req.Steps {
		if err := s.recipeRepository.CreateStep(ctx, &entities.RecipeStep{
			ID:          uuid.New(),
			RecipeID:    recipe.ID,
			StepNumber:  step.StepNumber,
			Description: step.Description,
		}); err != nil {
			return domain.RecipeDetailResponse{}, err
		}
	}

	created, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	return toRecipeDetail(created), nil
}

func (s *recipeService) GetMyRecipes(ctx context.Context, userID string) ([]domain.RecipeBrief, error) {
	restaurantIDs, err := s.recipeRepository.GetUserRestaurantIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(restaurantIDs) == 0 {
		return nil, domain.ErrNoRestaurant
	}

	recipes, err := s.recipeRepository.GetRecipesByRestaurants(ctx, restaurantIDs)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RecipeBrief, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, domain.RecipeBrief{
			ID:       r.ID.String(),
			Name:     r.Name,
			ImageURL: r.ImageURL,
		})
	}
	return result, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, userID string) (domain.RecipeDetailResponse, error) {
	restaurantIDs, err := s.recipeRepository.GetUserRestaurantIDs(ctx, userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	if len(restaurantIDs) == 0 {
		return domain.RecipeDetailResponse{}, domain.ErrNoRestaurant
	}

	inScope, err := s.recipeRepository.IsRecipeInRestaurants(ctx, recipeID, restaurantIDs)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	if !inScope {
		return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}

	return toRecipeDetail(recipe), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetailResponse, error) {
	restaurantIDs, err := s.recipeRepository.GetUserRestaurantIDs(ctx, userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	if len(restaurantIDs) == 0 {
		return domain.RecipeDetailResponse{}, domain.ErrNoRestaurant
	}

	inScope, err := s.recipeRepository.IsRecipeInRestaurants(ctx, recipeID, restaurantIDs)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	if !inScope {
		return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.PrepTime != nil {
		recipe.PrepTime = *req.PrepTime
	}
	if req.CookTime != nil {
		recipe.CookTime = *req.CookTime
	}
	if req.AdditionalTime != nil {
		recipe.AdditionalTime = *req.AdditionalTime
	}
	if req.TotalTime != nil {
		recipe.TotalTime = *req.TotalTime
	}
	if req.Servings != nil {
		recipe.Servings = req.Servings
	}
	if req.ImageURL != nil {
		recipe.ImageURL = *req.ImageURL
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	// Ingredient and step lists are replaced wholesale when provided.
	if req.Ingredients != nil {
		var owner *uuid.UUID
		if len(recipe.Restaurants) > 0 {
			owner = &recipe.Restaurants[0].ID
		}
		if err := s.recipeRepository.DeleteRecipeIngredients(ctx, recipeID); err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		for _, name := range req.Ingredients {
			ingredient, err := s.recipeRepository.GetOrCreateIngredient(ctx, name)
			if err != nil {
				return domain.RecipeDetailResponse{}, err
			}
			if err := s.recipeRepository.GetOrCreateRecipeIngredient(ctx, recipe.ID, ingredient.ID, owner); err != nil {
				return domain.RecipeDetailResponse{}, err
			}
		}
	}

	if req.Steps != nil {
		if err := s.recipeRepository.DeleteSteps(ctx, recipeID); err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		for _, step := range req.Steps {
			if err := s.recipeRepository.CreateStep(ctx, &entities.RecipeStep{
				ID:          uuid.New(),
				RecipeID:    recipe.ID,
				StepNumber:  step.StepNumber,
				Description: step.Description,
			}); err != nil {
				return domain.RecipeDetailResponse{}, err
			}
		}
	}

	updated, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	return toRecipeDetail(updated), nil
}

func (s *recipeService) GetIngredients(ctx context.Context) ([]domain.IngredientResponse, error) {
	ingredients, err := s.recipeRepository.GetIngredients(ctx)
	if err != nil {
		return nil, err
	}
	return toIngredientResponses(ingredients), nil
}

func (s *recipeService) GetMyIngredients(ctx context.Context, userID string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.recipeRepository.GetIngredientsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toIngredientResponses(ingredients), nil
}

func toIngredientResponses(ingredients []*entities.Ingredient) []domain.IngredientResponse {
	result := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		result = append(result, domain.IngredientResponse{
			ID:   ing.ID.String(),
			Name: ing.Name,
		})
	}
	return result
}

func toRecipeDetail(recipe *entities.Recipe) domain.RecipeDetailResponse {
	detail := domain.RecipeDetailResponse{
		ID:             recipe.ID.String(),
		Name:           recipe.Name,
		Description:    recipe.Description,
		ImageURL:       recipe.ImageURL,
		PrepTime:       recipe.PrepTime,
		CookTime:       recipe.CookTime,
		AdditionalTime: recipe.AdditionalTime,
		TotalTime:      recipe.TotalTime,
		Servings:       recipe.Servings,
		CreatedAt:      recipe.CreatedAt,
		Ingredients:    make([]domain.RecipeIngredientResponse, 0, len(recipe.RecipeIngredients)),
		Steps:          make([]domain.RecipeStepResponse, 0, len(recipe.Steps)),
		RestaurantIDs:  make([]string, 0, len(recipe.Restaurants)),
	}

	for _, ri := range recipe.RecipeIngredients {
		item := domain.RecipeIngredientResponse{ID: ri.ID.String()}
		if ri.Ingredient != nil {
			item.IngredientName = ri.Ingredient.Name
		}
		if ri.RestaurantID != nil {
			item.RestaurantID = ri.RestaurantID.String()
		}
		detail.Ingredients = append(detail.Ingredients, item)
	}

	for _, step := range recipe.Steps {
		detail.Steps = append(detail.Steps, domain.RecipeStepResponse{
			StepNumber:  step.StepNumber,
			Description: step.Description,
		})
	}

	for _, restaurant := range recipe.Restaurants {
		detail.RestaurantIDs = append(detail.RestaurantIDs, restaurant.ID.String())
	}

	return detail
}
