package restaurant

import (
	"context"
	"errors"
	"fmt"

	"recipe-crm/domain"
	"recipe-crm/internal/utils/storage"
	"recipe-crm/pkg/recipe"

	"gorm.io/gorm"
)

type (
	RestaurantService interface {
		CreateRestaurant(ctx context.Context, req domain.CreateRestaurantRequest, userID, role string) (domain.RestaurantResponse, error)
		GetMyRestaurants(ctx context.Context, userID string) ([]domain.RestaurantResponse, error)
		GetRestaurantRecipes(ctx context.Context, restaurantID, userID string) ([]domain.RecipeBrief, error)
		AddRecipeToRestaurant(ctx context.Context, restaurantID string, req domain.AddRecipeToRestaurantRequest, userID string) error
		UploadRestaurantImage(ctx context.Context, restaurantID string, req domain.UploadRestaurantImageRequest, userID string) (string, error)
	}

	restaurantService struct {
		restaurantRepository RestaurantRepository
		recipeRepository     recipe.RecipeRepository
		s3                   storage.AwsS3
	}
)

func NewRestaurantService(restaurantRepository RestaurantRepository, recipeRepository recipe.RecipeRepository, s3 storage.AwsS3) RestaurantService {
	return &restaurantService{
		restaurantRepository: restaurantRepository,
		recipeRepository:     recipeRepository,
		s3:                   s3,
	}
}

func (s *restaurantService) CreateRestaurant(ctx context.Context, req domain.CreateRestaurantRequest, userID, role string) (domain.RestaurantResponse, error) {
	if role != domain.RoleAdmin {
		return domain.RestaurantResponse{}, domain.ErrOnlyAdminAllowed
	}

	restaurant, err := s.restaurantRepository.GetOrCreateRestaurant(ctx, req.Name)
	if err != nil {
		return domain.RestaurantResponse{}, err
	}

	if err := s.restaurantRepository.AddUser(ctx, restaurant.ID.String(), userID); err != nil {
		return domain.RestaurantResponse{}, err
	}

	return domain.RestaurantResponse{
		ID:        restaurant.ID.String(),
		Name:      restaurant.Name,
		ImageURL:  restaurant.ImageURL,
		CreatedAt: restaurant.CreatedAt,
	}, nil
}

func (s *restaurantService) GetMyRestaurants(ctx context.Context, userID string) ([]domain.RestaurantResponse, error) {
	restaurants, err := s.restaurantRepository.GetRestaurantsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return nil, domain.ErrNoRestaurant
	}

	result := make([]domain.RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		result = append(result, domain.RestaurantResponse{
			ID:        r.ID.String(),
			Name:      r.Name,
			ImageURL:  r.ImageURL,
			CreatedAt: r.CreatedAt,
		})
	}
	return result, nil
}

func (s *restaurantService) GetRestaurantRecipes(ctx context.Context, restaurantID, userID string) ([]domain.RecipeBrief, error) {
	if _, err := s.restaurantRepository.GetRestaurantByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, err
	}

	member, err := s.restaurantRepository.IsMember(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrNotRestaurantMember
	}

	recipes, err := s.restaurantRepository.GetRestaurantRecipes(ctx, restaurantID)
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

func (s *restaurantService) AddRecipeToRestaurant(ctx context.Context, restaurantID string, req domain.AddRecipeToRestaurantRequest, userID string) error {
	restaurant, err := s.restaurantRepository.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRestaurantNotFound
		}
		return err
	}

	member, err := s.restaurantRepository.IsMember(ctx, restaurantID, userID)
	if err != nil {
		return err
	}
	if !member {
		return domain.ErrNotRestaurantMember
	}

	target, err := s.recipeRepository.GetRecipeByID(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	has, err := s.restaurantRepository.HasRecipe(ctx, restaurantID, req.RecipeID)
	if err != nil {
		return err
	}
	if has {
		return domain.ErrRecipeAlreadyAdded
	}

	if err := s.restaurantRepository.AddRecipe(ctx, restaurantID, req.RecipeID); err != nil {
		return err
	}

	// Copy ingredient provenance so the new tenant gets its own
	// (recipe, ingredient, restaurant) rows.
	for _, ri := range target.RecipeIngredients {
		if err := s.recipeRepository.GetOrCreateRecipeIngredient(ctx, target.ID, ri.IngredientID, &restaurant.ID); err != nil {
			return err
		}
	}

	return nil
}

func (s *restaurantService) UploadRestaurantImage(ctx context.Context, restaurantID string, req domain.UploadRestaurantImageRequest, userID string) (string, error) {
	restaurant, err := s.restaurantRepository.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRestaurantNotFound
		}
		return "", err
	}

	member, err := s.restaurantRepository.IsMember(ctx, restaurantID, userID)
	if err != nil {
		return "", err
	}
	if !member {
		return "", domain.ErrNotRestaurantMember
	}

	fileName := fmt.Sprintf("restaurant-%s", restaurant.ID.String())
	var objectKey string

	if restaurant.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(restaurant.ImageURL)
		if existingKey != "" {
			objectKey, err = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, err = s.s3.UploadFile(fileName, req.Image, "restaurants", storage.AllowImage...)
		}
	} else {
		objectKey, err = s.s3.UploadFile(fileName, req.Image, "restaurants", storage.AllowImage...)
	}
	if err != nil {
		return "", err
	}

	restaurant.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.restaurantRepository.UpdateRestaurant(ctx, restaurant); err != nil {
		return "", err
	}

	return restaurant.ImageURL, nil
}
