package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateRestaurant = "restaurant created successfully"
	MessageSuccessGetRestaurants   = "success get restaurants"
	MessageSuccessGetRecipesBrief  = "success get restaurant recipes"
	MessageSuccessAddRecipe        = "recipe added to restaurant successfully"
	MessageSuccessUploadImage      = "restaurant image updated successfully"

	MessageFailedCreateRestaurant = "failed to create restaurant"
	MessageFailedGetRestaurants   = "failed to get restaurants"
	MessageFailedGetRecipesBrief  = "failed to get restaurant recipes"
	MessageFailedAddRecipe        = "failed to add recipe to restaurant"
	MessageFailedUploadImage      = "failed to upload restaurant image"

	ErrRestaurantNotFound   = errors.New("restaurant not found")
	ErrNoRestaurant         = errors.New("user does not belong to any restaurant")
	ErrNotRestaurantMember  = errors.New("you do not have access to this restaurant")
	ErrRecipeAlreadyAdded   = errors.New("this recipe is already added to the restaurant")
	ErrOnlyAdminAllowed     = errors.New("only admins can create restaurants")
)

type (
	RestaurantSummary struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		ImageURL string `json:"image_url,omitempty"`
	}

	CreateRestaurantRequest struct {
		Name string `json:"name" validate:"required,max=255"`
	}

	RestaurantResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		ImageURL  string    `json:"image_url,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	AddRecipeToRestaurantRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
	}

	UploadRestaurantImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}
)
