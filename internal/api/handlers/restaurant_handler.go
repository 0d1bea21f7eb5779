package handlers

import (
	"recipe-crm/domain"
	"recipe-crm/internal/api/presenters"
	"recipe-crm/pkg/restaurant"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RestaurantHandler interface {
		CreateRestaurant(c *fiber.Ctx) error
		GetMyRestaurants(c *fiber.Ctx) error
		GetRestaurantRecipes(c *fiber.Ctx) error
		AddRecipeToRestaurant(c *fiber.Ctx) error
		UploadRestaurantImage(c *fiber.Ctx) error
	}

	restaurantHandler struct {
		restaurantService restaurant.RestaurantService
		validator         *validator.Validate
	}
)

func NewRestaurantHandler(restaurantService restaurant.RestaurantService, validator *validator.Validate) RestaurantHandler {
	return &restaurantHandler{
		restaurantService: restaurantService,
		validator:         validator,
	}
}

func (h *restaurantHandler) CreateRestaurant(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	req := new(domain.CreateRestaurantRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRestaurant, err)
	}

	res, err := h.restaurantService.CreateRestaurant(c.Context(), *req, userID, role)
	if err != nil {
		if err == domain.ErrOnlyAdminAllowed {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedCreateRestaurant, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRestaurant, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRestaurant)
}

func (h *restaurantHandler) GetMyRestaurants(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.restaurantService.GetMyRestaurants(c.Context(), userID)
	if err != nil {
		if err == domain.ErrNoRestaurant {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRestaurants, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRestaurants, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRestaurants)
}

func (h *restaurantHandler) GetRestaurantRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	restaurantID := c.Params("id")

	res, err := h.restaurantService.GetRestaurantRecipes(c.Context(), restaurantID, userID)
	if err != nil {
		if err == domain.ErrNotRestaurantMember {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetRecipesBrief, err)
		}
		if err == domain.ErrRestaurantNotFound {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipesBrief, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipesBrief, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipesBrief)
}

func (h *restaurantHandler) AddRecipeToRestaurant(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	restaurantID := c.Params("id")
	req := new(domain.AddRecipeToRestaurantRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddRecipe, err)
	}

	if err := h.restaurantService.AddRecipeToRestaurant(c.Context(), restaurantID, *req, userID); err != nil {
		switch err {
		case domain.ErrNotRestaurantMember:
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedAddRecipe, err)
		case domain.ErrRecipeAlreadyAdded:
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedAddRecipe, err)
		case domain.ErrRecipeNotFound, domain.ErrRestaurantNotFound:
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAddRecipe, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAddRecipe)
}

func (h *restaurantHandler) UploadRestaurantImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	restaurantID := c.Params("id")

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UploadRestaurantImageRequest{Image: file}
	link, err := h.restaurantService.UploadRestaurantImage(c.Context(), restaurantID, req, userID)
	if err != nil {
		if err == domain.ErrNotRestaurantMember {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedUploadImage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"image_url": link}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
