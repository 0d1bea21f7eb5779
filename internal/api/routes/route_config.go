package routes

import (
	"recipe-crm/internal/api/handlers"
	"recipe-crm/internal/middleware"
	"recipe-crm/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RestaurantHandler handlers.RestaurantHandler
	RecipeHandler     handlers.RecipeHandler
	ScrapeHandler     handlers.ScrapeHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Scrape()
	c.Restaurants()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Scrape() {
	scrape := c.App.Group("/api/v1/scrape", c.Middleware.AuthMiddleware(c.JWTService))
	{
		scrape.Post("/import", c.ScrapeHandler.ImportRecipe)
		scrape.Get("/tasks/:id", c.ScrapeHandler.GetTaskStatus)
		scrape.Get("/pages", c.ScrapeHandler.GetScrapedPages)
	}
}

func (c *Config) Restaurants() {
	restaurants := c.App.Group("/api/v1/restaurants", c.Middleware.AuthMiddleware(c.JWTService))
	{
		restaurants.Post("", c.RestaurantHandler.CreateRestaurant)
		restaurants.Get("/my", c.RestaurantHandler.GetMyRestaurants)
		restaurants.Get("/:id/recipes", c.RestaurantHandler.GetRestaurantRecipes)
		restaurants.Post("/:id/recipes", c.RestaurantHandler.AddRecipeToRestaurant)
		restaurants.Post("/:id/image", c.RestaurantHandler.UploadRestaurantImage)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	{
		recipes.Post("", c.RecipeHandler.CreateRecipe)
		recipes.Get("/my", c.RecipeHandler.GetMyRecipes)
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id", c.RecipeHandler.UpdateRecipe)
	}

	ingredients := c.App.Group("/api/v1/ingredients", c.Middleware.AuthMiddleware(c.JWTService))
	{
		ingredients.Get("", c.RecipeHandler.GetIngredients)
		ingredients.Get("/my", c.RecipeHandler.GetMyIngredients)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/v1/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
