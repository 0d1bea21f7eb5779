package config

import (
	"os"
	"strconv"
	"time"

	"recipe-crm/internal/api/handlers"
	"recipe-crm/internal/api/routes"
	"recipe-crm/internal/middleware"
	"recipe-crm/internal/utils"
	"recipe-crm/internal/utils/storage"
	"recipe-crm/pkg/ingestion"
	"recipe-crm/pkg/jobs"
	"recipe-crm/pkg/jwt"
	"recipe-crm/pkg/recipe"
	"recipe-crm/pkg/restaurant"
	"recipe-crm/pkg/scraper"
	"recipe-crm/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, jobs.Dispatcher, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Job status store: Redis when configured, in-process otherwise.
	var tracker jobs.Tracker
	if addr := utils.GetConfig("REDIS_ADDR"); addr != "" {
		tracker, err = jobs.NewRedisTracker(addr, utils.GetConfig("REDIS_PASSWORD"))
		if err != nil {
			return nil, nil, err
		}
	} else {
		tracker = jobs.NewMemoryTracker()
	}

	workers, err := strconv.Atoi(utils.GetConfig("SCRAPER_WORKERS"))
	if err != nil || workers < 1 {
		workers = 4
	}
	dispatcher := jobs.NewDispatcher(tracker, workers)

	// Repository
	userRepository := user.NewUserRepository(db)
	restaurantRepository := restaurant.NewRestaurantRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	ingestionRepository := ingestion.NewIngestionRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, restaurantRepository, jwtService)
	restaurantService := restaurant.NewRestaurantService(restaurantRepository, recipeRepository, s3)
	recipeService := recipe.NewRecipeService(recipeRepository)
	ingestionService := ingestion.NewIngestionService(
		ingestionRepository,
		scraper.NewFetcher(scraper.DefaultTimeout),
		scraper.NewExtractor(),
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	scrapeHandler := handlers.NewScrapeHandler(ingestionService, dispatcher, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		RestaurantHandler: restaurantHandler,
		RecipeHandler:     recipeHandler,
		ScrapeHandler:     scrapeHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, dispatcher, nil
}
