package main

import (
	"log"

	"recipe-crm/cmd/config"
	migration "recipe-crm/cmd/database/migrate"
	"recipe-crm/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}

	app, dispatcher, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("error setting up app: %v", err)
	}
	defer dispatcher.Shutdown()

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
