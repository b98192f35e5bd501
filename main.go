package main

import (
	"fmt"
	"log"

	"fulfillment-app/config"
	"fulfillment-app/controllers/idgen"
	"fulfillment-app/database"
	"fulfillment-app/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	database.RunSeeders(db)

	idgen.Init()

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, db)
	routes.SetupVendorRoutes(app, db)
	routes.SetupItemRoutes(app, db)
	routes.SetupOrderRoutes(app, db)
	routes.SetupCustomShipmentRoutes(app, db)
	routes.SetupVendorShipmentRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}

}
