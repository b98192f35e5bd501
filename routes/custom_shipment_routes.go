package routes

import (
	"fulfillment-app/config"
	"fulfillment-app/controllers"
	"fulfillment-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCustomShipmentRoutes(app *fiber.App, db *gorm.DB) {

	api := app.Group(config.MAIN_ROUTES+"/custom-shipments", middleware.AuthMiddleware)
	shipmentController := controllers.NewCustomShipmentController(db)

	api.Post("/", shipmentController.CreateCustomShipment)
	api.Get("/", shipmentController.GetAllCustomShipments)
	api.Get("/:id", shipmentController.GetCustomShipmentByID)
	api.Put("/:id", shipmentController.UpdateCustomShipment)
	api.Delete("/:id", shipmentController.DeleteCustomShipment)
	api.Get("/:id/rates", shipmentController.RefreshRates)
	api.Post("/:id/transactions", shipmentController.CreateTransaction)
}
